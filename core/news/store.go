package news

import (
	"sort"
	"sync"
)

// Store is the process-lifetime collection of news items. It keeps its
// items in feed order (pinned first, then most recent) so readers never
// need to resort.
type Store struct {
	mutex sync.RWMutex
	items []NewsItem
}

func NewStore(items ...NewsItem) *Store {
	s := &Store{items: items}
	s.sortItems()
	return s
}

// Add appends an item and re-establishes feed order.
func (s *Store) Add(items ...NewsItem) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items = append(s.items, items...)
	s.sortItems()
}

// All returns every item in feed order.
func (s *Store) All() []NewsItem {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]NewsItem, len(s.items))
	copy(items, s.items)
	return items
}

// ByClassroom returns the classroom's items in feed order.
func (s *Store) ByClassroom(classroomID string) []NewsItem {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]NewsItem, 0)
	for _, item := range s.items {
		if item.ClassroomID.Valid && item.ClassroomID.String == classroomID {
			items = append(items, item)
		}
	}
	return items
}

func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// sortItems orders pinned items first, ties broken by most-recent date.
// Callers must hold the write lock.
func (s *Store) sortItems() {
	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.Date.After(b.Date)
	})
}
