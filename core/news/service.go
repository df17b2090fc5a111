package news

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/user"
)

var (
	// ErrNoClassroom is returned when a classroom post is attempted by an
	// account with no subscribed classroom.
	ErrNoClassroom = errors.New("no classroom is associated with this account")
)

// Service owns the news store and its mutation surface.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Feed returns the items the viewer may see; usr is nil for guests.
func (svc *Service) Feed(usr *user.User, sel Selection, search string) []NewsItem {
	return Visible(usr, svc.store.All(), sel, search)
}

// ByClassroom returns a classroom's own feed (used by the staff view).
func (svc *Service) ByClassroom(classroomID string) []NewsItem {
	return svc.store.ByClassroom(classroomID)
}

// Post publishes an admin-authored item. Classroom items must carry the
// classroom category and vice versa; the pair is normalized here so the
// invariant can't be violated by a sloppy payload.
func (svc *Service) Post(ni NewItem, author user.User) (NewsItem, error) {
	category := ni.Category
	if category == "" {
		category = CategoryAnnouncement
	}

	item := NewsItem{
		ID:         uuid.New().String(),
		Title:      ni.Title,
		Content:    ni.Content,
		Date:       time.Now().UTC(),
		Author:     author.FullName(),
		Category:   category,
		IsPinned:   ni.IsPinned,
		SourceType: SourceOfficial,
	}
	if ni.ClassroomID != "" {
		item.Category = CategoryClassroom
		item.ClassroomID = null.StringFrom(ni.ClassroomID)
		item.ClassroomName = null.NewString(ni.ClassroomName, ni.ClassroomName != "")
	} else if category == CategoryClassroom {
		return NewsItem{}, core.NewValidationError(
			errors.New("classroom items need a classroom"),
			core.FieldError{Field: "classroom_id", Error: "this field is required for classroom items"},
		)
	}

	svc.store.Add(item)
	return item, nil
}

// PostClassroom publishes a classroom post authored by a teacher, admin
// or parent rep, scoped to the author's first subscribed classroom.
// Parent-rep posts are stamped as such so plain parents never see them.
func (svc *Service) PostClassroom(ni NewClassroomItem, author user.User) (NewsItem, error) {
	if len(author.Subscriptions) == 0 {
		return NewsItem{}, ErrNoClassroom
	}
	classroomID := author.Subscriptions[0]

	sourceType := SourceOfficial
	if author.IsParentRep() {
		sourceType = SourceParentRep
	}
	authorDisplay := author.FullName() + ", " + user.RoleName(author.Role)

	item := NewsItem{
		ID:          uuid.New().String(),
		Title:       ni.Title,
		Content:     ni.Content,
		Date:        time.Now().UTC(),
		Author:      authorDisplay,
		Category:    CategoryClassroom,
		ClassroomID: null.StringFrom(classroomID),
		SourceType:  sourceType,
	}
	svc.store.Add(item)
	return item, nil
}
