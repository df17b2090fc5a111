package user

import "github.com/google/uuid"

// Classroom subscription ledger.
//
// Children are the source of truth for child-derived entries: adding a
// child subscribes its classroom, and removing the last child in a
// classroom drops that classroom's subscription — even when the same
// classroom was also subscribed to manually.

// SubscribedTo reports whether the user subscribes to the classroom.
func (u *User) SubscribedTo(classroomID string) bool {
	for _, id := range u.Subscriptions {
		if id == classroomID {
			return true
		}
	}
	return false
}

// Subscribe adds a classroom subscription; no-op when already present.
// Reports whether the ledger changed.
func (u *User) Subscribe(classroomID string) bool {
	if classroomID == "" || u.SubscribedTo(classroomID) {
		return false
	}
	u.Subscriptions = append(u.Subscriptions, classroomID)
	return true
}

// Unsubscribe drops a classroom subscription. Reports whether the ledger changed.
func (u *User) Unsubscribe(classroomID string) bool {
	for i, id := range u.Subscriptions {
		if id == classroomID {
			u.Subscriptions = append(u.Subscriptions[:i], u.Subscriptions[i+1:]...)
			return true
		}
	}
	return false
}

// AddChild attaches a child and subscribes to its classroom.
func (u *User) AddChild(child Child) Child {
	if child.ID == "" {
		child.ID = uuid.New().String()
	}
	for i, c := range u.Children {
		if c.ID == child.ID {
			u.Children[i] = child
			u.Subscribe(child.ClassroomID)
			return child
		}
	}
	u.Children = append(u.Children, child)
	u.Subscribe(child.ClassroomID)
	return child
}

// RemoveChild detaches a child; when it was the last child in its
// classroom the classroom subscription goes too. Reports whether a
// child was removed.
func (u *User) RemoveChild(childID string) bool {
	for i, c := range u.Children {
		if c.ID == childID {
			u.Children = append(u.Children[:i], u.Children[i+1:]...)
			if !u.hasChildInClassroom(c.ClassroomID) {
				u.Unsubscribe(c.ClassroomID)
			}
			return true
		}
	}
	return false
}

func (u *User) hasChildInClassroom(classroomID string) bool {
	for _, c := range u.Children {
		if c.ClassroomID == classroomID {
			return true
		}
	}
	return false
}
