package news

import (
	"strings"

	"github.com/stephaniewilkinson/siskiyou/core/user"
)

// Selection is the reader's feed filter: a single category, or classroom
// items only. ClassroomOnly wins when both are set.
type Selection struct {
	Category      string
	ClassroomOnly bool
}

// Visible computes the feed a viewer may see. It is pure: fixed inputs
// give identical ordered output, items keep the order they came in, and
// there is no failure mode — a nil (guest) user and empty slices are
// valid inputs.
//
// Audience rules:
//   - guests, unapproved users and users without classroom subscriptions
//     see school-wide items only;
//   - approved subscribed users additionally see items from their
//     subscribed classrooms — except that plain parents (not parent
//     reps) don't see other parents' posts, only official ones.
func Visible(usr *user.User, items []NewsItem, sel Selection, search string) []NewsItem {
	visible := audience(usr, items)

	if sel.ClassroomOnly {
		visible = keep(visible, func(item NewsItem) bool {
			return item.Category == CategoryClassroom
		})
	} else if sel.Category != "" {
		visible = keep(visible, func(item NewsItem) bool {
			return item.Category == sel.Category
		})
	}

	if search != "" {
		needle := strings.ToLower(search)
		visible = keep(visible, func(item NewsItem) bool {
			return strings.Contains(strings.ToLower(item.Title), needle) ||
				strings.Contains(strings.ToLower(item.Content), needle) ||
				strings.Contains(strings.ToLower(item.Author), needle)
		})
	}
	return visible
}

func audience(usr *user.User, items []NewsItem) []NewsItem {
	schoolWideOnly := usr == nil || !usr.IsApproved || len(usr.Subscriptions) == 0

	return keep(items, func(item NewsItem) bool {
		if item.IsSchoolWide() {
			return true
		}
		if schoolWideOnly {
			return false
		}
		if !usr.SubscribedTo(item.ClassroomID.String) {
			return false
		}
		// parents only see official classroom posts, not other parents'
		if usr.IsParent() && item.SourceType == SourceParentRep {
			return false
		}
		return true
	})
}

func keep(items []NewsItem, pred func(NewsItem) bool) []NewsItem {
	out := make([]NewsItem, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
