package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/user"
)

func TestService_Post(t *testing.T) {
	admin := user.User{FirstName: "Kristin", LastName: "Beers", Role: user.RoleAdmin, IsApproved: true}

	t.Run("defaults to announcement", func(t *testing.T) {
		svc := NewService(NewStore())
		item, err := svc.Post(NewItem{Title: "Picture day", Content: "Smile"}, admin)
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, CategoryAnnouncement, item.Category)
		assert.Equal(t, "Kristin Beers", item.Author)
		assert.Equal(t, SourceOfficial, item.SourceType)
		assert.True(t, item.IsSchoolWide())
		assert.Equal(t, 1, svc.store.Len())
	})

	t.Run("classroom id forces classroom category", func(t *testing.T) {
		svc := NewService(NewStore())
		item, err := svc.Post(NewItem{Title: "Field trip", Content: "Slips due", Category: CategoryEvent, ClassroomID: "5A"}, admin)
		require.NoError(t, err)
		assert.Equal(t, CategoryClassroom, item.Category)
		assert.Equal(t, "5A", item.ClassroomID.String)
		assert.False(t, item.IsSchoolWide())
	})

	t.Run("classroom category without a classroom is rejected", func(t *testing.T) {
		svc := NewService(NewStore())
		_, err := svc.Post(NewItem{Title: "Orphan", Content: "x", Category: CategoryClassroom}, admin)
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok, "Post() = %v; want ValidationError", err)
		assert.Equal(t, "classroom_id", vErr.Fields[0].Field)
		assert.Equal(t, 0, svc.store.Len())
	})
}

func TestService_PostClassroom(t *testing.T) {
	t.Run("teacher posts officially to first classroom", func(t *testing.T) {
		svc := NewService(NewStore())
		teacher := user.User{FirstName: "Jane", LastName: "Wilson", Role: user.RoleTeacher, IsApproved: true, Subscriptions: []string{"5A", "3B"}}

		item, err := svc.PostClassroom(NewClassroomItem{Title: "Homework", Content: "Page 12"}, teacher)
		require.NoError(t, err)
		assert.Equal(t, CategoryClassroom, item.Category)
		assert.Equal(t, "5A", item.ClassroomID.String)
		assert.Equal(t, SourceOfficial, item.SourceType)
		assert.Equal(t, "Jane Wilson, Teacher", item.Author)
	})

	t.Run("parent rep posts are stamped", func(t *testing.T) {
		svc := NewService(NewStore())
		rep := user.User{FirstName: "Dana", LastName: "Reed", Role: user.RoleParentRep, IsApproved: true, Subscriptions: []string{"3B"}}

		item, err := svc.PostClassroom(NewClassroomItem{Title: "Potluck", Content: "Sign up"}, rep)
		require.NoError(t, err)
		assert.Equal(t, SourceParentRep, item.SourceType)
		assert.Equal(t, "Dana Reed, Parent Representative", item.Author)

		// parents subscribed to the classroom never see it
		parent := &user.User{Role: user.RoleParent, IsApproved: true, Subscriptions: []string{"3B"}}
		assert.Empty(t, svc.Feed(parent, Selection{}, ""))
		assert.Len(t, svc.Feed(&rep, Selection{}, ""), 1)
	})

	t.Run("no classroom", func(t *testing.T) {
		svc := NewService(NewStore())
		admin := user.User{Role: user.RoleAdmin, IsApproved: true}

		_, err := svc.PostClassroom(NewClassroomItem{Title: "x", Content: "y"}, admin)
		assert.Equal(t, ErrNoClassroom, err)
	})
}
