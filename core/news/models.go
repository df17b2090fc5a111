package news

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/stephaniewilkinson/siskiyou/core"
)

// Categories
const (
	CategoryAnnouncement = "announcement"
	CategoryEvent        = "event"
	CategorySports       = "sports"
	CategoryAcademic     = "academic"
	CategoryCommunity    = "community"
	CategoryClassroom    = "classroom"
)

var AllCategories = []string{
	CategoryAnnouncement,
	CategoryEvent,
	CategorySports,
	CategoryAcademic,
	CategoryCommunity,
	CategoryClassroom,
}

// CategoryInfo holds the display attributes of a category.
type CategoryInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Categories maps each category to its display attributes.
var Categories = map[string]CategoryInfo{
	CategoryAnnouncement: {Label: "Announcement", Icon: "megaphone", Color: "red"},
	CategoryEvent:        {Label: "Event", Icon: "calendar", Color: "blue"},
	CategorySports:       {Label: "Sports", Icon: "sportscourt", Color: "green"},
	CategoryAcademic:     {Label: "Academic", Icon: "book", Color: "purple"},
	CategoryCommunity:    {Label: "Community", Icon: "person.3", Color: "orange"},
	CategoryClassroom:    {Label: "Classroom", Icon: "pencil.and.ruler", Color: "teal"},
}

// Source types distinguish official announcements from parent rep posts.
const (
	SourceOfficial  = "official"
	SourceParentRep = "parent_rep"
)

// SourceInfo holds the display attributes of a source type.
type SourceInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var SourceTypes = map[string]SourceInfo{
	SourceOfficial:  {Label: "Official", Icon: "building.columns.fill"},
	SourceParentRep: {Label: "Parent Representative", Icon: "person.2.fill"},
}

// NewsItem is immutable once created; there is no edit or delete.
// ClassroomID is null for school-wide items, which are visible to every
// audience including guests. Invariant: Category == CategoryClassroom
// exactly when ClassroomID is set.
type NewsItem struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Date          time.Time   `json:"date"`
	Author        string      `json:"author"`
	Category      string      `json:"category"`
	ImageURL      null.String `json:"image_url"`
	IsPinned      bool        `json:"is_pinned"`
	ClassroomID   null.String `json:"classroom_id"`
	ClassroomName null.String `json:"classroom_name"`
	SourceType    string      `json:"source_type"`
}

// IsSchoolWide reports whether the item has no classroom scope.
func (item NewsItem) IsSchoolWide() bool {
	return !item.ClassroomID.Valid
}

// NewItem is an admin-authored item; school-wide unless a classroom is given.
type NewItem struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	Category      string `json:"category" validate:"omitempty,category"`
	IsPinned      bool   `json:"is_pinned"`
	ClassroomID   string `json:"classroom_id"`
	ClassroomName string `json:"classroom_name"`
}

func (ni *NewItem) Validate(validate *validator.Validate) error {
	ni.Title = core.CleanString(ni.Title)
	ni.Content = core.CleanString(ni.Content)
	ni.Category = core.CleanString(ni.Category, true /* lower */)
	ni.ClassroomID = core.CleanString(ni.ClassroomID)
	ni.ClassroomName = core.CleanString(ni.ClassroomName)
	return validate.Struct(ni)
}

// NewClassroomItem is a staff- or parent-rep-authored classroom post;
// the classroom is always the author's own.
type NewClassroomItem struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (ni *NewClassroomItem) Validate(validate *validator.Validate) error {
	ni.Title = core.CleanString(ni.Title)
	ni.Content = core.CleanString(ni.Content)
	return validate.Struct(ni)
}

var (
	categoryTag  = "category"
	categoryText = "invalid category"
)

// RegisterValidators adds this package's custom validations to validate.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	_, ok := Categories[fl.Field().String()]
	return ok
}
