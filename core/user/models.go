package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/stephaniewilkinson/siskiyou/core"
)

// Roles. Every user holds exactly one.
const (
	RoleStudent   = "student"
	RoleParent    = "parent"
	RoleTeacher   = "teacher"
	RoleAdmin     = "admin"
	RoleParentRep = "parent_rep"
)

var (
	AllRoles = []string{RoleStudent, RoleParent, RoleTeacher, RoleAdmin, RoleParentRep}

	// Roles maps each role value to its display attributes.
	Roles = []RoleInfo{
		{Name: "Student", Value: RoleStudent},
		{Name: "Parent", Value: RoleParent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Administrator", Value: RoleAdmin},
		{Name: "Parent Representative", Value: RoleParentRep},
	}
)

type RoleInfo struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RoleName returns the display name for a role value.
func RoleName(role string) string {
	for _, r := range Roles {
		if r.Value == role {
			return r.Name
		}
	}
	return ""
}

// Child associates a parent account with a student and, through the
// student's classroom, with that classroom's news feed.
type Child struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Grade       string `json:"grade"`
	ClassroomID string `json:"classroom_id"`
	TeacherName string `json:"teacher_name"`
}

func (c Child) ClassDisplay() string {
	return c.Grade + " - " + c.TeacherName
}

type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsApproved   bool      `json:"is_approved" db:"is_approved"`
	LastLogin    null.Time `json:"last_login" db:"last_login"`

	// Subscriptions holds the classroom ids whose feeds this user may see
	// once approved. Order is preserved for display only.
	Subscriptions []string `json:"classroom_subscriptions"`
	Children      []Child  `json:"children"`

	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Touch bumps UpdatedAt; call on any mutation.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool   { return u.Role == RoleTeacher }
func (u *User) IsParent() bool    { return u.Role == RoleParent }
func (u *User) IsParentRep() bool { return u.Role == RoleParentRep }
func (u *User) IsStudent() bool   { return u.Role == RoleStudent }

// IsStaff reports whether the user may author official classroom posts.
func (u *User) IsStaff() bool {
	return u.IsTeacher() || u.IsAdmin()
}

// NewUser contains information needed to sign a new User up.
// The role is a request only; the Resolver has the last word.
type NewUser struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"omitempty,role"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, nu.Email)
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return validate.Struct(c)
}

// NewChild contains information needed to attach a Child to a parent account.
type NewChild struct {
	Name        string `json:"name" validate:"required"`
	Grade       string `json:"grade"`
	ClassroomID string `json:"classroom_id" validate:"required"`
	TeacherName string `json:"teacher_name"`
}

func (nc *NewChild) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Grade = core.CleanString(nc.Grade)
	nc.ClassroomID = core.CleanString(nc.ClassroomID)
	nc.TeacherName = core.CleanString(nc.TeacherName)
	return validate.Struct(nc)
}
