package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/stephaniewilkinson/siskiyou/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid password")
)

type (
	Repository interface {
		// CheckEmailUniqueness returns ErrEmailExists when a record with the
		// same (lowercased) email already exists.
		CheckEmailUniqueness(ctx context.Context, email string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		// QueryPendingUsers returns all records with IsApproved == false.
		QueryPendingUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		SetLastLogin(ctx context.Context, id string, t time.Time) error
		DeleteUser(ctx context.Context, id string) error
	}

	Service interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		Register(ctx context.Context, nu NewUser) (User, error)
		Authenticate(ctx context.Context, creds Credentials) (User, error)
		QueryAll(ctx context.Context) ([]User, error)
		QueryPending(ctx context.Context) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Approve(ctx context.Context, id string) (User, error)
		Deny(ctx context.Context, id string) error
		AddChild(ctx context.Context, usr User, nc NewChild) (User, error)
		RemoveChild(ctx context.Context, usr User, childID string) (User, error)
	}

	service struct {
		repo     Repository
		resolver *Resolver
		mailSvc  core.EmailService
		logger   core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, resolver *Resolver, mailSvc core.EmailService, logger core.Logger) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		mailSvc:  mailSvc,
		logger:   logger,
	}
}

func (svc *service) CheckEmailUniqueness(ctx context.Context, email string) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, core.CleanString(email, true /* lower */)); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a new account. The role and initial approval state
// come from the Resolver, never from the caller.
func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	email := core.CleanString(nu.Email, true /* lower */)
	if email == "" || nu.Password == "" {
		return User{}, core.NewValidationError(errors.New("email and password are required"))
	}

	role, approved := svc.resolver.Resolve(email, nu.Role)
	now := time.Now().UTC()
	usr := User{
		ID:         uuid.New().String(),
		FirstName:  core.CleanString(nu.FirstName),
		LastName:   core.CleanString(nu.LastName),
		Email:      email,
		Role:       role,
		IsActive:   true,
		IsApproved: approved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return User{}, errors.Wrap(err, "creating user")
	}

	svc.sendSignupMail(usr)
	return usr, nil
}

// Authenticate checks credentials and returns the matching account.
// Approval is not required to log in; it only gates classroom content.
// The last-login stamp is fire-and-forget: its failure is logged, never
// surfaced.
func (svc *service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	email := core.CleanString(creds.Email, true /* lower */)
	if email == "" || creds.Password == "" {
		return User{}, core.NewValidationError(errors.New("email and password are required"))
	}

	usr, err := svc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}

	// allow-listed admins are approved even when the stored record predates
	// the allow-list entry
	usr.IsApproved = usr.IsApproved || svc.resolver.IsAdminEmail(usr.Email)

	svc.stampLastLogin(usr)
	return usr, nil
}

func (svc *service) stampLastLogin(usr User) {
	now := time.Now().UTC()
	go func() {
		if err := svc.repo.SetLastLogin(context.Background(), usr.ID, now); err != nil {
			svc.logger.Error("setting last login", errors.Wrap(err, "setting last login"), usr)
		}
	}()
}

func (svc *service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *service) QueryPending(ctx context.Context) ([]User, error) {
	return svc.repo.QueryPendingUsers(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Approve grants classroom-content access to a pending account.
func (svc *service) Approve(ctx context.Context, id string) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if usr.IsApproved {
		return usr, nil
	}
	usr.IsApproved = true
	usr.Touch()
	usr, err = svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "updating user")
	}

	svc.sendApprovalMail(usr)
	return usr, nil
}

// Deny permanently deletes a pending account. There is no soft-delete.
func (svc *service) Deny(ctx context.Context, id string) error {
	return svc.repo.DeleteUser(ctx, id)
}

func (svc *service) AddChild(ctx context.Context, usr User, nc NewChild) (User, error) {
	usr.AddChild(Child{
		Name:        nc.Name,
		Grade:       nc.Grade,
		ClassroomID: nc.ClassroomID,
		TeacherName: nc.TeacherName,
	})
	usr.Touch()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) RemoveChild(ctx context.Context, usr User, childID string) (User, error) {
	if !usr.RemoveChild(childID) {
		return User{}, ErrNotFound
	}
	usr.Touch()
	return svc.repo.UpdateUser(ctx, usr)
}

// Mails

func (svc *service) sendSignupMail(usr User) {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject: "Welcome",
	}
	if usr.IsApproved {
		msg.Body = fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. You have full access to your classroom feeds.",
			usr.FirstName,
		)
	} else {
		msg.Body = fmt.Sprintf(
			"Hi %s,\n\nYour account has been created and is awaiting approval. "+
				"School-wide news is available right away; classroom feeds unlock once an administrator approves your account.",
			usr.FirstName,
		)
	}
	svc.mailSvc.SendMessages(msg)
}

func (svc *service) sendApprovalMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject: "Account approved",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account has been approved. Classroom feeds are now available.",
			usr.FirstName,
		),
	})
}
