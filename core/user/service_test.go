package user_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/user"
	emailsvc "github.com/stephaniewilkinson/siskiyou/services/email"
	inmemdb "github.com/stephaniewilkinson/siskiyou/storage/database/inmem"
)

func newTestService(t *testing.T) (user.Service, *emailsvc.ConsoleService) {
	t.Helper()

	conf := &core.Config{AppName: "Siskiyou", DefaultFromEmail: "noreply@siskiyouschool.org"}
	conf.School = core.SchoolConfig{
		Name:        "Siskiyou School",
		EmailDomain: "@siskiyouschool.org",
		AdminEmails: []string{"what.happens@gmail.com"},
	}

	repo := inmemdb.NewUserRepository(inmemdb.NewDB())
	resolver := user.NewResolver(conf.School)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	logger := core.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	return user.NewServiceMock(repo, resolver, mailSvc, logger), mailSvc
}

func register(t *testing.T, svc user.Service, nu user.NewUser) user.User {
	t.Helper()
	usr, err := svc.Register(context.Background(), nu)
	require.NoError(t, err)
	return usr
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc, mailSvc := newTestService(t)

	t.Run("outside email lands pending parent", func(t *testing.T) {
		usr := register(t, svc, user.NewUser{
			FirstName: "John", LastName: "Doe",
			Email: "John.Doe@Example.com", Password: "LokiThor24",
		})
		assert.NotEmpty(t, usr.ID)
		assert.Equal(t, "john.doe@example.com", usr.Email, "email should be lowercased")
		assert.Equal(t, user.RoleParent, usr.Role)
		assert.False(t, usr.IsApproved)
		assert.True(t, usr.IsActive)
		assert.NotEmpty(t, usr.PasswordHash)
		assert.NoError(t, usr.CheckPassword("LokiThor24"))
	})

	t.Run("institutional email lands approved teacher", func(t *testing.T) {
		usr := register(t, svc, user.NewUser{
			FirstName: "Jane", LastName: "Wilson",
			Email: "jane.wilson@siskiyouschool.org", Password: "LokiThor24",
		})
		assert.Equal(t, user.RoleTeacher, usr.Role)
		assert.True(t, usr.IsApproved)
	})

	t.Run("allow-listed email lands approved admin regardless of requested role", func(t *testing.T) {
		usr := register(t, svc, user.NewUser{
			FirstName: "Ad", LastName: "Min",
			Email: "what.happens@gmail.com", Password: "LokiThor24", Role: user.RoleStudent,
		})
		assert.Equal(t, user.RoleAdmin, usr.Role)
		assert.True(t, usr.IsApproved)
	})

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		_, err := svc.Register(ctx, user.NewUser{
			FirstName: "John", LastName: "Again",
			Email: "JOHN.DOE@example.com", Password: "LokiThor24",
		})
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr), "Register() = %v; want ValidationError", err)
		assert.Equal(t, "email", vErr.Fields[0].Field)
	})

	t.Run("missing password is a validation error", func(t *testing.T) {
		_, err := svc.Register(ctx, user.NewUser{Email: "x@example.com"})
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("each signup gets a welcome mail", func(t *testing.T) {
		sent := mailSvc.SentMessages()
		require.Len(t, sent, 3)
		assert.Equal(t, "john.doe@example.com", sent[0].To[0].Address)
		assert.Contains(t, sent[0].Body, "awaiting approval")
		assert.NotContains(t, sent[1].Body, "awaiting approval")
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	register(t, svc, user.NewUser{
		FirstName: "John", LastName: "Doe",
		Email: "john.doe@example.com", Password: "LokiThor24",
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, user.Credentials{Email: "nobody@example.com", Password: "LokiThor24"})
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, user.Credentials{Email: "john.doe@example.com", Password: "nope"})
		assert.Equal(t, user.ErrInvalidCredentials, errors.Cause(err))
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, user.Credentials{})
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("unapproved account may still log in", func(t *testing.T) {
		usr, err := svc.Authenticate(ctx, user.Credentials{Email: "John.Doe@Example.com", Password: "LokiThor24"})
		require.NoError(t, err)
		assert.False(t, usr.IsApproved)
		assert.False(t, usr.LastLogin.Valid, "returned snapshot predates the stamp")

		usr, err = svc.GetByID(ctx, usr.ID)
		require.NoError(t, err)
		assert.True(t, usr.LastLogin.Valid, "last login should be stamped")
	})

	t.Run("allow-listed email is approved even when the record is not", func(t *testing.T) {
		register(t, svc, user.NewUser{
			FirstName: "Ad", LastName: "Min",
			Email: "what.happens@gmail.com", Password: "LokiThor24",
		})
		usr, err := svc.Authenticate(ctx, user.Credentials{Email: "what.happens@gmail.com", Password: "LokiThor24"})
		require.NoError(t, err)
		assert.True(t, usr.IsApproved)
	})
}

func TestService_ApproveAndDeny(t *testing.T) {
	ctx := context.Background()
	svc, mailSvc := newTestService(t)
	john := register(t, svc, user.NewUser{
		FirstName: "John", LastName: "Doe",
		Email: "john.doe@example.com", Password: "LokiThor24",
	})
	sam := register(t, svc, user.NewUser{
		FirstName: "Sam", LastName: "Smith",
		Email: "sam.smith@example.com", Password: "LokiThor24",
	})

	pending, err := svc.QueryPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	t.Run("approve", func(t *testing.T) {
		usr, err := svc.Approve(ctx, john.ID)
		require.NoError(t, err)
		assert.True(t, usr.IsApproved)

		pending, err := svc.QueryPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, sam.ID, pending[0].ID)

		sent := mailSvc.SentMessages()
		assert.Equal(t, "Account approved", sent[len(sent)-1].Subject)
	})

	t.Run("approve is idempotent", func(t *testing.T) {
		before := len(mailSvc.SentMessages())
		_, err := svc.Approve(ctx, john.ID)
		require.NoError(t, err)
		assert.Len(t, mailSvc.SentMessages(), before, "re-approval should not mail again")
	})

	t.Run("approve unknown id", func(t *testing.T) {
		_, err := svc.Approve(ctx, "nope")
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})

	t.Run("deny deletes the account", func(t *testing.T) {
		require.NoError(t, svc.Deny(ctx, sam.ID))
		_, err := svc.GetByID(ctx, sam.ID)
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})
}

func TestService_Children(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	usr := register(t, svc, user.NewUser{
		FirstName: "John", LastName: "Doe",
		Email: "john.doe@example.com", Password: "LokiThor24",
	})

	usr, err := svc.AddChild(ctx, usr, user.NewChild{
		Name: "Emma", Grade: "5th Grade", ClassroomID: "5A", TeacherName: "Ms. Wilson",
	})
	require.NoError(t, err)
	require.Len(t, usr.Children, 1)
	assert.Equal(t, []string{"5A"}, usr.Subscriptions)

	// change persisted
	stored, err := svc.GetByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.Children, stored.Children)
	assert.Equal(t, usr.Subscriptions, stored.Subscriptions)

	usr, err = svc.RemoveChild(ctx, usr, usr.Children[0].ID)
	require.NoError(t, err)
	assert.Empty(t, usr.Children)
	assert.Empty(t, usr.Subscriptions)

	_, err = svc.RemoveChild(ctx, usr, "nope")
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
}

func TestNewUser_Validate(t *testing.T) {
	svc, _ := newTestService(t)
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	ctx := context.Background()

	nu := user.NewUser{
		FirstName: "  John ", LastName: "Doe",
		Email: "John.Doe@Example.com", Password: "LokiThor24",
	}
	require.NoError(t, nu.Validate(ctx, validate, svc))
	assert.Equal(t, "John", nu.FirstName)
	assert.Equal(t, "john.doe@example.com", nu.Email)

	// struct rules still apply
	bad := user.NewUser{FirstName: "John", LastName: "Doe", Email: "nope", Password: "LokiThor24"}
	assert.Error(t, bad.Validate(ctx, validate, svc))

	// taken email surfaces as a field error
	register(t, svc, user.NewUser{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Password: "LokiThor24",
	})
	dup := user.NewUser{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "LokiThor24"}
	err := dup.Validate(ctx, validate, svc)
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}
