package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/stephaniewilkinson/siskiyou/core"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service whose fire-and-forget side effects
// (last-login stamp) run synchronously, for deterministic tests.
func NewServiceMock(repo Repository, resolver *Resolver, mailSvc core.EmailService, logger core.Logger) Service {
	return &serviceMock{
		service: service{
			repo:     repo,
			resolver: resolver,
			mailSvc:  mailSvc,
			logger:   logger,
		},
	}
}

func (svc *serviceMock) Authenticate(ctx context.Context, creds Credentials) (User, error) {
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
	usr.IsApproved = usr.IsApproved || svc.resolver.IsAdminEmail(usr.Email)

	// run synchronously
	if err = svc.repo.SetLastLogin(ctx, usr.ID, time.Now().UTC()); err != nil {
		svc.logger.Error("setting last login", err, usr)
	}
	return usr, nil
}
