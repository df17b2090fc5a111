package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/user"
)

// createAdmin updates or creates an administrator account. An existing
// account is promoted and approved; the password is always reset.
func (cli *commandLine) createAdmin(email, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		now := time.Now().UTC()
		usr = user.User{
			ID:        uuid.New().String(),
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		usr.Role = user.RoleAdmin
		usr.IsActive = true
		usr.IsApproved = true
		if err = usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}

	usr.Role = user.RoleAdmin
	usr.IsActive = true
	usr.IsApproved = true
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.Touch()
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
