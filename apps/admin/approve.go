package main

import (
	"context"

	"github.com/stephaniewilkinson/siskiyou/core"
)

func (cli *commandLine) approve(email string) error {
	ctx := context.Background()

	usr, err := cli.usrRepo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if usr.IsApproved {
		return nil
	}
	usr.IsApproved = true
	usr.Touch()
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
