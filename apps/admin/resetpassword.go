package main

import (
	"context"

	"github.com/stephaniewilkinson/siskiyou/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()

	usr, err := cli.usrRepo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.Touch()
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
