package main

import (
	"time"

	"github.com/tshims/kazi/core"
	"github.com/tshims/kazi/core/user"
)

// addUser creates a user.User with the given role.
func (cli *commandLine) addUser(name, email, pwd string, role user.Role) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	if !role.Valid() {
		return user.ErrInvalidRole
	}
	if err := cli.usrRepo.CheckEmailUniqueness(email); err != nil {
		return err
	}

	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateUser(usr)
	return err
}
