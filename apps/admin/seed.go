package main

import (
	"time"

	"github.com/tshims/kazi/core/user"
)

type seedUser struct {
	name  string
	email string
	pwd   string
	role  user.Role
}

var seedUsers = []seedUser{
	{name: "Teacher One", email: "teacher@example.com", pwd: "teacher123", role: user.RoleTeacher},
	{name: "Student One", email: "student@example.com", pwd: "student123", role: user.RoleStudent},
}

// seed creates the demo accounts. It is a no-op when any user already exists.
func (cli *commandLine) seed() error {
	existing, err := cli.usrRepo.QueryAllUsers()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Println("users exist; nothing to seed")
		return nil
	}

	for _, su := range seedUsers {
		usr := user.User{
			Name:      su.name,
			Email:     su.email,
			Role:      su.role,
			CreatedAt: time.Now().UTC(),
		}
		if err := usr.SetPassword(su.pwd); err != nil {
			return err
		}
		if _, err := cli.usrRepo.CreateUser(usr); err != nil {
			return err
		}
		logger.Printf("seeded %s (%s)", su.email, su.role)
	}
	return nil
}
