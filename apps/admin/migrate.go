package main

import (
	"errors"

	"github.com/tshims/kazi/storage/database"
)

var gooseRunFunc = database.Migrate // mockable

var errNoMigrateDB = errors.New("migrate requires the postgres database engine")

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoMigrateDB
	}
	var arguments []string
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(cli.db.DB, args[0], arguments...)
}
