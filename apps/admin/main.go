package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/tshims/kazi/core"
	"github.com/tshims/kazi/core/user"
	"github.com/tshims/kazi/storage/database"
	"github.com/tshims/kazi/storage/database/jsonfile"
	sqlxrepos "github.com/tshims/kazi/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up store
	var usrRepo user.Repository
	var db *sqlx.DB
	switch core.Conf.Database.Engine {
	case "postgres":
		var err error
		db, err = database.Open(core.Conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(database.Ping(db))
		usrRepo = sqlxrepos.NewUserRepository(db)
	default:
		jdb, err := jsonfiledb.Open(core.Conf.Database.Path)
		errAndDie(err)
		usrRepo = jsonfiledb.NewUserRepository(jdb)
	}

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: usrRepo,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
