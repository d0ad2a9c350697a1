package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tshims/kazi/apps/api/echo"
	"github.com/tshims/kazi/core"
	"github.com/tshims/kazi/core/assignment"
	"github.com/tshims/kazi/core/submission"
	"github.com/tshims/kazi/core/user"
	"github.com/tshims/kazi/services/email"
	"github.com/tshims/kazi/services/logger"
	"github.com/tshims/kazi/storage/database"
	"github.com/tshims/kazi/storage/database/jsonfile"
	"github.com/tshims/kazi/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up logger
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up repositories
	var (
		usrRepo user.Repository
		asgRepo assignment.Repository
		subRepo submission.Repository
	)
	switch core.Conf.Database.Engine {
	case "postgres":
		db, err := database.Open(core.Conf)
		errAndDie(logger, err)
		defer db.Close()
		errAndDie(logger, database.Ping(db))
		usrRepo = sqlxrepos.NewUserRepository(db)
		asgRepo = sqlxrepos.NewAssignmentRepository(db)
		subRepo = sqlxrepos.NewSubmissionRepository(db)
	default:
		db, err := jsonfiledb.Open(core.Conf.Database.Path)
		errAndDie(logger, err)
		usrRepo = jsonfiledb.NewUserRepository(db)
		asgRepo = jsonfiledb.NewAssignmentRepository(db)
		subRepo = jsonfiledb.NewSubmissionRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	validate, translator := core.NewValidator()

	usrSvc := user.NewService(usrRepo, mailSvc)
	asgSvc := assignment.NewService(asgRepo, usrRepo, mailSvc)
	subSvc := submission.NewService(subRepo, asgRepo)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Addr:          core.Conf.Server.Addr,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		UserSvc:       usrSvc,
		AssignmentSvc: asgSvc,
		SubmissionSvc: subSvc,
		Shutdown:      func() { shutdown <- syscall.SIGTERM },
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening on " + core.Conf.Server.Addr)
		serverErrors <- app.Start()
	}()

	select {
	case err := <-serverErrors:
		errAndDie(logger, err)
	case sig := <-shutdown:
		logger.Info("shutting down: " + sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("graceful shutdown failed", err)
		}
	}
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
