package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stephaniewilkinson/siskiyou/apps/api/echo"
	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/news"
	"github.com/stephaniewilkinson/siskiyou/core/user"
	emailsvc "github.com/stephaniewilkinson/siskiyou/services/email"
	logsvc "github.com/stephaniewilkinson/siskiyou/services/logger"
	"github.com/stephaniewilkinson/siskiyou/storage/database"
	inmemdb "github.com/stephaniewilkinson/siskiyou/storage/database/inmem"
	sqlxrepos "github.com/stephaniewilkinson/siskiyou/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)
	if err := run(std); err != nil {
		std.Fatalf("%+v", err)
	}
}

func run(std *log.Logger) error {
	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = core.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up repos; DEV runs off the in-memory store when no database is
	// configured
	var usrRepo user.Repository
	if conf.Database.Name == "" && conf.Debug {
		usrRepo = inmemdb.NewUserRepository(inmemdb.NewDB())
	} else {
		db, err := database.Open(conf)
		if err != nil {
			return err
		}
		defer db.Close()
		if err = database.Ping(db); err != nil {
			return err
		}
		if err = database.Migrate(db, conf); err != nil {
			return err
		}
		usrRepo = sqlxrepos.NewUserRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.TestMode {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	resolver := user.NewResolver(conf.School)
	usrSvc := user.NewService(usrRepo, resolver, mailSvc, logger)
	newsSvc := news.NewService(news.NewStore(news.Seed()...))

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	news.RegisterValidators(validate, translator)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	signalShutdown := func() { shutdown <- syscall.SIGTERM }

	app := echoapi.NewServer(
		&echoapi.Options{Addr: conf.Server.Address()},
		signalShutdown,
		&echoapi.Deps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			NewsSvc:    newsSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	serverErrors := make(chan error, 1)
	go func() { serverErrors <- app.Start() }()
	logger.Info("API server listening on " + conf.Server.Address())

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutdown started", sig)
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			return err
		}
		logger.Info("shutdown complete")
	}
	return nil
}
