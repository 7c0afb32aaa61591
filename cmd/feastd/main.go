package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/azure/feast-azure/pkg/buildtime"
	kcs "github.com/azure/feast-azure/pkg/configs/server"
	kdb "github.com/azure/feast-azure/pkg/db"
	kpg "github.com/azure/feast-azure/pkg/db/postgres"
	"github.com/azure/feast-azure/pkg/logging"
	"github.com/azure/feast-azure/pkg/utils/echoutil"
	"github.com/azure/feast-azure/pkg/utils/filewatch"
	"github.com/azure/feast-azure/pkg/utils/retry"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "", "log level. debug|info|warn|error|off (default: as config, or info)")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	// read configfile
	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("can not read configration")
	}
	if *loglevel != "" {
		conf.Log.Level = *loglevel
	}
	closer, err := logging.Setup(conf.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("can not set up logging")
	}
	defer closer.Close()
	log.Info().Str("version", buildtime.Version()).Msg("feastd")

	ctx := context.Background()
	db, err := connect(ctx, conf.DBURI, conf.DBConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("can not connect to database")
	}
	defer db.Close()

	if conf.SchemaBootstrap {
		if err := db.Schema().Upgrade(ctx); err != nil {
			log.Fatal().Err(err).Msg("can not upgrade database schema")
		}
	}
	if v, err := db.Schema().Version(ctx); err != nil {
		log.Fatal().Err(err).Msg("can not read database schema version")
	} else {
		log.Info().Int("version", v).Msg("database schema")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())

	// set log
	echoutil.SetLevel(e, conf.Log.Level)
	e.HTTPErrorHandler = echoutil.HTTPErrorHandler(log.Logger)
	e.Use(
		middleware.Recover(),
		echoutil.TraceId,
		echoutil.Identify,
		echoutil.LogHandlerFunc(log.Logger),
	)

	if err := routes(e, root("/api"), db); err != nil {
		log.Fatal().Err(err).Msg("can not register routes")
	}
	for _, r := range e.Routes() {
		log.Debug().Str("method", r.Method).Str("path", r.Path).Msg("registered route")
	}

	// quit on config update, to be restarted with the new one.
	watchctx, cancel, err := filewatch.UntilModifyContext(ctx, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("can not watch configration")
	}
	defer cancel()
	context.AfterFunc(watchctx, func() {
		log.Warn().Err(context.Cause(watchctx)).Msg("config file is updated. quit to restart server.")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Error().Err(err).Msg("error on shutdown by config update")
		}
	})

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		err = e.StartTLS(":"+conf.ServerPort, cert, key)
	} else {
		err = e.Start(":" + conf.ServerPort)
	}
	if errors.Is(err, http.ErrServerClosed) && watchctx.Err() != nil {
		os.Exit(1)
	}
	log.Fatal().Err(err).Msg("server stopped")
}

// connect waits for the database up to timeout.
func connect(ctx context.Context, uri string, timeout time.Duration) (kdb.FeastDatabase, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return retry.Blocking(
		ctx, retry.ExponentialBackoff(500*time.Millisecond, 2, 10*time.Second),
		func() (kdb.FeastDatabase, error) {
			db, err := kpg.New(ctx, uri)
			if err != nil {
				log.Warn().Err(err).Msg("database is not ready. retrying")
				return nil, fmt.Errorf("%w: %w", retry.ErrRetry, err)
			}
			return db, nil
		},
	)
}
