package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rsukotabanjar/jadwalrapat/internal/api"
	"github.com/rsukotabanjar/jadwalrapat/internal/config"
	"github.com/rsukotabanjar/jadwalrapat/internal/events"
	"github.com/rsukotabanjar/jadwalrapat/internal/models"
	"github.com/rsukotabanjar/jadwalrapat/internal/repository"
	"github.com/rsukotabanjar/jadwalrapat/internal/server"
	"github.com/rsukotabanjar/jadwalrapat/internal/service"
	"github.com/rsukotabanjar/jadwalrapat/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError logs err through zap, or writes it to w when the Before hook
// failed before a logger was configured
func reportError(w io.Writer, err error) {
	if zap.L().Core().Enabled(zapcore.ErrorLevel) {
		zap.L().Error("unhandled error", zap.Error(err))
		_ = zap.L().Sync()
		return
	}
	fmt.Fprintf(w, "jadwalrapat: %v\n", err)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "jadwalrapat",
		Usage: "meeting room schedule for RSU Kota Banjar",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Value: false,
				EnvVars: []string{
					config.EnvPrefix + "_DEBUG",
				},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the configuration (default: .env if present)",
			},
		},
		Before: func(cctx *cli.Context) (err error) {
			if err = config.LoadEnvFile(cctx.String("env-file")); err != nil {
				return
			}
			err = setupLogging(debugMode(cctx))
			return
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the schedule page and the JSON API",
				Action: serve,
			},
			{
				Name:   "rooms",
				Usage:  "print the configured room catalog",
				Action: listRooms,
			},
		},
	}
}

// debugMode honours JADWAL_DEBUG from the env file, which is loaded after
// the flags have been parsed
func debugMode(cctx *cli.Context) bool {
	if cctx.IsSet("debug") {
		return cctx.Bool("debug")
	}
	debug, err := strconv.ParseBool(os.Getenv(config.EnvPrefix + "_DEBUG"))
	return err == nil && debug
}

func setupLogging(debugMode bool) error {
	var cfg zap.Config

	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Development = false
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level.SetLevel(zapcore.InfoLevel)
	}

	cfg.OutputPaths = []string{
		"stdout",
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}

func listRooms(cctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	for _, room := range cfg.Catalog().Names() {
		fmt.Fprintln(cctx.App.Writer, room)
	}
	return nil
}

func serve(cctx *cli.Context) (err error) {
	ctx := cctx.Context
	defer func() { _ = zap.L().Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return
	}

	repo, err := repository.NewRepository(cfg.Redis)
	if err != nil {
		return
	}
	defer func() {
		if err := repo.Close(); err != nil {
			zap.L().Error("failed to close repository", zap.Error(err))
		}
	}()

	store := service.NewBookingStore(repo, cfg.Catalog())

	if cfg.SeedSampleBookings {
		var n int
		if n, err = store.Seed(ctx, models.SampleBookings()); err != nil {
			return
		}
		zap.L().Info("seeded sample bookings", zap.Int("count", n))
	}

	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		return
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zap.L().Error("failed to close event publisher", zap.Error(err))
		}
	}()

	webHandler, err := web.NewHandler(store)
	if err != nil {
		return
	}

	store.RegisterUpdateCallback(webHandler.NotifyBookingUpdate)
	store.RegisterUpdateCallback(events.Callback(publisher))

	srv := server.New(cfg.ListenAddress, webHandler, api.NewHandler(store, store))
	// Close the SSE streams first so open event requests end during shutdown
	srv.OnShutdown(webHandler.Shutdown)

	zap.L().Info("starting jadwalrapat",
		zap.Strings("rooms", cfg.Catalog().Names()),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("events", cfg.Events.Enabled()),
	)

	return srv.Run(ctx)
}

func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	if !cfg.Enabled() {
		return events.Nop{}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	zap.L().Info("publishing booking events", zap.String("exchange", cfg.Exchange))
	return publisher, nil
}
