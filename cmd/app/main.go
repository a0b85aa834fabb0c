package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"vacancybot/cmd"
	httpin "vacancybot/internal/adapters/in/http"
	"vacancybot/internal/adapters/out/postgres"
	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/pkg/clock"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v3"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	app := &cli.Command{
		Name:  "vacancybot",
		Usage: "Job vacancy search assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and the delivery scheduler",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "migrate", Usage: "migrate the schema before starting"}},
				Action: serve,
			},
			{
				Name:  "deliver",
				Usage: "Deliver vacancies now, to one user or to everyone due",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "user", Usage: "deliver to this user only"},
					&cli.BoolFlag{Name: "force", Usage: "ignore the schedule and the once-a-day rule"},
					&cli.BoolFlag{Name: "no-mark", Usage: "do not record the delivery"},
				},
				Action: deliver,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema",
				Action: migrate,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runtime struct {
	cfg    cmd.Config
	db     *gorm.DB
	logger *slog.Logger
}

func setup(c *cli.Command) (runtime, error) {
	cfg, err := cmd.LoadConfig(c.String("config"))
	if err != nil {
		return runtime{}, err
	}

	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Log.Level)}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)

	db, err := gorm.Open(gormpostgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return runtime{}, fmt.Errorf("failed to connect database: %w", err)
	}

	return runtime{cfg: cfg, db: db, logger: logger}, nil
}

func (r runtime) close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func serve(ctx context.Context, c *cli.Command) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()

	if c.Bool("migrate") {
		if err := postgres.Migrate(ctx, rt.db); err != nil {
			return err
		}
	}

	root := cmd.NewCompositionRoot(rt.cfg, rt.db, rt.logger)
	defer func() { _ = root.Close() }()

	e, err := httpin.NewRouter(root.CreateHTTPServer(), echoLevel(rt.cfg.Log.Level))
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("http server started", "port", rt.cfg.HTTP.Port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", rt.cfg.HTTP.Port))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func deliver(ctx context.Context, c *cli.Command) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()

	root := cmd.NewCompositionRoot(rt.cfg, rt.db, rt.logger)
	defer func() { _ = root.Close() }()

	now := clock.System{}.Now()

	if !c.IsSet("user") {
		tick, err := commands.NewRunDeliveryTickCommand(now)
		if err != nil {
			return err
		}
		report, err := root.CreateRunDeliveryTickCommandHandler().Handle(ctx, tick)
		if err != nil {
			return err
		}
		fmt.Printf("users: %d, delivered: %d, failed: %d\n", report.Users, report.Delivered, report.Failed)
		for reason, n := range report.Skipped {
			fmt.Printf("skipped (%s): %d\n", reason, n)
		}
		return nil
	}

	command, err := commands.NewDeliverVacanciesCommand(c.Int("user"), now, c.Bool("force"), !c.Bool("no-mark"))
	if err != nil {
		return err
	}
	outcome, err := root.CreateDeliverVacanciesCommandHandler().Handle(ctx, command)
	if err != nil {
		return err
	}
	if !outcome.Delivered {
		fmt.Printf("user %d skipped: %s\n", outcome.UserID, outcome.Skipped)
		return nil
	}
	fmt.Printf("user %d: %d vacancies for %q (marked: %t)\n", outcome.UserID, outcome.Count, outcome.QueryText, outcome.Marked)
	return nil
}

func migrate(ctx context.Context, c *cli.Command) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := postgres.Migrate(ctx, rt.db); err != nil {
		return err
	}
	rt.logger.Info("schema is up to date")
	return nil
}

func slogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func echoLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
