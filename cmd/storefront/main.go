package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Olajosh80/Realms/internal/app"
	"github.com/Olajosh80/Realms/pkg/config"
	"github.com/Olajosh80/Realms/pkg/logging"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "storefront",
		Usage: "Beyond Realms storefront and admin server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded before reading configuration"},
		},
		Before: func(c *cli.Context) error {
			config.LoadEnvFile(c.String("env-file"))
			return nil
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "migrate", Usage: "migrate tables before serving"}},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update database tables",
				Action: migrate,
			},
			cartCommand(),
		},
	}
}

func open(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	cfg.MustServe()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	return app.New(ctx, cfg, logger)
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Bool("migrate") {
		if err := a.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return a.Run(ctx)
}

func migrate(c *cli.Context) error {
	a, err := open(c.Context)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Migrate(c.Context); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.Log.Info("migrated")
	return nil
}
