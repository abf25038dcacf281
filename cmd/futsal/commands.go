package main

import (
	"context"
	"fmt"
	"time"

	mongoMigration "futsal/internal/migrations/mongo"
	"futsal/pkg/app"
	"futsal/pkg/config"

	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and the daily booking purge",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "apply Mongo migrations before serving",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load(ServiceName)
			cfg.SetMongo()
			cfg.SetRedis()

			if c.Bool("migrate") {
				if err := migrate(c.Context, cfg, 2*time.Minute); err != nil {
					cfg.GracefulShutdown()
					return err
				}
			}

			cfg.Log.Info("Starting futsal service")
			publisher := newPublisher(cfg)
			components := wire(cfg, publisher)

			serverApp := app.NewApplication(cfg)
			serverApp.SetApp(components.handlers...)
			serverApp.AddWorker(components.scheduler)
			serverApp.OnShutdown("booking-events", publisher.Close)
			serverApp.Run()
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create collections, schema validators and indexes",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 2 * time.Minute,
				Usage: "give up after this long",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load(ServiceName + "-migrate")
			cfg.SetMongo()
			defer cfg.GracefulShutdown()

			cfg.Log.Info("Starting Mongo migration job")
			return migrate(c.Context, cfg, c.Duration("timeout"))
		},
	}
}

func purgeCommand() *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "delete bookings dated before today once and exit",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Value: time.Minute,
				Usage: "give up after this long",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load(ServiceName + "-purge")
			cfg.SetMongo()
			defer cfg.GracefulShutdown()

			publisher := newPublisher(cfg)
			defer func() {
				if err := publisher.Close(); err != nil {
					cfg.Log.Error("Failed to close resource", "resource", "booking-events", "error", err)
				}
			}()

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			deleted, err := wire(cfg, publisher).bookings.PurgeExpired(ctx)
			if err != nil {
				return fmt.Errorf("purge failed: %w", err)
			}
			fmt.Printf("Deleted %d expired records\n", deleted)
			return nil
		},
	}
}

func migrate(ctx context.Context, cfg *config.Config, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
