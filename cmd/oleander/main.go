package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oleander-db/oleander/internal/app"
	"github.com/oleander-db/oleander/internal/platform/db"
	"github.com/oleander-db/oleander/schema"
)

const usage = `usage: oleander <command> [flags]

commands:
  reset   drop and recreate the oleander schema (destructive)
          flags: -yes (confirm), -force (reset even over live rows)
  check   verify database connectivity and schema presence
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "reset":
		fs := flag.NewFlagSet("reset", flag.ExitOnError)
		yes := fs.Bool("yes", false, "confirm that existing state is dropped")
		force := fs.Bool("force", false, "reset even when live rows exist")
		_ = fs.Parse(os.Args[2:])
		if err := runReset(ctx, logger, cfg, schema.Options{Confirm: *yes, Force: *force}); err != nil {
			logger.Error("schema reset", slog.Any("error", err))
			os.Exit(1)
		}
	case "check":
		if err := runCheck(ctx, logger, cfg); err != nil {
			logger.Error("check", slog.Any("error", err))
			os.Exit(1)
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func connect(ctx context.Context, cfg *app.Config) (*pgxpool.Pool, error) {
	return db.New(ctx, cfg.PGDSN)
}

func runReset(ctx context.Context, logger *slog.Logger, cfg *app.Config, opts schema.Options) error {
	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := schema.Reset(ctx, pool, opts); err != nil {
		return err
	}
	logger.Info("schema reset complete", slog.String("schema", "oleander"))
	return nil
}

func runCheck(ctx context.Context, logger *slog.Logger, cfg *app.Config) error {
	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	exists, err := schema.Exists(ctx, pool)
	if err != nil {
		return err
	}
	logger.Info("database reachable", slog.Bool("users_table", exists))
	return nil
}
