// Command beadgrid converts images into fuse-bead patterns.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/setanarut/beadgrid"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env", "err", err)
	}
	base, err := beadgrid.ConfigFromEnv(beadgrid.DefaultConfig())
	if err != nil {
		slog.Error("invalid environment", "err", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(base).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
