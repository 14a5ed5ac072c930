// cmd/smartfarm/main.go
//
// SmartFarm is a record-keeping web application for farmers. Farmers track
// their crop records; administrators publish blog posts and manage users.
// All data lives in a single JSON file.
//
// The WAFFLE app framework drives the whole lifecycle: it loads config,
// opens the document store, seeds default data, builds the router from the
// bootstrap hooks, and runs the HTTP server until shutdown.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/smartfarm/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, bootstrap.Hooks); err != nil {
		fmt.Fprintln(os.Stderr, "smartfarm:", err)
		os.Exit(1)
	}
}
