// Package main provides the JSON API server for the AIsle pantry tracker.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aislehq/pantry/internal/infrastructure/container"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's
		container.Module,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Fatalf("Failed to stop API server gracefully: %v", err)
	}
}
