package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/patrickprogramme/capgrab/internal/config"
)

func main() {
	// charger un éventuel .env avant de lire la config
	config.LoadDotEnv()

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
