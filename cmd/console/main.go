package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vfg2006/opportunity-loss-api/internal/config"
	"github.com/vfg2006/opportunity-loss-api/internal/console"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	// O console escreve no terminal; logs só para avisos
	log.Configure("warn")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prompter, err := console.NewReadlinePrompter()
	if err != nil {
		log.L.WithError(err).Fatal("console: terminal unavailable")
	}
	defer prompter.Close()

	client := console.NewClient(cfg.Console)

	if err := console.New(prompter, client, prompter.Stdout()).Run(ctx); err != nil {
		log.L.WithError(err).Error("console: stopped")
		os.Exit(1)
	}
}
