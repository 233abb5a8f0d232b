package main

import (
	"context"

	"github.com/vfg2006/opportunity-loss-api/internal/api"
	"github.com/vfg2006/opportunity-loss-api/internal/config"
	"github.com/vfg2006/opportunity-loss-api/internal/scoring"
	"github.com/vfg2006/opportunity-loss-api/internal/usecases/authenticating"
	"github.com/vfg2006/opportunity-loss-api/internal/usecases/predicting"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	labels, err := predicting.ParseLabelTable(cfg.Labels.Thresholds, cfg.Labels.Floor)
	if err != nil {
		log.L.WithError(err).Fatal("Tabela de rótulos inválida")
	}

	// Falha no carregamento não derruba o processo: /health responde 503 e
	// /predict devolve SRV_005 até o artefato ser corrigido e o serviço reiniciado
	handle := scoring.Load(cfg.Model.Dir)

	predictor := predicting.NewService(handle, labels)
	authenticator := authenticating.NewService(cfg.Auth)

	if !authenticator.Enabled() {
		log.L.Warn("auth: AUTH_SECRET not set, every route is public")
	}

	server, err := api.New(cfg, predictor, authenticator)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}
