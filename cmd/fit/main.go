package main

import (
	"context"
	"flag"
	"os"

	"github.com/vfg2006/opportunity-loss-api/infrastructure/database/postgres"
	"github.com/vfg2006/opportunity-loss-api/infrastructure/reference"
	"github.com/vfg2006/opportunity-loss-api/infrastructure/repository"
	"github.com/vfg2006/opportunity-loss-api/internal/config"
	"github.com/vfg2006/opportunity-loss-api/internal/usecases/fitting"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	source := flag.String("source", "csv", "origem do conjunto de referência: csv ou postgres")
	csvPath := flag.String("csv", cfg.Reference.CSVPath, "caminho do CSV de referência")
	modelDir := flag.String("model-dir", cfg.Model.Dir, "diretório do artefato")
	flag.Parse()

	ctx := context.Background()

	var reader fitting.ReferenceSource
	switch *source {
	case "csv":
		reader = reference.NewCSVSource(*csvPath)
	case "postgres":
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
		}
		defer conn.Close()

		reader = repository.NewOpportunityRepository(conn, cfg.Reference.Table)
	default:
		log.L.Errorf("fit: unknown source %q, use csv or postgres", *source)
		flag.Usage()
		os.Exit(2)
	}

	result, err := fitting.NewService(reader, *modelDir).Fit(ctx)
	if err != nil {
		log.L.WithError(err).Error("fit: failed")
		os.Exit(1)
	}

	log.L.WithFields(log.Fields{
		"artifact_id":     result.State.ArtifactID,
		"median_duration": result.State.MedianDuration,
		"columns":         len(result.ExpectedColumns),
		"model_dir":       *modelDir,
	}).Info("fit: done")
}
