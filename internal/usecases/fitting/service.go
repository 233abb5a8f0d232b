// Package fitting executa o fit offline: lê o conjunto de referência uma vez,
// aprende a mediana de duração e a lista de colunas esperadas e grava os dois
// arquivos ao lado do pipeline treinado.
package fitting

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/internal/features"
	"github.com/vfg2006/opportunity-loss-api/internal/scoring"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
	"github.com/vfg2006/opportunity-loss-api/pkg/utils"
)

var ErrEmptyReference = errors.New("reference dataset is empty")

//go:generate mockgen -source=service.go -destination=mocks/reference_source.go -package=mocks

// ReferenceSource fornece as oportunidades históricas (CSV ou PostgreSQL)
type ReferenceSource interface {
	ListReferenceOpportunities(ctx context.Context) ([]domain.Opportunity, error)
}

type Result struct {
	State           domain.ImputationState
	ExpectedColumns []string
}

type Service struct {
	source ReferenceSource
	dir    string
	now    func() time.Time
	newID  func() (string, error)
}

func NewService(source ReferenceSource, dir string) *Service {
	return &Service{
		source: source,
		dir:    dir,
		now:    time.Now,
		newID:  utils.GenerateArtifactID,
	}
}

// Fit recalcula imputation.json e expected_columns.json. Se o classificador do
// pipeline foi treinado sobre colunas diferentes das produzidas pelo encoder
// neste conjunto, nada é gravado: o serviço recusaria o artefato no startup.
func (s *Service) Fit(ctx context.Context) (*Result, error) {
	spec, err := scoring.ReadPipelineSpec(s.dir)
	if err != nil {
		return nil, err
	}

	rows, err := s.source.ListReferenceOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reference dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyReference
	}

	state := features.FitDuration(rows)

	deriver := features.NewDurationDeriver(state)
	derived := make([]domain.DerivedFeatureRow, 0, len(rows))
	for _, row := range rows {
		derived = append(derived, deriver.Transform(row))
	}

	columns := features.NewEncoder(spec.Encoder).Columns(derived)

	if len(spec.Classifier.FeatureNames) > 0 && !slices.Equal(spec.Classifier.FeatureNames, columns) {
		return nil, fmt.Errorf("%w: reference produces %d columns, classifier expects %d",
			scoring.ErrSchemaDrift, len(columns), len(spec.Classifier.FeatureNames))
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generating artifact id: %w", err)
	}
	state.ArtifactID = id
	state.FittedAt = s.now().UTC()

	if err := scoring.WriteFitOutputs(s.dir, state, columns); err != nil {
		return nil, err
	}

	log.L.WithFields(log.Fields{
		"model_dir":        s.dir,
		"artifact_id":      state.ArtifactID,
		"median_duration":  state.MedianDuration,
		"reference_rows":   state.ReferenceRows,
		"valid_durations":  state.ValidDurations,
		"expected_columns": len(columns),
	}).Info("fit: imputation state written")

	return &Result{State: state, ExpectedColumns: columns}, nil
}
