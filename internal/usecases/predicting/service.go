package predicting

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/internal/scoring"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/predictor.go -package=mocks

// Predictor é o contrato consumido pelos handlers HTTP
type Predictor interface {
	Predict(ctx context.Context, opportunity domain.Opportunity) (*domain.Prediction, error)
	Health(ctx context.Context) (domain.Health, error)
}

type Service struct {
	handle *scoring.Handle
	labels *LabelTable
}

func NewService(handle *scoring.Handle, labels *LabelTable) Predictor {
	if labels == nil {
		labels = DefaultLabelTable()
	}

	return &Service{
		handle: handle,
		labels: labels,
	}
}

// Predict deriva a duração, expande as categorias, alinha as colunas e
// pontua. Cada requisição monta suas próprias linhas; o artefato é apenas lido.
func (s *Service) Predict(ctx context.Context, opportunity domain.Opportunity) (prediction *domain.Prediction, err error) {
	logger := log.ForContext(ctx)

	artifact, err := s.handle.Artifact()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	stage := StageDerive
	defer func() {
		if r := recover(); r != nil {
			prediction = nil
			err = &PredictionError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	row := artifact.Deriver.Transform(opportunity)

	stage = StageEncode
	encoded := artifact.Encoder.Encode(row)

	stage = StageAlign
	aligned, dropped := artifact.Aligner.Align(encoded)
	if len(dropped) > 0 {
		logger.WithFields(log.Fields{
			"dropped_columns": dropped,
		}).Warn("predict: columns unseen at training time were dropped")
	}

	stage = StageScore
	probability, err := artifact.Scorer.Score(aligned)
	if err != nil {
		return nil, &PredictionError{Stage: stage, Err: err}
	}

	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return nil, &PredictionError{Stage: stage, Err: fmt.Errorf("probability out of range: %v", probability)}
	}

	// Prefere o valor que de fato entrou no score; artefatos sem a coluna de
	// duração ainda reportam a duração derivada
	duration, ok := aligned.Value(domain.DurationFeature)
	if !ok {
		duration = row.DurationDays()
	}

	prediction = &domain.Prediction{
		ProbabilityOfLoss: probability,
		Label:             s.labels.Classify(probability),
		DurationDays:      duration,
	}

	logger.WithFields(log.Fields{
		"probability":   prediction.ProbabilityOfLoss,
		"label":         prediction.Label,
		"duration_days": prediction.DurationDays,
	}).Debug("predict: opportunity scored")

	return prediction, nil
}

// Health informa se o artefato de score está carregado
func (s *Service) Health(ctx context.Context) (domain.Health, error) {
	if err := s.handle.Err(); err != nil {
		return domain.Health{
			Status:  "unavailable",
			Message: "scoring artifact not loaded: " + err.Error(),
		}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	artifact, _ := s.handle.Artifact()
	return domain.Health{
		Status:  "ok",
		Message: fmt.Sprintf("API online, pipeline %s loaded at %s", artifact.Version, s.handle.LoadedAt().Format(time.RFC3339)),
	}, nil
}
