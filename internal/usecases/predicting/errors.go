package predicting

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable indica que o artefato não foi carregado
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidLabels    = errors.New("invalid label table")
)

// Etapas do pipeline de predição, usadas apenas para contexto no erro
const (
	StageDerive = "derive"
	StageEncode = "encode"
	StageAlign  = "align"
	StageScore  = "score"
)

// PredictionError envolve qualquer falha ocorrida depois que o artefato está
// disponível. A API não diferencia a causa: todas viram erro interno.
type PredictionError struct {
	Stage string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
