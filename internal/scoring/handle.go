package scoring

import (
	"errors"
	"time"

	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

var ErrModelNotLoaded = errors.New("scoring artifact not loaded")

// Handle é o ponto de acesso injetável ao artefato. O valor zero representa
// um artefato ainda não carregado.
type Handle struct {
	artifact *Artifact
	err      error
	loadedAt time.Time
}

// NewHandle cria um handle pronto para uso a partir de um artefato em memória
func NewHandle(artifact *Artifact) *Handle {
	if artifact == nil {
		return &Handle{err: ErrModelNotLoaded}
	}
	return &Handle{artifact: artifact, loadedAt: time.Now()}
}

// Load carrega o artefato do diretório. Nunca retorna nil: em caso de falha o
// handle guarda o erro e o serviço continua de pé reportando indisponibilidade.
func Load(dir string) *Handle {
	artifact, err := LoadArtifact(dir)
	if err != nil {
		log.L.WithFields(log.Fields{
			"model_dir": dir,
			"error":     err.Error(),
		}).Error("scoring: failed to load artifact")

		return &Handle{err: err}
	}

	log.L.WithFields(log.Fields{
		"model_dir":        dir,
		"version":          artifact.Version,
		"artifact_id":      artifact.Imputation.ArtifactID,
		"median_duration":  artifact.Imputation.MedianDuration,
		"expected_columns": len(artifact.Aligner.Columns()),
	}).Info("scoring: artifact loaded")

	return NewHandle(artifact)
}

func (h *Handle) Ready() bool {
	return h != nil && h.artifact != nil
}

// Err retorna o motivo da indisponibilidade, ou nil se o artefato está carregado
func (h *Handle) Err() error {
	if h.Ready() {
		return nil
	}
	if h == nil || h.err == nil {
		return ErrModelNotLoaded
	}
	return h.err
}

// Artifact retorna o artefato carregado ou um erro que envolve ErrModelNotLoaded
func (h *Handle) Artifact() (*Artifact, error) {
	if !h.Ready() {
		cause := h.Err()
		if errors.Is(cause, ErrModelNotLoaded) {
			return nil, cause
		}
		return nil, &NotLoadedError{Cause: cause}
	}
	return h.artifact, nil
}

// LoadedAt retorna quando o artefato foi carregado
func (h *Handle) LoadedAt() time.Time {
	if !h.Ready() {
		return time.Time{}
	}
	return h.loadedAt
}

// NotLoadedError carrega a causa original da falha de carga
type NotLoadedError struct {
	Cause error
}

func (e *NotLoadedError) Error() string {
	return ErrModelNotLoaded.Error() + ": " + e.Cause.Error()
}

func (e *NotLoadedError) Is(target error) bool {
	return target == ErrModelNotLoaded
}

func (e *NotLoadedError) Unwrap() error {
	return e.Cause
}
