package scoring

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/internal/features"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Arquivos que compõem o artefato persistido
const (
	PipelineFile        = "pipeline.json"
	ExpectedColumnsFile = "expected_columns.json"
	ImputationFile      = "imputation.json"
)

var ErrSchemaDrift = errors.New("classifier features differ from expected columns")

// PipelineSpec é o pipeline serializado pelo treino offline
type PipelineSpec struct {
	Version    string               `json:"version"`
	Encoder    features.EncoderSpec `json:"encoder"`
	Scaler     ScalerSpec           `json:"scaler"`
	Classifier ClassifierSpec       `json:"classifier"`
}

// Artifact agrupa tudo o que é carregado uma única vez no startup e
// compartilhado, somente leitura, entre as requisições.
type Artifact struct {
	Version    string
	Imputation domain.ImputationState
	Deriver    *features.DurationDeriver
	Encoder    *features.Encoder
	Aligner    *features.ColumnAligner
	Scorer     Scorer
}

// NewArtifact monta um artefato a partir das partes já decodificadas
func NewArtifact(version string, state domain.ImputationState, spec features.EncoderSpec, expected []string, scorer Scorer) (*Artifact, error) {
	aligner, err := features.NewColumnAligner(expected)
	if err != nil {
		return nil, errors.Wrap(err, "expected columns")
	}

	if scorer == nil {
		return nil, errors.New("scorer is required")
	}

	return &Artifact{
		Version:    version,
		Imputation: state,
		Deriver:    features.NewDurationDeriver(state),
		Encoder:    features.NewEncoder(spec),
		Aligner:    aligner,
		Scorer:     scorer,
	}, nil
}

// LoadArtifact lê os três arquivos do diretório e valida que o classificador
// foi treinado exatamente sobre as colunas esperadas.
func LoadArtifact(dir string) (*Artifact, error) {
	spec, err := ReadPipelineSpec(dir)
	if err != nil {
		return nil, err
	}

	var expected []string
	if err := readJSON(filepath.Join(dir, ExpectedColumnsFile), &expected); err != nil {
		return nil, err
	}

	var state domain.ImputationState
	if err := readJSON(filepath.Join(dir, ImputationFile), &state); err != nil {
		return nil, err
	}

	if !sameColumns(spec.Classifier.FeatureNames, expected) {
		return nil, errors.Wrapf(ErrSchemaDrift, "classifier has %d features, expected_columns has %d",
			len(spec.Classifier.FeatureNames), len(expected))
	}

	model, err := NewGradientBoostedModel(spec.Classifier, spec.Scaler)
	if err != nil {
		return nil, errors.Wrap(err, "building classifier")
	}

	return NewArtifact(spec.Version, state, spec.Encoder, expected, model)
}

// ReadPipelineSpec lê apenas pipeline.json
func ReadPipelineSpec(dir string) (*PipelineSpec, error) {
	var spec PipelineSpec
	if err := readJSON(filepath.Join(dir, PipelineFile), &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// WriteFitOutputs persiste o estado de imputação e as colunas esperadas
// produzidos pelo fit offline.
func WriteFitOutputs(dir string, state domain.ImputationState, expected []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	if err := writeJSON(filepath.Join(dir, ExpectedColumnsFile), expected); err != nil {
		return err
	}

	return writeJSON(filepath.Join(dir, ImputationFile), state)
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	return nil
}

// writeJSON grava em arquivo temporário e renomeia, para que um processo
// lendo o diretório nunca veja um arquivo pela metade.
func writeJSON(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "renaming %s", tmp)
	}

	return nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
