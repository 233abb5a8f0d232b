// Package scoring carrega o artefato de score treinado offline e expõe o
// contrato mínimo usado pelo serviço: Score(linha alinhada) -> P(perda).
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

var (
	ErrFeatureMismatch = errors.New("aligned row does not match classifier features")
	ErrInvalidModel    = errors.New("invalid classifier definition")
)

// Scorer é qualquer coisa capaz de pontuar uma linha alinhada
type Scorer interface {
	Score(row domain.AlignedFeatureRow) (float64, error)
}

// ScorerFunc adapta uma função ao contrato Scorer
type ScorerFunc func(row domain.AlignedFeatureRow) (float64, error)

func (f ScorerFunc) Score(row domain.AlignedFeatureRow) (float64, error) {
	return f(row)
}

type ScalerSpec struct {
	Mean  map[string]float64 `json:"mean"`
	Scale map[string]float64 `json:"scale"`
}

// TreeNode é um nó de árvore. Feature < 0 indica folha.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

type ClassifierSpec struct {
	FeatureNames []string `json:"feature_names"`
	BaseScore    float64  `json:"base_score"`
	Trees        []Tree   `json:"trees"`
}

// GradientBoostedModel aplica o scaler e soma as folhas das árvores,
// devolvendo a sigmoide do total como probabilidade da classe "perdida".
type GradientBoostedModel struct {
	features  []string
	mean      []float64
	scale     []float64
	baseScore float64
	trees     []Tree
}

func NewGradientBoostedModel(classifier ClassifierSpec, scaler ScalerSpec) (*GradientBoostedModel, error) {
	n := len(classifier.FeatureNames)
	if n == 0 {
		return nil, fmt.Errorf("%w: no feature names", ErrInvalidModel)
	}

	mean := make([]float64, n)
	scale := make([]float64, n)
	for i, name := range classifier.FeatureNames {
		mean[i] = 0
		scale[i] = 1

		if m, ok := scaler.Mean[name]; ok {
			mean[i] = m
		}
		if s, ok := scaler.Scale[name]; ok {
			if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
				return nil, fmt.Errorf("%w: invalid scale for %s", ErrInvalidModel, name)
			}
			scale[i] = s
		}
	}

	for t, tree := range classifier.Trees {
		if err := validateTree(tree, n); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, t, err)
		}
	}

	features := make([]string, n)
	copy(features, classifier.FeatureNames)

	return &GradientBoostedModel{
		features:  features,
		mean:      mean,
		scale:     scale,
		baseScore: classifier.BaseScore,
		trees:     classifier.Trees,
	}, nil
}

// Filhos sempre apontam para frente, o que garante que a travessia termina.
func validateTree(tree Tree, numFeatures int) error {
	if len(tree.Nodes) == 0 {
		return errors.New("empty tree")
	}

	for i, node := range tree.Nodes {
		if node.Feature < 0 {
			continue
		}
		if node.Feature >= numFeatures {
			return fmt.Errorf("node %d references feature %d", i, node.Feature)
		}
		if node.Left <= i || node.Left >= len(tree.Nodes) || node.Right <= i || node.Right >= len(tree.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, node.Left, node.Right)
		}
	}

	return nil
}

// Features retorna os nomes das colunas na ordem de treino
func (m *GradientBoostedModel) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

func (m *GradientBoostedModel) Score(row domain.AlignedFeatureRow) (float64, error) {
	if len(row.Values) != len(m.features) || len(row.Columns) != len(m.features) {
		return 0, fmt.Errorf("%w: got %d values, expected %d", ErrFeatureMismatch, len(row.Values), len(m.features))
	}
	for i, column := range row.Columns {
		if column != m.features[i] {
			return 0, fmt.Errorf("%w: column %d is %q, expected %q", ErrFeatureMismatch, i, column, m.features[i])
		}
	}

	x := make([]float64, len(row.Values))
	for i, v := range row.Values {
		x[i] = (v - m.mean[i]) / m.scale[i]
	}

	raw := m.baseScore
	for _, tree := range m.trees {
		raw += leafValue(tree, x)
	}

	return 1 / (1 + math.Exp(-raw)), nil
}

func leafValue(tree Tree, x []float64) float64 {
	i := 0
	for {
		node := tree.Nodes[i]
		if node.Feature < 0 {
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}
