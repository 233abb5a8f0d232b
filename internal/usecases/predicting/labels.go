package predicting

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

// LabelTable converte a probabilidade de perda em um rótulo discreto. Cada
// limite é inclusivo: p >= Min recebe o rótulo do maior limite atingido.
type LabelTable struct {
	thresholds []domain.LabelThreshold
	floor      string
}

func NewLabelTable(thresholds []domain.LabelThreshold, floor string) (*LabelTable, error) {
	if floor == "" {
		return nil, fmt.Errorf("%w: floor label is empty", ErrInvalidLabels)
	}

	sorted := make([]domain.LabelThreshold, len(thresholds))
	copy(sorted, thresholds)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })

	for i, th := range sorted {
		if th.Label == "" {
			return nil, fmt.Errorf("%w: empty label for threshold %v", ErrInvalidLabels, th.Min)
		}
		if math.IsNaN(th.Min) || th.Min < 0 || th.Min > 1 {
			return nil, fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidLabels, th.Min)
		}
		if i > 0 && sorted[i-1].Min == th.Min {
			return nil, fmt.Errorf("%w: duplicated threshold %v", ErrInvalidLabels, th.Min)
		}
	}

	return &LabelTable{thresholds: sorted, floor: floor}, nil
}

// ParseLabelTable lê entradas no formato "0.999:very high"
func ParseLabelTable(entries []string, floor string) (*LabelTable, error) {
	thresholds := make([]domain.LabelThreshold, 0, len(entries))
	for _, entry := range entries {
		rawMin, label, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q is not threshold:label", ErrInvalidLabels, entry)
		}

		min, err := strconv.ParseFloat(strings.TrimSpace(rawMin), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrInvalidLabels, entry, err)
		}

		thresholds = append(thresholds, domain.LabelThreshold{
			Min:   min,
			Label: strings.TrimSpace(label),
		})
	}

	return NewLabelTable(thresholds, strings.TrimSpace(floor))
}

// DefaultLabelTable é a tabela calibrada para o artefato atual
func DefaultLabelTable() *LabelTable {
	table, _ := NewLabelTable([]domain.LabelThreshold{
		{Min: 0.999, Label: "very high"},
		{Min: 0.0007, Label: "medium"},
		{Min: 0.0001, Label: "low"},
	}, "very low")
	return table
}

func (t *LabelTable) Classify(probability float64) string {
	for _, th := range t.thresholds {
		if probability >= th.Min {
			return th.Label
		}
	}
	return t.floor
}

// Labels retorna todos os rótulos possíveis, do mais alto ao piso
func (t *LabelTable) Labels() []string {
	labels := make([]string, 0, len(t.thresholds)+1)
	for _, th := range t.thresholds {
		labels = append(labels, th.Label)
	}
	return append(labels, t.floor)
}
