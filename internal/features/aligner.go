package features

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

var (
	ErrNoExpectedColumns = errors.New("expected columns list is empty")
	ErrDuplicateColumn   = errors.New("duplicate expected column")
)

// ColumnAligner reindexa uma linha codificada para a lista fixa de colunas
// capturada no treino.
type ColumnAligner struct {
	columns []string
	index   map[string]int
}

// NewColumnAligner valida e guarda a lista de colunas esperadas
func NewColumnAligner(expected []string) (*ColumnAligner, error) {
	if len(expected) == 0 {
		return nil, ErrNoExpectedColumns
	}

	columns := make([]string, len(expected))
	copy(columns, expected)

	index := make(map[string]int, len(columns))
	for i, column := range columns {
		if _, exists := index[column]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, column)
		}
		index[column] = i
	}

	return &ColumnAligner{columns: columns, index: index}, nil
}

// Columns retorna uma cópia da lista esperada
func (a *ColumnAligner) Columns() []string {
	out := make([]string, len(a.columns))
	copy(out, a.columns)
	return out
}

// Align devolve exatamente as colunas esperadas, na ordem do treino. Colunas
// ausentes recebem 0; colunas desconhecidas são descartadas e retornadas em
// dropped para quem chamou decidir se registra.
func (a *ColumnAligner) Align(row domain.EncodedFeatureRow) (aligned domain.AlignedFeatureRow, dropped []string) {
	values := make([]float64, len(a.columns))

	for column, value := range row {
		i, ok := a.index[column]
		if !ok {
			dropped = append(dropped, column)
			continue
		}
		values[i] = value
	}
	sort.Strings(dropped)

	return domain.AlignedFeatureRow{
		Columns: a.columns,
		Values:  values,
	}, dropped
}
