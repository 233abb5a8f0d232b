package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

var expectedColumns = []string{
	"revenue",
	"opportunity_duration_days",
	"product_GTK 500",
	"product_MG Special",
	"sector_retail",
}

func TestNewColumnAligner_Errors(t *testing.T) {
	_, err := NewColumnAligner(nil)
	assert.ErrorIs(t, err, ErrNoExpectedColumns)

	_, err = NewColumnAligner([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestColumnAligner_Align(t *testing.T) {
	aligner, err := NewColumnAligner(expectedColumns)
	require.NoError(t, err)

	tests := []struct {
		name        string
		row         domain.EncodedFeatureRow
		wantValues  []float64
		wantDropped []string
	}{
		{
			name:       "linha vazia recebe zeros",
			row:        domain.EncodedFeatureRow{},
			wantValues: []float64{0, 0, 0, 0, 0},
		},
		{
			name: "subconjunto das colunas",
			row: domain.EncodedFeatureRow{
				"product_MG Special":        1,
				"opportunity_duration_days": 65,
			},
			wantValues: []float64{0, 65, 0, 1, 0},
		},
		{
			name: "categorias não vistas no treino são descartadas",
			row: domain.EncodedFeatureRow{
				"revenue":          10,
				"product_GTX Pro":  1,
				"sector_aerospace": 1,
				"sector_retail":    1,
			},
			wantValues:  []float64{10, 0, 0, 0, 1},
			wantDropped: []string{"product_GTX Pro", "sector_aerospace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aligned, dropped := aligner.Align(tt.row)

			assert.Equal(t, expectedColumns, aligned.Columns)
			assert.Equal(t, tt.wantValues, aligned.Values)
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}

func TestColumnAligner_DoesNotShareCallerSlice(t *testing.T) {
	input := []string{"a", "b"}
	aligner, err := NewColumnAligner(input)
	require.NoError(t, err)

	input[0] = "z"
	assert.Equal(t, []string{"a", "b"}, aligner.Columns())
}

func TestPipeline_DeriveEncodeAlign(t *testing.T) {
	deriver := NewDurationDeriver(domain.ImputationState{MedianDuration: 45})
	encoder := NewEncoder(EncoderSpec{
		Categorical: []string{domain.FieldProduct, domain.FieldSector},
		Numeric:     []string{domain.FieldRevenue, domain.DurationFeature},
	})
	aligner, err := NewColumnAligner(expectedColumns)
	require.NoError(t, err)

	row := deriver.Transform(domain.Opportunity{
		SalesAgent: "Moses Frase",
		Product:    "GTK 500",
		Sector:     strPtr("retail"),
	})
	aligned, dropped := aligner.Align(encoder.Encode(row))

	assert.Empty(t, dropped)
	assert.Equal(t, []float64{0, 45, 1, 0, 1}, aligned.Values)
}
