package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func opportunityWithDates(engage, closed *string) domain.Opportunity {
	return domain.Opportunity{
		SalesAgent: "Darcel Schlecht",
		Product:    "GTX Plus Pro",
		EngageDate: engage,
		CloseDate:  closed,
	}
}

func TestDuration_ExactDayCount(t *testing.T) {
	tests := []struct {
		engage string
		closed string
		want   int
	}{
		{engage: "2024-01-15", closed: "2024-03-20", want: 65},
		{engage: "2024-02-28", closed: "2024-03-01", want: 2}, // ano bissexto
		{engage: "2023-02-28", closed: "2023-03-01", want: 1},
		{engage: "2016-10-20", closed: "2017-03-01", want: 132},
		{engage: "2024-05-05", closed: "2024-05-05", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.engage+"->"+tt.closed, func(t *testing.T) {
			days, ok := Duration(opportunityWithDates(strPtr(tt.engage), strPtr(tt.closed)))
			require.True(t, ok)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestFitDuration(t *testing.T) {
	tests := []struct {
		name       string
		rows       []domain.Opportunity
		wantMedian float64
		wantValid  int
	}{
		{
			name:       "sem linhas",
			rows:       nil,
			wantMedian: 0,
			wantValid:  0,
		},
		{
			name: "quantidade ímpar de durações válidas",
			rows: []domain.Opportunity{
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-01-11")), // 10
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-01-31")), // 30
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-01-21")), // 20
			},
			wantMedian: 20,
			wantValid:  3,
		},
		{
			name: "quantidade par usa a média dos centrais",
			rows: []domain.Opportunity{
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-01-11")), // 10
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-01-21")), // 20
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-01-26")), // 25
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-02-10")), // 40
			},
			wantMedian: 22.5,
			wantValid:  4,
		},
		{
			name: "ignora ausentes, inválidas, zero e negativas",
			rows: []domain.Opportunity{
				opportunityWithDates(nil, nil),
				opportunityWithDates(strPtr("2024-01-01"), nil),
				opportunityWithDates(strPtr("não é data"), strPtr("2024-01-10")),
				opportunityWithDates(strPtr("2024-01-10"), strPtr("2024-01-10")),
				opportunityWithDates(strPtr("2024-01-10"), strPtr("2024-01-01")),
				opportunityWithDates(strPtr("2024-01-01"), strPtr("2024-02-15")), // 45
			},
			wantMedian: 45,
			wantValid:  1,
		},
		{
			name: "nenhuma duração positiva resulta em zero",
			rows: []domain.Opportunity{
				opportunityWithDates(strPtr("2024-01-10"), strPtr("2024-01-01")),
				opportunityWithDates(nil, strPtr("2024-01-01")),
			},
			wantMedian: 0,
			wantValid:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := FitDuration(tt.rows)
			assert.Equal(t, tt.wantMedian, state.MedianDuration)
			assert.Equal(t, tt.wantValid, state.ValidDurations)
			assert.Equal(t, len(tt.rows), state.ReferenceRows)
		})
	}
}

func TestDurationDeriver_Transform(t *testing.T) {
	deriver := NewDurationDeriver(domain.ImputationState{MedianDuration: 45})

	tests := []struct {
		name   string
		engage *string
		closed *string
		want   float64
	}{
		{name: "datas válidas", engage: strPtr("2024-01-15"), closed: strPtr("2024-03-20"), want: 65},
		{name: "ambas ausentes", engage: nil, closed: nil, want: 45},
		{name: "apenas engage", engage: strPtr("2024-01-15"), closed: nil, want: 45},
		{name: "apenas close", engage: nil, closed: strPtr("2024-03-20"), want: 45},
		{name: "fechamento antes do engajamento", engage: strPtr("2024-03-20"), closed: strPtr("2024-01-15"), want: 45},
		{name: "duração zero", engage: strPtr("2024-03-20"), closed: strPtr("2024-03-20"), want: 45},
		{name: "data inválida", engage: strPtr("2024-02-30"), closed: strPtr("2024-03-20"), want: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := deriver.Transform(opportunityWithDates(tt.engage, tt.closed))
			assert.Equal(t, tt.want, row.DurationDays())
		})
	}
}

func TestDurationDeriver_TransformDropsDatesAndKeepsInput(t *testing.T) {
	deriver := NewDurationDeriver(domain.ImputationState{MedianDuration: 30})

	revenue := 1500.5
	input := opportunityWithDates(strPtr("2024-01-15"), strPtr("2024-03-20"))
	input.Revenue = &revenue
	input.Sector = strPtr("retail")
	snapshot := input

	row := deriver.Transform(input)

	assert.Equal(t, snapshot, input)
	assert.NotContains(t, row.Categorical, domain.FieldEngageDate)
	assert.NotContains(t, row.Categorical, domain.FieldCloseDate)
	assert.NotContains(t, row.Numeric, domain.FieldEngageDate)
	assert.NotContains(t, row.Numeric, domain.FieldCloseDate)
	assert.Equal(t, "retail", row.Categorical[domain.FieldSector])
	assert.Equal(t, 1500.5, row.Numeric[domain.FieldRevenue])
	assert.Equal(t, 65.0, row.Numeric[domain.DurationFeature])

	// Alterar a saída não pode vazar para uma segunda transformação
	row.Numeric[domain.FieldRevenue] = 0
	again := deriver.Transform(input)
	assert.Equal(t, 1500.5, again.Numeric[domain.FieldRevenue])
}
