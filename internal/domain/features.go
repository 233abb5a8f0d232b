package domain

import "time"

// DurationFeature é a coluna derivada das datas de engajamento e fechamento
const DurationFeature = "opportunity_duration_days"

// DerivedFeatureRow é a oportunidade já sem as datas brutas, acrescida de
// opportunity_duration_days no mapa numérico.
type DerivedFeatureRow struct {
	Categorical map[string]string
	Numeric     map[string]float64
}

// DurationDays retorna a duração derivada (original ou imputada)
func (r DerivedFeatureRow) DurationDays() float64 {
	return r.Numeric[DurationFeature]
}

// EncodedFeatureRow é a linha após a expansão one-hot, indexada por coluna
type EncodedFeatureRow map[string]float64

// AlignedFeatureRow contém exatamente as colunas esperadas pelo modelo, na
// ordem do treino.
type AlignedFeatureRow struct {
	Columns []string
	Values  []float64
}

// Value retorna o valor de uma coluna alinhada, ou false se ela não existir
func (r AlignedFeatureRow) Value(column string) (float64, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return 0, false
}

// ImputationState é o estado aprendido no fit offline. Depois de carregado,
// é somente leitura.
type ImputationState struct {
	MedianDuration float64   `json:"median_duration"`
	ArtifactID     string    `json:"artifact_id,omitempty"`
	ReferenceRows  int       `json:"reference_rows"`
	ValidDurations int       `json:"valid_durations"`
	FittedAt       time.Time `json:"fitted_at"`
}
