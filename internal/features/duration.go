// Package features contém as transformações aplicadas a uma oportunidade
// antes do score: derivação da duração, expansão categórica e alinhamento
// de colunas.
package features

import (
	"sort"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/pkg/utils"
)

// DurationDeriver converte engage_date/close_date em opportunity_duration_days,
// imputando a mediana aprendida no fit quando a duração é ausente ou <= 0.
type DurationDeriver struct {
	medianDuration float64
}

// NewDurationDeriver cria o derivador a partir do estado persistido no fit
func NewDurationDeriver(state domain.ImputationState) *DurationDeriver {
	return &DurationDeriver{medianDuration: state.MedianDuration}
}

// MedianDuration retorna o valor usado na imputação
func (d *DurationDeriver) MedianDuration() float64 {
	return d.medianDuration
}

// Duration calcula close_date - engage_date em dias inteiros. Retorna false
// se alguma das datas estiver ausente ou não puder ser interpretada.
func Duration(o domain.Opportunity) (int, bool) {
	engage, ok := utils.ParseCalendarDate(o.EngageDate)
	if !ok {
		return 0, false
	}

	closed, ok := utils.ParseCalendarDate(o.CloseDate)
	if !ok {
		return 0, false
	}

	return utils.DaysBetween(engage, closed), true
}

// FitDuration aprende a mediana das durações estritamente positivas do
// conjunto de referência. Sem nenhuma duração válida a mediana é 0.
func FitDuration(rows []domain.Opportunity) domain.ImputationState {
	valid := make([]int, 0, len(rows))
	for _, row := range rows {
		days, ok := Duration(row)
		if ok && days > 0 {
			valid = append(valid, days)
		}
	}

	return domain.ImputationState{
		MedianDuration: median(valid),
		ReferenceRows:  len(rows),
		ValidDurations: len(valid),
	}
}

// Transform produz uma nova linha sem as datas brutas. A oportunidade de
// entrada não é alterada.
func (d *DurationDeriver) Transform(o domain.Opportunity) domain.DerivedFeatureRow {
	numeric := o.Numeric()

	value := d.medianDuration
	if days, ok := Duration(o); ok && days > 0 {
		value = float64(days)
	}
	numeric[domain.DurationFeature] = value

	return domain.DerivedFeatureRow{
		Categorical: o.Categorical(),
		Numeric:     numeric,
	}
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
