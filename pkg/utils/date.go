package utils

import (
	"strings"
	"time"
)

// Formatos aceitos para datas de entrada. Timestamps são truncados para o dia.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
}

// ParseCalendarDate converte a string para uma data de calendário em UTC.
// Retorna false quando o valor é nulo, vazio ou não pode ser interpretado.
func ParseCalendarDate(value *string) (time.Time, bool) {
	if value == nil {
		return time.Time{}, false
	}

	raw := strings.TrimSpace(*value)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			y, m, d := parsed.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// DaysBetween retorna a diferença em dias inteiros entre duas datas de
// calendário (end - start). Pode ser negativa.
func DaysBetween(start, end time.Time) int {
	return int((end.Unix() - start.Unix()) / 86400)
}
