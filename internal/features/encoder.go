package features

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

// EncoderSpec descreve quais campos o pipeline treinado consome
type EncoderSpec struct {
	Categorical []string           `json:"categorical"`
	Numeric     []string           `json:"numeric"`
	NumericFill map[string]float64 `json:"numeric_fill"`
}

// Encoder faz a expansão one-hot dos campos categóricos e copia os numéricos
type Encoder struct {
	spec EncoderSpec
}

func NewEncoder(spec EncoderSpec) *Encoder {
	return &Encoder{spec: spec}
}

// Spec retorna a especificação usada pelo encoder
func (e *Encoder) Spec() EncoderSpec {
	return e.spec
}

// OneHotColumn monta o nome da coluna one-hot para um campo e valor
func OneHotColumn(field, value string) string {
	return field + "_" + NormalizeCategory(value)
}

// NormalizeCategory remove espaços das pontas e aplica NFC, para que a mesma
// categoria digitada com acentos compostos ou decompostos gere a mesma coluna.
func NormalizeCategory(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// Encode expande a linha derivada. As colunas produzidas dependem dos valores
// presentes na requisição; o alinhamento com o treino é feito pelo ColumnAligner.
func (e *Encoder) Encode(row domain.DerivedFeatureRow) domain.EncodedFeatureRow {
	encoded := make(domain.EncodedFeatureRow, len(e.spec.Numeric)+len(e.spec.Categorical))

	for _, column := range e.spec.Numeric {
		if value, ok := row.Numeric[column]; ok {
			encoded[column] = value
			continue
		}
		if fill, ok := e.spec.NumericFill[column]; ok {
			encoded[column] = fill
		}
	}

	for _, field := range e.spec.Categorical {
		value, ok := row.Categorical[field]
		if !ok || NormalizeCategory(value) == "" {
			continue
		}
		encoded[OneHotColumn(field, value)] = 1
	}

	return encoded
}

// Columns calcula a lista ordenada de colunas que o encoder produz sobre um
// conjunto de referência: numéricas na ordem da spec, seguidas das one-hot de
// cada campo categórico em ordem alfabética de valor.
func (e *Encoder) Columns(rows []domain.DerivedFeatureRow) []string {
	columns := make([]string, 0, len(e.spec.Numeric))
	columns = append(columns, e.spec.Numeric...)

	for _, field := range e.spec.Categorical {
		seen := make(map[string]struct{})
		for _, row := range rows {
			value, ok := row.Categorical[field]
			if !ok || NormalizeCategory(value) == "" {
				continue
			}
			seen[OneHotColumn(field, value)] = struct{}{}
		}

		values := make([]string, 0, len(seen))
		for column := range seen {
			values = append(values, column)
		}
		sort.Strings(values)
		columns = append(columns, values...)
	}

	return columns
}
