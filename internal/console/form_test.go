package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

// scriptedPrompter devolve respostas pré-definidas e aborta quando acabam
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptedPrompter) Ask(prompt string, _ []string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", ErrAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

var fixedNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// Uma resposta por campo, na ordem de Fields
func completeScript() []string {
	return []string{
		"moses frase", // caixa diferente da opção
		"GTK 500",
		"retail",
		"",
		"Not_Subsidiary",
		"GTK",
		"Dustin Brinkmann",
		"Central",
		"Engaging",
		"1054.5",
		"1999",
		"",
		"40",
		"0",
		"2024-01-15",
		"",
	}
}

func TestForm_Collect(t *testing.T) {
	prompter := &scriptedPrompter{answers: completeScript()}
	var out bytes.Buffer
	form := NewForm(prompter, &out)
	form.now = func() time.Time { return fixedNow }

	answers, err := form.Collect()
	require.NoError(t, err)

	assert.Equal(t, "Moses Frase", answers[domain.FieldSalesAgent])
	assert.Equal(t, "Unknown", answers[domain.FieldOfficeLocation])
	assert.Equal(t, "0", answers[domain.FieldRevenue])
	assert.Equal(t, "", answers[domain.FieldCloseDate])
	assert.Len(t, prompter.prompts, len(Fields))
	assert.Empty(t, out.String())
}

func TestForm_CollectRepromptsInvalidAnswers(t *testing.T) {
	script := completeScript()
	// produto inexistente, depois válido
	script = append(script[:1], append([]string{"GTX Ultra"}, script[1:]...)...)
	// ano no futuro e negativo, depois válido (índices deslocados em 1)
	script = append(script[:11], append([]string{"2030", "abc"}, script[11:]...)...)

	prompter := &scriptedPrompter{answers: script}
	var out bytes.Buffer
	form := NewForm(prompter, &out)
	form.now = func() time.Time { return fixedNow }

	answers, err := form.Collect()
	require.NoError(t, err)

	assert.Equal(t, "GTK 500", answers[domain.FieldProduct])
	assert.Equal(t, "1999", answers[domain.FieldYearEstablished])
	assert.Contains(t, out.String(), "opção inválida \"GTX Ultra\"")
	assert.Contains(t, out.String(), "valor máximo é 2025")
	assert.Contains(t, out.String(), "número inválido \"abc\"")
}

func TestForm_CollectRejectsBadDates(t *testing.T) {
	script := completeScript()
	script = append(script[:14], append([]string{"15/01/2024"}, script[14:]...)...)

	var out bytes.Buffer
	form := NewForm(&scriptedPrompter{answers: script}, &out)
	form.now = func() time.Time { return fixedNow }

	answers, err := form.Collect()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", answers[domain.FieldEngageDate])
	assert.Contains(t, out.String(), "data inválida")
}

func TestForm_CollectAborted(t *testing.T) {
	form := NewForm(&scriptedPrompter{answers: []string{"Moses Frase"}}, &bytes.Buffer{})

	_, err := form.Collect()
	assert.ErrorIs(t, err, ErrAborted)
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(Answers{
		domain.FieldSalesAgent:      "Moses Frase",
		domain.FieldProduct:         "Unknown",
		domain.FieldSector:          "retail",
		domain.FieldOfficeLocation:  "Unknown",
		domain.FieldSubsidiaryOf:    "Not_Subsidiary",
		domain.FieldSeries:          "GTK",
		domain.FieldManager:         "Unknown",
		domain.FieldRegionalOffice:  "Central",
		domain.FieldDealStage:       "Unknown",
		domain.FieldCloseValue:      "0",
		domain.FieldYearEstablished: "1999",
		domain.FieldRevenue:         "718.62",
		domain.FieldEmployees:       "0",
		domain.FieldSalesPrice:      "550",
		domain.FieldEngageDate:      "2024-01-15",
		domain.FieldCloseDate:       "",
	}, fixedNow)

	require.NotNil(t, payload.SalesAgent)
	assert.Equal(t, "Moses Frase", *payload.SalesAgent)
	assert.Nil(t, payload.Product)
	assert.Nil(t, payload.OfficeLocation)
	assert.Nil(t, payload.SubsidiaryOf)
	assert.Nil(t, payload.Manager)
	assert.Nil(t, payload.DealStage)
	assert.Nil(t, payload.CloseValue)
	assert.Nil(t, payload.Employees)
	assert.Nil(t, payload.CloseDate)
	assert.Equal(t, 1999, *payload.YearEstablished)
	assert.Equal(t, 718.62, *payload.Revenue)
	assert.Equal(t, 550.0, *payload.SalesPrice)
	assert.Equal(t, "2024-01-15", *payload.EngageDate)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"product":null`)
	assert.Contains(t, string(data), `"close_date":null`)
}

func TestBuildPayload_YearBounds(t *testing.T) {
	tests := []struct {
		year string
		want *int
	}{
		{"1900", nil},
		{"1901", intPtr(1901)},
		{"2024", intPtr(2024)},
		{"2025", nil},
		{"0", nil},
	}

	for _, tt := range tests {
		payload := BuildPayload(Answers{domain.FieldYearEstablished: tt.year}, fixedNow)
		assert.Equal(t, tt.want, payload.YearEstablished, "year %s", tt.year)
	}
}

func intPtr(i int) *int { return &i }
