package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
)

// ErrAborted indica que o operador encerrou o formulário (Ctrl-C / Ctrl-D)
var ErrAborted = errors.New("form aborted by operator")

// Prompter lê uma resposta do operador. options, quando não vazio, é a lista
// usada para autocompletar.
type Prompter interface {
	Ask(prompt string, options []string) (string, error)
}

// Answers guarda o valor já validado de cada campo, na forma textual
type Answers map[string]string

// Payload é o corpo enviado para POST /predict. Campos nil viram null.
type Payload struct {
	SalesAgent      *string  `json:"sales_agent"`
	Product         *string  `json:"product"`
	Sector          *string  `json:"sector"`
	OfficeLocation  *string  `json:"office_location"`
	SubsidiaryOf    *string  `json:"subsidiary_of"`
	Series          *string  `json:"series"`
	Manager         *string  `json:"manager"`
	RegionalOffice  *string  `json:"regional_office"`
	DealStage       *string  `json:"deal_stage"`
	CloseValue      *float64 `json:"close_value"`
	YearEstablished *int     `json:"year_established"`
	Revenue         *float64 `json:"revenue"`
	Employees       *int     `json:"employees"`
	SalesPrice      *float64 `json:"sales_price"`
	EngageDate      *string  `json:"engage_date"`
	CloseDate       *string  `json:"close_date"`
}

// Form pergunta cada campo até obter uma resposta válida
type Form struct {
	prompter Prompter
	out      io.Writer
	now      func() time.Time
}

func NewForm(prompter Prompter, out io.Writer) *Form {
	return &Form{prompter: prompter, out: out, now: time.Now}
}

func (f *Form) Collect() (Answers, error) {
	answers := make(Answers, len(Fields))

	for _, field := range Fields {
		for {
			raw, err := f.prompter.Ask(promptFor(field), field.Options)
			if err != nil {
				return nil, err
			}

			value, err := f.validate(field, raw)
			if err != nil {
				fmt.Fprintf(f.out, "  %v\n", err)
				continue
			}

			answers[field.Name] = value
			break
		}
	}

	return answers, nil
}

func promptFor(field Field) string {
	switch {
	case field.Kind == kindChoice:
		return fmt.Sprintf("%s [%s]: ", field.Label, field.Options[0])
	case field.Default != "":
		return fmt.Sprintf("%s [%s]: ", field.Label, field.Default)
	default:
		return field.Label + ": "
	}
}

// validate devolve o valor canônico da resposta ou o motivo da recusa
func (f *Form) validate(field Field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	switch field.Kind {
	case kindChoice:
		if raw == "" {
			return field.Options[0], nil
		}
		for _, option := range field.Options {
			if strings.EqualFold(option, raw) {
				return option, nil
			}
		}
		return "", fmt.Errorf("opção inválida %q; use TAB para ver as opções", raw)

	case kindFloat, kindInt:
		if raw == "" {
			raw = field.Default
		}

		var (
			value float64
			err   error
		)
		if field.Kind == kindInt {
			var i int
			i, err = strconv.Atoi(raw)
			value = float64(i)
		} else {
			value, err = strconv.ParseFloat(raw, 64)
		}
		if err != nil {
			return "", fmt.Errorf("número inválido %q", raw)
		}

		if value < field.Min {
			return "", fmt.Errorf("valor mínimo é %v", field.Min)
		}
		if field.UpToCurrentYear && value > float64(f.now().Year()) {
			return "", fmt.Errorf("valor máximo é %d", f.now().Year())
		}
		return raw, nil

	case kindDate:
		if raw == "" {
			return "", nil
		}
		if _, err := time.Parse(time.DateOnly, raw); err != nil {
			return "", fmt.Errorf("data inválida %q; use AAAA-MM-DD", raw)
		}
		return raw, nil
	}

	return raw, nil
}

// BuildPayload aplica o mapeamento para null: sentinelas das listas, números
// não positivos, ano de fundação fora de (1900, ano corrente) e datas vazias.
func BuildPayload(answers Answers, now time.Time) Payload {
	choice := func(name string) *string {
		value := answers[name]
		for _, field := range Fields {
			if field.Name == name && value == field.Sentinel {
				return nil
			}
		}
		if value == "" {
			return nil
		}
		return &value
	}

	positiveFloat := func(name string) *float64 {
		value, err := strconv.ParseFloat(answers[name], 64)
		if err != nil || value <= 0 {
			return nil
		}
		return &value
	}

	positiveInt := func(name string) *int {
		value, err := strconv.Atoi(answers[name])
		if err != nil || value <= 0 {
			return nil
		}
		return &value
	}

	date := func(name string) *string {
		value := answers[name]
		if value == "" {
			return nil
		}
		return &value
	}

	year := positiveInt(domain.FieldYearEstablished)
	if year != nil && (*year <= 1900 || *year >= now.Year()) {
		year = nil
	}

	return Payload{
		SalesAgent:      choice(domain.FieldSalesAgent),
		Product:         choice(domain.FieldProduct),
		Sector:          choice(domain.FieldSector),
		OfficeLocation:  choice(domain.FieldOfficeLocation),
		SubsidiaryOf:    choice(domain.FieldSubsidiaryOf),
		Series:          choice(domain.FieldSeries),
		Manager:         choice(domain.FieldManager),
		RegionalOffice:  choice(domain.FieldRegionalOffice),
		DealStage:       choice(domain.FieldDealStage),
		CloseValue:      positiveFloat(domain.FieldCloseValue),
		YearEstablished: year,
		Revenue:         positiveFloat(domain.FieldRevenue),
		Employees:       positiveInt(domain.FieldEmployees),
		SalesPrice:      positiveFloat(domain.FieldSalesPrice),
		EngageDate:      date(domain.FieldEngageDate),
		CloseDate:       date(domain.FieldCloseDate),
	}
}
