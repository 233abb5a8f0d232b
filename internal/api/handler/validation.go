package handler

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/pkg/apiErrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Os erros apontam o nome do campo no JSON, não o do struct
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// FieldError é o conteúdo de details nas respostas 400
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule,omitempty"`
	Param string `json:"param,omitempty"`
}

// validationError converte o erro do validator no código de API e detalhes.
// Apenas a primeira violação é reportada.
func validationError(err error) (code string, message string, details FieldError) {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return apiErrors.ErrInvalidFormat, err.Error(), FieldError{}
	}

	first := violations[0]
	details = FieldError{
		Field: first.Field(),
		Rule:  first.Tag(),
		Param: first.Param(),
	}

	if first.Tag() == "required" {
		return apiErrors.ErrMissingRequiredData, "campo obrigatório ausente: " + first.Field(), details
	}

	return apiErrors.ErrInvalidFormat, "campo inválido: " + first.Field(), details
}

// typeMismatchField descobre qual campo do corpo não pôde ser decodificado,
// decodificando cada campo isoladamente.
func typeMismatchField(raw map[string]jsoniter.RawMessage) string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		single, err := json.Marshal(map[string]jsoniter.RawMessage{key: raw[key]})
		if err != nil {
			return key
		}

		var probe domain.Opportunity
		if err := json.Unmarshal(single, &probe); err != nil {
			return key
		}
	}

	return ""
}
