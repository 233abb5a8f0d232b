package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vfg2006/opportunity-loss-api/pkg/utils"
)

type hintLevel int

const (
	hintVeryLow hintLevel = iota
	hintLow
	hintMedium
	hintVeryHigh
)

var hints = map[hintLevel]string{
	hintVeryHigh: "🚨 Atenção: esta oportunidade tem uma chance MUITO ALTA de ser perdida. Intervenção imediata recomendada!",
	hintMedium:   "⚠️ Alerta: esta oportunidade tem uma chance MÉDIA de ser perdida. Considere uma revisão de estratégia.",
	hintLow:      "✅ Bom sinal: esta oportunidade tem uma chance BAIXA de ser perdida.",
	hintVeryLow:  "👍 Excelente: esta oportunidade tem uma chance MUITO BAIXA de ser perdida.",
}

// hintFor classifica o rótulo pelo texto. "very low" é testado antes de
// "low" porque contém a palavra.
func hintFor(label string) hintLevel {
	l := strings.ToLower(label)

	switch {
	case strings.Contains(l, "very high"), strings.Contains(l, "muito alta"):
		return hintVeryHigh
	case strings.Contains(l, "medium"), strings.Contains(l, "média"):
		return hintMedium
	case strings.Contains(l, "very low"), strings.Contains(l, "muito baixa"):
		return hintVeryLow
	case strings.Contains(l, "low"), strings.Contains(l, "baixa"):
		return hintLow
	default:
		return hintVeryLow
	}
}

func RenderResult(w io.Writer, payload Payload, result *Result) {
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w, "Resultados da Predição")
	fmt.Fprintf(w, "Probabilidade de Perda: %.6f\n", result.Probability)
	fmt.Fprintf(w, "Classificação: %s\n", result.Label)
	fmt.Fprintln(w, hints[hintFor(result.Label)])
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w, "Dados enviados para a API:")
	fmt.Fprintln(w, utils.PrettyJson(payload))
}

// RenderError descreve a falha de forma distinta para cada tipo de erro
func RenderError(w io.Writer, url string, err error) {
	var (
		statusErr   *StatusError
		responseErr *ResponseError
	)

	switch {
	case errors.Is(err, ErrConnection):
		fmt.Fprintf(w, "Erro de conexão: não foi possível conectar à API em %s. Certifique-se de que a API está rodando.\n", url)
		fmt.Fprintln(w, "Para rodar a API, use na raiz do projeto: go run ./cmd/api")
	case errors.Is(err, ErrTimeout):
		fmt.Fprintln(w, "Erro: a requisição para a API excedeu o tempo limite.")
	case errors.As(err, &statusErr):
		fmt.Fprintf(w, "Ocorreu um erro na requisição à API.\nStatus HTTP: %d\nCorpo da Resposta: %s\n", statusErr.StatusCode, statusErr.Body)
	case errors.As(err, &responseErr) && errors.Is(err, ErrMissingKeys):
		fmt.Fprintf(w, "Erro: %v.\nResposta completa: %s\n", ErrMissingKeys, responseErr.Body)
	case errors.As(err, &responseErr):
		fmt.Fprintf(w, "Erro: %v.\nConteúdo da resposta: %s\n", ErrInvalidResponse, responseErr.Body)
	default:
		fmt.Fprintf(w, "Erro inesperado: %v\n", err)
	}
}
