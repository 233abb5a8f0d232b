package console

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/opportunity-loss-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrConnection      = errors.New("não foi possível conectar à API")
	ErrTimeout         = errors.New("a requisição para a API excedeu o tempo limite")
	ErrInvalidResponse = errors.New("resposta inválida da API (não é um JSON válido)")
	ErrMissingKeys     = errors.New("a resposta da API não contém as chaves esperadas (prediction_probability_of_loss, prediction_label)")
)

// StatusError é uma resposta HTTP 4xx/5xx do serviço
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API respondeu HTTP %d: %s", e.StatusCode, e.Body)
}

// ResponseError carrega o corpo recebido quando ele não pôde ser usado
type ResponseError struct {
	Err  error
	Body string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Result é a predição devolvida pelo serviço
type Result struct {
	Probability float64
	Label       string
}

type Client struct {
	http *resty.Client
	url  string
}

// NewClient cria o cliente HTTP do console. Não há retry: cada envio é uma
// única tentativa.
func NewClient(cfg config.Console) *Client {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	if cfg.APIToken != "" {
		httpClient.SetAuthToken(cfg.APIToken)
	}

	return &Client{http: httpClient, url: cfg.APIURL}
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) Predict(ctx context.Context, payload Payload) (*Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.url)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w em %s: %v", ErrConnection, c.url, err)
	}

	if resp.IsError() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &ResponseError{Err: ErrInvalidResponse, Body: resp.String()}
	}

	probability, okProbability := body["prediction_probability_of_loss"].(float64)
	label, okLabel := body["prediction_label"].(string)
	if !okProbability || !okLabel {
		return nil, &ResponseError{Err: ErrMissingKeys, Body: resp.String()}
	}

	return &Result{Probability: probability, Label: label}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
