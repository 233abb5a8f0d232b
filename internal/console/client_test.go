package console

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/opportunity-loss-api/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.Console{APIURL: url, APIToken: "token-123", TimeoutSeconds: 5})
}

func strPtr(s string) *string { return &s }

func TestClient_Predict(t *testing.T) {
	var (
		gotBody string
		gotAuth string
		calls   int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction_probability_of_loss": 0.00075, "prediction_label": "medium"}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Predict(context.Background(), Payload{SalesAgent: strPtr("Moses Frase")})
	require.NoError(t, err)

	assert.Equal(t, 0.00075, result.Probability)
	assert.Equal(t, "medium", result.Label)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Contains(t, gotBody, `"sales_agent":"Moses Frase"`)
	assert.Contains(t, gotBody, `"product":null`)
	assert.Equal(t, 1, calls)
}

func TestClient_PredictFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "resposta não JSON", status: http.StatusOK, body: "<html>oops</html>", wantErr: ErrInvalidResponse},
		{name: "chaves ausentes", status: http.StatusOK, body: `{"loss_probability": 0.3}`, wantErr: ErrMissingKeys},
		{name: "label com tipo errado", status: http.StatusOK, body: `{"prediction_probability_of_loss": 0.3, "prediction_label": 1}`, wantErr: ErrMissingKeys},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Predict(context.Background(), Payload{})
			assert.ErrorIs(t, err, tt.wantErr)

			var responseErr *ResponseError
			require.ErrorAs(t, err, &responseErr)
			assert.Equal(t, tt.body, responseErr.Body)
		})
	}
}

func TestClient_PredictHTTPErrorIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code":"SRV_005","message":"modelo não carregado"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Predict(context.Background(), Payload{})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "SRV_005")
	assert.Equal(t, 1, calls)
}

func TestClient_PredictConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Predict(context.Background(), Payload{})
	assert.ErrorIs(t, err, ErrConnection)
}

func TestClient_PredictTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(server.URL)
	client.http.SetTimeout(50 * time.Millisecond)

	_, err := client.Predict(context.Background(), Payload{})
	assert.ErrorIs(t, err, ErrTimeout)
}
