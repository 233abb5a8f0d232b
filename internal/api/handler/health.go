package handler

import (
	"net/http"

	"github.com/vfg2006/opportunity-loss-api/internal/usecases/predicting"
	"github.com/vfg2006/opportunity-loss-api/pkg/apiErrors"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

const welcomeMessage = "Bem-vindo à API de Predição de Perda de Oportunidades de Venda!"

func RootHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"message": welcomeMessage})
	})
}

// HealthHandler responde 200 apenas quando o artefato de score está carregado
func HealthHandler(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		health, err := service.Health(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("health: scoring artifact unavailable")
			apiErrors.WriteError(w, apiErrors.ErrModelUnavailable, health.Message, map[string]string{"status": health.Status})
			return
		}

		writeJSON(w, r, http.StatusOK, health)
	})
}
