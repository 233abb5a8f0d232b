package handler

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/opportunity-loss-api/internal/domain"
	"github.com/vfg2006/opportunity-loss-api/internal/usecases/predicting"
	"github.com/vfg2006/opportunity-loss-api/pkg/apiErrors"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
	"github.com/vfg2006/opportunity-loss-api/pkg/middleware"
)

// Limite do corpo de /predict, aplicado como middleware da rota
const maxBodyBytes = 1 << 20

func Predict(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.WithError(err).Warn("predict: failed to read request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "não foi possível ler o corpo da requisição", nil)
			return
		}

		var raw map[string]jsoniter.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			logger.WithError(err).Warn("predict: malformed JSON body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "JSON inválido", nil)
			return
		}

		var opportunity domain.Opportunity
		if err := json.Unmarshal(body, &opportunity); err != nil {
			field := typeMismatchField(raw)
			logger.WithFields(log.Fields{
				"field": field,
				"error": err.Error(),
			}).Warn("predict: field with unexpected type")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "tipo inválido para o campo: "+field, FieldError{Field: field, Rule: "type"})
			return
		}

		if err := validate.Struct(opportunity); err != nil {
			code, message, details := validationError(err)
			logger.WithFields(log.Fields{
				"field": details.Field,
				"rule":  details.Rule,
			}).Warn("predict: request failed validation")

			apiErrors.WriteError(w, code, message, details)
			return
		}

		prediction, err := service.Predict(r.Context(), opportunity)
		if err != nil {
			if errors.Is(err, predicting.ErrModelUnavailable) {
				logger.WithError(err).Error("predict: scoring artifact unavailable")
				apiErrors.WriteError(w, apiErrors.ErrModelUnavailable, "modelo não carregado", nil)
				return
			}

			logger.WithError(err).Error("predict: prediction failed")
			apiErrors.WriteError(w, apiErrors.ErrPrediction, "Ocorreu um erro durante a predição: "+err.Error(), nil)
			return
		}

		fields := log.Fields{
			"sales_agent": opportunity.SalesAgent,
			"product":     opportunity.Product,
			"label":       prediction.Label,
		}
		if claims, ok := middleware.OperatorFromContext(r.Context()); ok {
			fields["operator"] = claims.Operator
		}
		logger.WithFields(fields).Info("predict: prediction served")

		writeJSON(w, r, http.StatusOK, prediction)
	})
}
