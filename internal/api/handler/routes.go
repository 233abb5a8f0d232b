package handler

import (
	"net/http"

	"github.com/vfg2006/opportunity-loss-api/internal/api/handler/router"
	"github.com/vfg2006/opportunity-loss-api/internal/usecases/predicting"
	"github.com/vfg2006/opportunity-loss-api/pkg/middleware"
)

func Root() []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: RootHandler(),
		},
	}
}

func Health(service predicting.Predictor) []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthHandler(service),
		},
	}
}

func Predictions(service predicting.Predictor) []router.Route {
	return []router.Route{
		{
			Path:    "/predict",
			Method:  http.MethodPost,
			Handler: Predict(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.MaxBodyBytes(maxBodyBytes),
			},
		},
	}
}
