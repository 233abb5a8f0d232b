package domain

// Prediction é a resposta do endpoint de predição
type Prediction struct {
	ProbabilityOfLoss float64 `json:"prediction_probability_of_loss"`
	Label             string  `json:"prediction_label"`

	// Duração efetivamente usada no score; não faz parte do contrato HTTP
	DurationDays float64 `json:"-"`
}

// LabelThreshold associa um limite inferior (inclusivo) de probabilidade a
// um rótulo.
type LabelThreshold struct {
	Min   float64
	Label string
}

// Health descreve o estado do artefato de score
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
