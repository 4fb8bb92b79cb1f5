package model

import (
	"time"

	"github.com/notework-lab/notework/pkg/domain/types"
)

// Usage is the token and cost estimate of a single AI invocation.
// Token counts are character-ratio approximations, not model-exact.
type Usage struct {
	Model        types.ModelID `json:"model"`
	InputTokens  int           `json:"inputTokens"`
	OutputTokens int           `json:"outputTokens"`
	Cost         float64       `json:"cost"`
	At           time.Time     `json:"at"`
}

// ModelRate is the static USD-per-million-token price of a model
type ModelRate struct {
	Input  float64
	Output float64
}
