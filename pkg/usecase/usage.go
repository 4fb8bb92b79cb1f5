package usecase

import (
	"unicode/utf8"

	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// modelRates is the static price table in USD per million tokens.
// Unknown models price at zero.
var modelRates = map[types.ModelID]model.ModelRate{
	types.ModelClaude: {Input: 3.00, Output: 15.00},
	types.ModelOpenAI: {Input: 0.15, Output: 0.60},
	types.ModelGemini: {Input: 0.10, Output: 0.40},
}

// EstimateTokens approximates the token count of a text at a fixed three
// characters per token, rounded up. It is an estimate, not model-exact.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 2) / 3
}

// Cost prices a request against the static rate table
func Cost(m types.ModelID, inputTokens, outputTokens int) float64 {
	rate, ok := modelRates[m]
	if !ok {
		return 0
	}
	return (float64(inputTokens)*rate.Input + float64(outputTokens)*rate.Output) / 1_000_000
}

// recordUsage estimates tokens and cost for one completed invocation,
// keeps the snapshot for display, and adds the cost to the session total.
// This is the only mutator of TotalCost. Callers must hold uc.mu.
func (uc *UseCases) recordUsage(m types.ModelID, inputText, outputText string) *model.Usage {
	usage := &model.Usage{
		Model:        m,
		InputTokens:  EstimateTokens(inputText),
		OutputTokens: EstimateTokens(outputText),
		At:           uc.now(),
	}
	usage.Cost = Cost(m, usage.InputTokens, usage.OutputTokens)

	uc.lastUsage = usage
	uc.session.TotalCost += usage.Cost
	uc.touch()

	return usage
}

// LastUsage returns the most recent usage snapshot, nil before any call
func (uc *UseCases) LastUsage() *model.Usage {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.lastUsage == nil {
		return nil
	}
	copied := *uc.lastUsage
	return &copied
}

// TotalCost returns the session's accumulated cost
func (uc *UseCases) TotalCost() float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.TotalCost
}
