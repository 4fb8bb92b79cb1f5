package types

import "fmt"

// ModelID identifies an AI model backend
type ModelID string

const (
	ModelClaude ModelID = "claude"
	ModelOpenAI ModelID = "openai"
	ModelGemini ModelID = "gemini"
)

// AllModelIDs returns all known model IDs in display order
func AllModelIDs() []ModelID {
	return []ModelID{
		ModelClaude,
		ModelOpenAI,
		ModelGemini,
	}
}

// IsValid checks if the model ID is known
func (m ModelID) IsValid() bool {
	switch m {
	case ModelClaude,
		ModelOpenAI,
		ModelGemini:
		return true
	default:
		return false
	}
}

// String returns the string representation of the model ID
func (m ModelID) String() string {
	return string(m)
}

// Label returns the human-readable model name for note bodies and UI
func (m ModelID) Label() string {
	switch m {
	case ModelClaude:
		return "Claude"
	case ModelOpenAI:
		return "OpenAI"
	case ModelGemini:
		return "Gemini"
	default:
		return string(m)
	}
}

// ParseModelID parses a string into a ModelID
func ParseModelID(s string) (ModelID, error) {
	m := ModelID(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown model: %s", s)
	}
	return m, nil
}
