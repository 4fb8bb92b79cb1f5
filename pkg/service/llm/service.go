package llm

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/notework-lab/notework/pkg/domain/types"
)

//go:embed prompt/answer_system.md
var answerSystemPrompt string

// ErrModelNotConfigured is returned when a model has no credential
var ErrModelNotConfigured = goerr.New("model credential is not configured")

// Service dispatches opaque AI calls to whichever model backends have a
// configured credential. Each backend is a gollem LLM client.
type Service struct {
	clients map[types.ModelID]gollem.LLMClient
}

// New creates an invoker over the provided clients. Entries with a nil
// client are treated as not configured.
func New(clients map[types.ModelID]gollem.LLMClient) *Service {
	configured := make(map[types.ModelID]gollem.LLMClient, len(clients))
	for id, c := range clients {
		if c != nil {
			configured[id] = c
		}
	}
	return &Service{clients: configured}
}

// Configured reports whether the model has a credential
func (s *Service) Configured(model types.ModelID) bool {
	_, ok := s.clients[model]
	return ok
}

// Models returns the configured models in display order
func (s *Service) Models() []types.ModelID {
	var out []types.ModelID
	for _, id := range types.AllModelIDs() {
		if s.Configured(id) {
			out = append(out, id)
		}
	}
	return out
}

// Invoke calls the model with content as the reference document and
// question as the task, returning the response text
func (s *Service) Invoke(ctx context.Context, model types.ModelID, content, question string) (string, error) {
	client, ok := s.clients[model]
	if !ok {
		return "", goerr.Wrap(ErrModelNotConfigured, "cannot invoke model", goerr.V("model", model))
	}

	session, err := client.NewSession(ctx,
		gollem.WithSessionSystemPrompt(answerSystemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session", goerr.V("model", model))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(content, question)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("model", model))
	}
	if resp == nil || len(resp.Texts) == 0 || strings.TrimSpace(resp.Texts[0]) == "" {
		return "", goerr.New("empty response from model", goerr.V("model", model))
	}

	return resp.Texts[0], nil
}

func buildUserPrompt(content, question string) string {
	return fmt.Sprintf("## Task:\n%s\n\n## Reference document:\n%s", question, content)
}
