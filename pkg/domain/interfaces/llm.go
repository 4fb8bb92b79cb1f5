package interfaces

import (
	"context"

	"github.com/notework-lab/notework/pkg/domain/types"
)

// ModelInvoker is the opaque AI-call collaborator: given a model, subject
// content, and a question or instruction, it returns the response text.
// Timeouts and retries, if any, belong to the implementation.
type ModelInvoker interface {
	// Invoke calls the model with the content as subject and the question
	// as the task. Fails when the model's credential is not configured.
	Invoke(ctx context.Context, model types.ModelID, content, question string) (string, error)

	// Configured reports whether the model has a credential
	Configured(model types.ModelID) bool

	// Models returns the configured models in display order
	Models() []types.ModelID
}
