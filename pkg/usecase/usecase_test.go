package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
	"github.com/notework-lab/notework/pkg/repository/memory"
	"github.com/notework-lab/notework/pkg/usecase"
)

type invokeCall struct {
	Model    types.ModelID
	Content  string
	Question string
}

// mockInvoker is a mock AI collaborator for engine testing
type mockInvoker struct {
	mu         sync.Mutex
	invokeFn   func(ctx context.Context, m types.ModelID, content, question string) (string, error)
	notConfigd map[types.ModelID]bool
	calls      []invokeCall
}

func (m *mockInvoker) Invoke(ctx context.Context, modelID types.ModelID, content, question string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, invokeCall{Model: modelID, Content: content, Question: question})
	fn := m.invokeFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, modelID, content, question)
	}
	return fmt.Sprintf("answer from %s", modelID), nil
}

func (m *mockInvoker) Configured(modelID types.ModelID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.notConfigd[modelID]
}

func (m *mockInvoker) Models() []types.ModelID {
	var out []types.ModelID
	for _, id := range types.AllModelIDs() {
		if m.Configured(id) {
			out = append(out, id)
		}
	}
	return out
}

func (m *mockInvoker) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockInvoker) lastCall() invokeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

// mockExtractor is a mock file text collaborator
type mockExtractor struct {
	mu        sync.Mutex
	extractFn func(ctx context.Context, blob []byte, fileType string) (string, error)
	calls     int
}

func (m *mockExtractor) Extract(ctx context.Context, blob []byte, fileType string) (string, error) {
	m.mu.Lock()
	m.calls++
	fn := m.extractFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, blob, fileType)
	}
	return "extracted text", nil
}

func (m *mockExtractor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockResolver is a mock URL resolver
type mockResolver struct {
	resolveFn func(ctx context.Context, url string) (string, error)
}

func (m *mockResolver) Resolve(ctx context.Context, url string) (string, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, url)
	}
	return "resolved content of " + url, nil
}

func newTestUseCases(opts ...usecase.Option) (*usecase.UseCases, *mockInvoker) {
	invoker := &mockInvoker{}
	base := []usecase.Option{
		usecase.WithInvoker(invoker),
		usecase.WithNow(time.Now),
	}
	uc := usecase.New(memory.New(), append(base, opts...)...)
	return uc, invoker
}

func addTextSource(uc *usecase.UseCases, title, content string) (*model.Source, error) {
	return uc.AddSource(context.Background(), model.SourceDescriptor{
		Title:   title,
		Content: content,
	})
}
