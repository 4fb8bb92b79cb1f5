package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// Instructions sent to the model for the fixed-purpose actions
const (
	translateInstruction = "Translate the following document into English. Preserve the structure and do not add commentary."
	summarizeInstruction = "Summarize the following document. Capture the key points as a concise structured summary."
	compareInstruction   = "Compare the following documents. Point out agreements, contradictions, and what each covers that the others do not."
)

// selectionExcerptLen caps the highlighted-selection excerpt embedded in a
// question note, in runes.
const selectionExcerptLen = 100

// sourceExcerptLen caps the per-source excerpt used for source comparison,
// in runes.
const sourceExcerptLen = 500

// AskQuestionInput carries one free-form question action
type AskQuestionInput struct {
	Question  string
	Model     types.ModelID
	FollowUp  bool
	Selection string
}

// CompareResult is one model's slot in a multi-model fan-out. Each in-flight
// call owns exactly one slot; Err carries an inline failure without
// affecting sibling slots.
type CompareResult struct {
	Model   types.ModelID `json:"model"`
	Answer  string        `json:"answer"`
	Err     string        `json:"error,omitempty"`
	Loading bool          `json:"loading"`
}

// Translate runs the active source through translation and commits the
// result as a translation note. The model is pinned to Claude.
func (uc *UseCases) Translate(ctx context.Context) (*model.Note, error) {
	return uc.runSourceAction(ctx, types.NoteKindTranslation, translateInstruction)
}

// Summarize runs the active source through summarization and commits the
// result as a summary note. The model is pinned to Claude.
func (uc *UseCases) Summarize(ctx context.Context) (*model.Note, error) {
	return uc.runSourceAction(ctx, types.NoteKindSummary, summarizeInstruction)
}

// runSourceAction is the shared resolve-invoke-commit path for translate
// and summarize. A failed invocation commits nothing: no note, no cost.
func (uc *UseCases) runSourceAction(ctx context.Context, kind types.NoteKind, instruction string) (*model.Note, error) {
	uc.setStatus(types.ActionStatusResolving)

	sourceID := uc.ActiveSourceID()
	if sourceID == "" {
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(ErrNoActiveSource, "cannot run action")
	}

	content, err := uc.resolveContent(ctx, sourceID)
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, err
	}

	uc.setStatus(types.ActionStatusInvoking)
	resp, err := uc.invoker.Invoke(ctx, types.ModelClaude, content, instruction)
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(err, "model invocation failed", goerr.V(ModelKey, types.ModelClaude))
	}

	uc.setStatus(types.ActionStatusCommitting)
	uc.mu.Lock()
	note := uc.appendNote(resp, kind, sourceID, types.ModelClaude, "")
	uc.recordUsage(types.ModelClaude, content, resp)
	result := note.Clone()
	uc.mu.Unlock()

	uc.setStatus(types.ActionStatusIdle)
	return result, nil
}

// TemplateAnalysis runs the active source through a preset analysis
// template. The note body carries the template's icon and name; usage is
// recorded against the full prompt plus content so cost estimates stay
// comparable across actions.
func (uc *UseCases) TemplateAnalysis(ctx context.Context, templateID model.TemplateID) (*model.Note, error) {
	uc.mu.Lock()
	var tpl *model.Template
	for _, t := range uc.templates {
		if t.ID == templateID {
			tpl = t
			break
		}
	}
	uc.mu.Unlock()

	if tpl == nil {
		return nil, goerr.Wrap(ErrTemplateNotFound, "unknown template", goerr.V(TemplateIDKey, templateID))
	}

	uc.setStatus(types.ActionStatusResolving)

	sourceID := uc.ActiveSourceID()
	if sourceID == "" {
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(ErrNoActiveSource, "cannot run template analysis")
	}

	content, err := uc.resolveContent(ctx, sourceID)
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, err
	}

	uc.setStatus(types.ActionStatusInvoking)
	resp, err := uc.invoker.Invoke(ctx, types.ModelClaude, content, tpl.Prompt)
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(err, "model invocation failed",
			goerr.V(ModelKey, types.ModelClaude), goerr.V(TemplateIDKey, templateID))
	}

	uc.setStatus(types.ActionStatusCommitting)
	body := fmt.Sprintf("%s %s\n\n%s", tpl.Icon, tpl.Name, resp)

	uc.mu.Lock()
	note := uc.appendNote(body, types.NoteKindTemplate, sourceID, types.ModelClaude, tpl.ID)
	uc.recordUsage(types.ModelClaude, tpl.Prompt+content, resp)
	result := note.Clone()
	uc.mu.Unlock()

	uc.setStatus(types.ActionStatusIdle)
	return result, nil
}

// AskQuestion answers a free-form question against the last note of the
// active source. The selected model must have a configured credential. On
// success it commits a question note, records usage, and appends a
// conversation entry.
func (uc *UseCases) AskQuestion(ctx context.Context, input AskQuestionInput) (*model.Note, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, goerr.Wrap(ErrEmptyQuestion, "cannot ask question")
	}
	if !input.Model.IsValid() {
		return nil, goerr.Wrap(ErrInvalidModel, "cannot ask question", goerr.V(ModelKey, input.Model))
	}
	if !uc.invoker.Configured(input.Model) {
		return nil, goerr.Wrap(ErrMissingCredential, "cannot ask question",
			goerr.V(ModelKey, input.Model))
	}

	uc.setStatus(types.ActionStatusResolving)

	uc.mu.Lock()
	prompt, sourceID, err := uc.questionContext(input.FollowUp)
	uc.mu.Unlock()
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, err
	}

	uc.setStatus(types.ActionStatusInvoking)
	answer, err := uc.invoker.Invoke(ctx, input.Model, prompt, input.Question)
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(err, "model invocation failed", goerr.V(ModelKey, input.Model))
	}

	uc.setStatus(types.ActionStatusCommitting)
	body := questionNoteBody(input.Question, input.Model, input.Selection, answer)

	uc.mu.Lock()
	note := uc.appendNote(body, types.NoteKindQuestion, sourceID, input.Model, "")
	uc.recordUsage(input.Model, prompt+input.Question, answer)

	entry := &model.ConversationEntry{
		ID:        model.NewEntryID(),
		Question:  input.Question,
		Answer:    answer,
		Model:     input.Model,
		SourceID:  sourceID,
		Timestamp: uc.now(),
	}
	uc.session.History = append(uc.session.History, entry)
	uc.lastConversation = entry
	result := note.Clone()
	uc.mu.Unlock()

	uc.setStatus(types.ActionStatusIdle)
	return result, nil
}

// CompareModels fans the same question out to every configured model
// concurrently. Each call writes only its own result slot: one model's
// failure becomes an inline error string without aborting or delaying the
// others, and each success records usage individually. When content is
// empty the active source's content is used.
func (uc *UseCases) CompareModels(ctx context.Context, question, content string) (map[types.ModelID]*CompareResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, goerr.Wrap(ErrEmptyQuestion, "cannot compare models")
	}

	models := uc.invoker.Models()
	if len(models) == 0 {
		return nil, goerr.Wrap(ErrMissingCredential, "no model is configured")
	}

	if content == "" {
		sourceID := uc.ActiveSourceID()
		if sourceID == "" {
			return nil, goerr.Wrap(ErrNoActiveSource, "cannot compare models without content")
		}
		resolved, err := uc.resolveContent(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		content = resolved
	}

	uc.setStatus(types.ActionStatusInvoking)

	slots := make(map[types.ModelID]*CompareResult, len(models))
	uc.mu.Lock()
	for _, m := range models {
		slots[m] = &CompareResult{Model: m, Loading: true}
	}
	uc.compare = slots
	uc.mu.Unlock()

	var wg sync.WaitGroup
	for _, m := range models {
		wg.Add(1)
		go func(m types.ModelID) {
			defer wg.Done()

			answer, err := uc.invoker.Invoke(ctx, m, content, question)

			uc.mu.Lock()
			defer uc.mu.Unlock()
			slot := slots[m]
			slot.Loading = false
			if err != nil {
				slot.Err = err.Error()
				return
			}
			slot.Answer = answer
			uc.recordUsage(m, content+question, answer)
		}(m)
	}
	wg.Wait()

	uc.setStatus(types.ActionStatusIdle)
	return uc.CompareResults(), nil
}

// CompareResults returns copies of the current fan-out slots so callers can
// render partial completion while calls are still in flight.
func (uc *UseCases) CompareResults() map[types.ModelID]*CompareResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make(map[types.ModelID]*CompareResult, len(uc.compare))
	for m, slot := range uc.compare {
		copied := *slot
		out[m] = &copied
	}
	return out
}

// CompareSources builds one combined prompt excerpting every loaded source
// and issues a single model call, committing the result as a summary note.
// At least two sources must be loaded.
func (uc *UseCases) CompareSources(ctx context.Context, m types.ModelID) (*model.Note, error) {
	if m == "" {
		m = types.ModelClaude
	}
	if !m.IsValid() {
		return nil, goerr.Wrap(ErrInvalidModel, "cannot compare sources", goerr.V(ModelKey, m))
	}
	if !uc.invoker.Configured(m) {
		return nil, goerr.Wrap(ErrMissingCredential, "cannot compare sources", goerr.V(ModelKey, m))
	}

	uc.setStatus(types.ActionStatusResolving)

	uc.mu.Lock()
	if len(uc.session.Sources) < 2 {
		n := len(uc.session.Sources)
		uc.mu.Unlock()
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(ErrInsufficientSources, "cannot compare sources", goerr.V("count", n))
	}

	var sb strings.Builder
	for i, src := range uc.session.Sources {
		fmt.Fprintf(&sb, "## Source %d: %s\n%s\n\n", i+1, src.Title, truncate(src.Content, sourceExcerptLen))
	}
	prompt := sb.String()
	uc.mu.Unlock()

	uc.setStatus(types.ActionStatusInvoking)
	resp, err := uc.invoker.Invoke(ctx, m, prompt, compareInstruction)
	if err != nil {
		uc.setStatus(types.ActionStatusIdle)
		return nil, goerr.Wrap(err, "model invocation failed", goerr.V(ModelKey, m))
	}

	uc.setStatus(types.ActionStatusCommitting)
	uc.mu.Lock()
	note := uc.appendNote(resp, types.NoteKindSummary, "", m, "")
	uc.recordUsage(m, prompt, resp)
	result := note.Clone()
	uc.mu.Unlock()

	uc.setStatus(types.ActionStatusIdle)
	return result, nil
}

func questionNoteBody(question string, m types.ModelID, selection, answer string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Q: %s\n", question)
	fmt.Fprintf(&sb, "Model: %s\n", m.Label())
	if selection != "" {
		fmt.Fprintf(&sb, "Selection: %s\n", truncate(selection, selectionExcerptLen))
	}
	sb.WriteString("\n")
	sb.WriteString(answer)
	return sb.String()
}

// truncate caps a string at n runes, appending an ellipsis marker when cut
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
