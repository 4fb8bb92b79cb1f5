package usecase

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
)

// History returns copies of the conversation entries, oldest first
func (uc *UseCases) History() []*model.ConversationEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*model.ConversationEntry, 0, len(uc.session.History))
	for _, e := range uc.session.History {
		out = append(out, e.Clone())
	}
	return out
}

// LastConversation returns the most recent entry, nil before any answer
func (uc *UseCases) LastConversation() *model.ConversationEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastConversation.Clone()
}

// FollowUpSuggestions returns the canned prompts offered after an answer
func (uc *UseCases) FollowUpSuggestions() []string {
	return model.FollowUpSuggestions()
}

// questionContext resolves the text a question runs against: the content of
// the last note tied to the active source. A follow-up layers the previous
// question and answer on top of that base content. Callers must hold uc.mu.
func (uc *UseCases) questionContext(followUp bool) (string, model.SourceID, error) {
	if uc.activeSourceID == "" {
		return "", "", goerr.Wrap(ErrNoActiveSource, "cannot build question context")
	}

	var base *model.Note
	for _, note := range uc.session.Notes {
		if note.SourceID == uc.activeSourceID {
			base = note
		}
	}
	if base == nil {
		return "", "", goerr.Wrap(ErrNoContext, "no note for active source",
			goerr.V(SourceIDKey, uc.activeSourceID))
	}

	context := base.Content
	if followUp && uc.lastConversation != nil {
		context = fmt.Sprintf("Previous question: %s\n\nPrevious answer: %s\n\nOriginal content:\n%s",
			uc.lastConversation.Question, uc.lastConversation.Answer, base.Content)
	}

	return context, uc.activeSourceID, nil
}
