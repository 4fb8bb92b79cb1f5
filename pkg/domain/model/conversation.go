package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// EntryID is a UUID-based identifier for ConversationEntry
type EntryID string

// NewEntryID generates a new UUID v4 EntryID
func NewEntryID() EntryID {
	return EntryID(uuid.New().String())
}

// ConversationEntry records one completed question-answering action
type ConversationEntry struct {
	ID        EntryID       `json:"id"`
	Question  string        `json:"question"`
	Answer    string        `json:"answer"`
	Model     types.ModelID `json:"model"`
	SourceID  SourceID      `json:"sourceId,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Clone returns a deep copy of the conversation entry
func (e *ConversationEntry) Clone() *ConversationEntry {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

// followUpSuggestions are the canned prompts offered after a successful
// answer. They are static by design; suggestions are never generated.
var followUpSuggestions = []string{
	"Can you explain that in simpler terms?",
	"What are the key takeaways?",
	"Can you give a concrete example?",
	"What should I look into next?",
}

// FollowUpSuggestions returns the canned follow-up prompts
func FollowUpSuggestions() []string {
	out := make([]string, len(followUpSuggestions))
	copy(out, followUpSuggestions)
	return out
}
