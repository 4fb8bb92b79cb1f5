package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// NoteID is a UUID-based identifier for Note
type NoteID string

// NewNoteID generates a new UUID v4 NoteID
func NewNoteID() NoteID {
	return NoteID(uuid.New().String())
}

// Note is a persisted unit of content, either user-authored or AI-generated.
// SourceID is a non-owning back-reference: it may point at a source that has
// since been removed and must never be resolved as an owning reference.
type Note struct {
	ID          NoteID         `json:"id"`
	Kind        types.NoteKind `json:"kind"`
	Content     string         `json:"content"`
	SourceID    SourceID       `json:"sourceId,omitempty"`
	Tags        []string       `json:"tags"`
	Timestamp   time.Time      `json:"timestamp"`
	AIModel     types.ModelID  `json:"aiModel,omitempty"`
	IsImportant bool           `json:"isImportant"`
	TemplateID  TemplateID     `json:"templateId,omitempty"`
}

// Clone returns a deep copy of the note
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	copied := *n
	if n.Tags != nil {
		copied.Tags = make([]string, len(n.Tags))
		copy(copied.Tags, n.Tags)
	}
	return &copied
}

// HasTag reports whether the note already carries the tag
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
