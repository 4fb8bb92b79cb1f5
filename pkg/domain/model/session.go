package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionID is a UUID-based identifier for Session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Session is the full working state of the engine and the unit of
// persistence. One session is live at a time.
type Session struct {
	ID           SessionID            `json:"id"`
	ProjectID    ProjectID            `json:"projectId,omitempty"`
	Sources      []*Source            `json:"sources"`
	Notes        []*Note              `json:"notes"`
	History      []*ConversationEntry `json:"conversationHistory"`
	TotalCost    float64              `json:"totalCost"`
	LastActivity time.Time            `json:"lastActivity"`
}

// NewSession creates an empty session for a project
func NewSession(projectID ProjectID) *Session {
	return &Session{
		ID:        NewSessionID(),
		ProjectID: projectID,
		Sources:   []*Source{},
		Notes:     []*Note{},
		History:   []*ConversationEntry{},
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	copied := &Session{
		ID:           s.ID,
		ProjectID:    s.ProjectID,
		TotalCost:    s.TotalCost,
		LastActivity: s.LastActivity,
		Sources:      make([]*Source, 0, len(s.Sources)),
		Notes:        make([]*Note, 0, len(s.Notes)),
		History:      make([]*ConversationEntry, 0, len(s.History)),
	}
	for _, src := range s.Sources {
		copied.Sources = append(copied.Sources, src.Clone())
	}
	for _, n := range s.Notes {
		copied.Notes = append(copied.Notes, n.Clone())
	}
	for _, e := range s.History {
		copied.History = append(copied.History, e.Clone())
	}
	return copied
}
