package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a UUID-based identifier for Project
type ProjectID string

// NewProjectID generates a new UUID v4 ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// Project names a workspace. Switching or creating a project resets the
// live session; sessions are not namespaced per project in storage.
type Project struct {
	ID        ProjectID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
