package model

import (
	"time"

	"github.com/google/uuid"
)

// VersionRingCapacity bounds the global edit history across all notes
const VersionRingCapacity = 100

// VersionID is a UUID-based identifier for NoteVersion
type VersionID string

// NewVersionID generates a new UUID v4 VersionID
func NewVersionID() VersionID {
	return VersionID(uuid.New().String())
}

// NoteVersion captures a note's content immediately before an edit
type NoteVersion struct {
	ID        VersionID `json:"id"`
	NoteID    NoteID    `json:"noteId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionRing is a fixed-capacity deque over the global edit history.
// Pushing beyond capacity evicts the oldest entry; the bound holds by
// construction rather than by post-hoc truncation.
type VersionRing struct {
	entries [VersionRingCapacity]*NoteVersion
	start   int
	count   int
}

// NewVersionRing creates an empty ring seeded with any surviving entries.
// When more entries are supplied than the capacity allows, only the most
// recent ones are kept.
func NewVersionRing(entries []*NoteVersion) *VersionRing {
	r := &VersionRing{}
	if len(entries) > VersionRingCapacity {
		entries = entries[len(entries)-VersionRingCapacity:]
	}
	for _, v := range entries {
		r.Push(v)
	}
	return r
}

// Push appends a version, evicting the oldest entry when full
func (r *VersionRing) Push(v *NoteVersion) {
	idx := (r.start + r.count) % VersionRingCapacity
	r.entries[idx] = v
	if r.count < VersionRingCapacity {
		r.count++
		return
	}
	r.start = (r.start + 1) % VersionRingCapacity
}

// Len returns the number of stored versions
func (r *VersionRing) Len() int {
	return r.count
}

// List returns the stored versions oldest-first
func (r *VersionRing) List() []*NoteVersion {
	out := make([]*NoteVersion, 0, r.count)
	for i := 0; i < r.count; i++ {
		out = append(out, r.entries[(r.start+i)%VersionRingCapacity])
	}
	return out
}

// Find returns the version with the given ID, or nil
func (r *VersionRing) Find(id VersionID) *NoteVersion {
	for i := 0; i < r.count; i++ {
		if v := r.entries[(r.start+i)%VersionRingCapacity]; v.ID == id {
			return v
		}
	}
	return nil
}
