package types

import "fmt"

// NoteKind represents the kind of a note
type NoteKind string

const (
	NoteKindText        NoteKind = "text"
	NoteKindQuestion    NoteKind = "question"
	NoteKindSummary     NoteKind = "summary"
	NoteKindTranslation NoteKind = "translation"
	NoteKindHighlight   NoteKind = "highlight"
	NoteKindTemplate    NoteKind = "template"
)

// AllNoteKinds returns all valid note kinds
func AllNoteKinds() []NoteKind {
	return []NoteKind{
		NoteKindText,
		NoteKindQuestion,
		NoteKindSummary,
		NoteKindTranslation,
		NoteKindHighlight,
		NoteKindTemplate,
	}
}

// IsValid checks if the note kind is valid
func (k NoteKind) IsValid() bool {
	switch k {
	case NoteKindText,
		NoteKindQuestion,
		NoteKindSummary,
		NoteKindTranslation,
		NoteKindHighlight,
		NoteKindTemplate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the note kind
func (k NoteKind) String() string {
	return string(k)
}

// ParseNoteKind parses a string into a NoteKind
func ParseNoteKind(s string) (NoteKind, error) {
	kind := NoteKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid note kind: %s", s)
	}
	return kind, nil
}
