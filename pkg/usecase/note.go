package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// NoteFilter narrows the note collection. Zero-valued fields are inactive;
// active stages compose as a pure intersection.
type NoteFilter struct {
	Kind          types.NoteKind
	ImportantOnly bool
	DateRange     types.DateRange
	Tags          []string
	Search        string
}

// AddNote appends a user-authored text note
func (uc *UseCases) AddNote(ctx context.Context, content string, sourceID model.SourceID) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, goerr.Wrap(ErrEmptyContent, "cannot add empty note")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	note := uc.appendNote(content, types.NoteKindText, sourceID, "", "")
	return note.Clone(), nil
}

// EditNote overwrites a note's content, first snapshotting the pre-edit
// content into the global version ring. Editing an unknown note records
// nothing.
func (uc *UseCases) EditNote(ctx context.Context, id model.NoteID, content string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	note := uc.findNote(id)
	if note == nil {
		return goerr.Wrap(ErrNoteNotFound, "cannot edit note", goerr.V(NoteIDKey, id))
	}

	uc.versions.Push(&model.NoteVersion{
		ID:        model.NewVersionID(),
		NoteID:    note.ID,
		Content:   note.Content,
		Timestamp: uc.now(),
	})
	note.Content = content
	uc.touch()

	return nil
}

// ToggleImportant flips a note's importance flag
func (uc *UseCases) ToggleImportant(ctx context.Context, id model.NoteID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	note := uc.findNote(id)
	if note == nil {
		return goerr.Wrap(ErrNoteNotFound, "cannot toggle importance", goerr.V(NoteIDKey, id))
	}
	note.IsImportant = !note.IsImportant
	uc.touch()

	return nil
}

// AddTag attaches a tag to a note with set-union semantics: re-adding an
// existing tag is a no-op.
func (uc *UseCases) AddTag(ctx context.Context, id model.NoteID, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return goerr.Wrap(ErrEmptyContent, "cannot add empty tag")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	note := uc.findNote(id)
	if note == nil {
		return goerr.Wrap(ErrNoteNotFound, "cannot tag note", goerr.V(NoteIDKey, id))
	}
	if note.HasTag(tag) {
		return nil
	}
	note.Tags = append(note.Tags, tag)
	uc.touch()

	return nil
}

// RemoveTag detaches a tag from a note; removing an absent tag is a no-op
func (uc *UseCases) RemoveTag(ctx context.Context, id model.NoteID, tag string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	note := uc.findNote(id)
	if note == nil {
		return goerr.Wrap(ErrNoteNotFound, "cannot untag note", goerr.V(NoteIDKey, id))
	}
	for i, t := range note.Tags {
		if t == tag {
			note.Tags = append(note.Tags[:i], note.Tags[i+1:]...)
			uc.touch()
			break
		}
	}
	return nil
}

// DeleteNote removes a note. Its versions stay in the ring until evicted.
func (uc *UseCases) DeleteNote(ctx context.Context, id model.NoteID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i, note := range uc.session.Notes {
		if note.ID == id {
			uc.session.Notes = append(uc.session.Notes[:i], uc.session.Notes[i+1:]...)
			uc.touch()
			return nil
		}
	}
	return goerr.Wrap(ErrNoteNotFound, "cannot delete note", goerr.V(NoteIDKey, id))
}

// RestoreVersion writes a version's content back into its note. This is an
// ordinary edit: the pre-restore content is versioned first, so restoring
// never destroys history.
func (uc *UseCases) RestoreVersion(ctx context.Context, id model.VersionID) error {
	uc.mu.Lock()
	v := uc.versions.Find(id)
	uc.mu.Unlock()

	if v == nil {
		return goerr.Wrap(ErrVersionNotFound, "cannot restore version", goerr.V(VersionIDKey, id))
	}
	return uc.EditNote(ctx, v.NoteID, v.Content)
}

// Notes returns copies of every note in creation order
func (uc *UseCases) Notes() []*model.Note {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*model.Note, 0, len(uc.session.Notes))
	for _, note := range uc.session.Notes {
		out = append(out, note.Clone())
	}
	return out
}

// Versions returns the global edit history, oldest first
func (uc *UseCases) Versions() []*model.NoteVersion {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.versions.List()
}

// NoteVersions returns the surviving versions of one note, oldest first
func (uc *UseCases) NoteVersions(id model.NoteID) []*model.NoteVersion {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var out []*model.NoteVersion
	for _, v := range uc.versions.List() {
		if v.NoteID == id {
			out = append(out, v)
		}
	}
	return out
}

// FilterNotes narrows the collection by kind, importance, date range, tags
// (match-any), and case-insensitive substring search, in that order. Each
// stage is optional; the result is the intersection of the active stages.
func (uc *UseCases) FilterNotes(criteria NoteFilter) []*model.Note {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	notes := uc.session.Notes

	if criteria.Kind != "" {
		notes = narrow(notes, func(n *model.Note) bool { return n.Kind == criteria.Kind })
	}
	if criteria.ImportantOnly {
		notes = narrow(notes, func(n *model.Note) bool { return n.IsImportant })
	}
	if cutoff, ok := criteria.DateRange.Cutoff(uc.now()); ok {
		notes = narrow(notes, func(n *model.Note) bool { return !n.Timestamp.Before(cutoff) })
	}
	if len(criteria.Tags) > 0 {
		notes = narrow(notes, func(n *model.Note) bool {
			for _, tag := range criteria.Tags {
				if n.HasTag(tag) {
					return true
				}
			}
			return false
		})
	}
	if criteria.Search != "" {
		needle := strings.ToLower(criteria.Search)
		notes = narrow(notes, func(n *model.Note) bool {
			return strings.Contains(strings.ToLower(n.Content), needle)
		})
	}

	out := make([]*model.Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, note.Clone())
	}
	return out
}

// AllTags returns the union of every note's tags, sorted
func (uc *UseCases) AllTags() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	seen := map[string]struct{}{}
	for _, note := range uc.session.Notes {
		for _, tag := range note.Tags {
			seen[tag] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// appendNote creates and appends a note. Callers must hold uc.mu.
func (uc *UseCases) appendNote(content string, kind types.NoteKind, sourceID model.SourceID, aiModel types.ModelID, templateID model.TemplateID) *model.Note {
	note := &model.Note{
		ID:         model.NewNoteID(),
		Kind:       kind,
		Content:    content,
		SourceID:   sourceID,
		Tags:       []string{},
		Timestamp:  uc.now(),
		AIModel:    aiModel,
		TemplateID: templateID,
	}
	uc.session.Notes = append(uc.session.Notes, note)
	uc.touch()
	return note
}

// findNote returns the live note with the given id. Callers must hold uc.mu.
func (uc *UseCases) findNote(id model.NoteID) *model.Note {
	for _, note := range uc.session.Notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

func narrow(notes []*model.Note, keep func(*model.Note) bool) []*model.Note {
	out := make([]*model.Note, 0, len(notes))
	for _, note := range notes {
		if keep(note) {
			out = append(out, note)
		}
	}
	return out
}
