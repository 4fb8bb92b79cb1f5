package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/utils/async"
)

// noteTitleLen bounds the derived page title
const noteTitleLen = 60

// recentDatabaseCap bounds the recently-used database list
const recentDatabaseCap = 10

// SaveNoteToNotion creates a page for the note in the given Notion
// database and records the database as recently used. The page title is
// the first line of the note content. Returns the created page ID.
func (uc *UseCases) SaveNoteToNotion(ctx context.Context, noteID model.NoteID, databaseID, databaseName string) (string, error) {
	if uc.notionWriter == nil {
		return "", goerr.Wrap(ErrNotionNotConfigured, "cannot save note")
	}
	if strings.TrimSpace(databaseID) == "" {
		return "", goerr.Wrap(ErrEmptyContent, "empty database ID")
	}

	uc.mu.Lock()
	note := uc.findNote(noteID)
	var content string
	if note != nil {
		content = note.Content
	}
	uc.mu.Unlock()
	if note == nil {
		return "", goerr.Wrap(ErrNoteNotFound, "cannot save note", goerr.V(NoteIDKey, noteID))
	}

	pageID, err := uc.notionWriter.SaveNote(ctx, databaseID, noteTitle(content), content)
	if err != nil {
		return "", goerr.Wrap(err, "failed to save note to Notion",
			goerr.V(NoteIDKey, noteID))
	}

	if databaseName == "" {
		databaseName = databaseID
	}

	uc.mu.Lock()
	uc.recentDatabases = pushRecentDatabase(uc.recentDatabases, &model.NotionDatabase{
		ID:    databaseID,
		Title: databaseName,
	})
	recents := make([]*model.NotionDatabase, len(uc.recentDatabases))
	copy(recents, uc.recentDatabases)
	uc.mu.Unlock()

	// Recents are persisted right away; a failed write is logged and the
	// next autosave retries it.
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.store.Put(ctx, keyNotionDatabases, recents)
	})

	return pageID, nil
}

// SearchNotionDatabases finds databases notes can be saved into
func (uc *UseCases) SearchNotionDatabases(ctx context.Context, query string) ([]*model.NotionDatabase, error) {
	if uc.notionWriter == nil {
		return nil, goerr.Wrap(ErrNotionNotConfigured, "cannot search databases")
	}
	return uc.notionWriter.SearchDatabases(ctx, query)
}

// RecentNotionDatabases returns recently-saved-to databases,
// most recent first
func (uc *UseCases) RecentNotionDatabases() []*model.NotionDatabase {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*model.NotionDatabase, len(uc.recentDatabases))
	copy(out, uc.recentDatabases)
	return out
}

// noteTitle derives a page title from the first line of the content
func noteTitle(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimLeft(strings.TrimSpace(line), "# ")
	return truncate(line, noteTitleLen)
}

// pushRecentDatabase prepends the database, dropping an earlier entry
// with the same ID and anything beyond the cap
func pushRecentDatabase(recents []*model.NotionDatabase, db *model.NotionDatabase) []*model.NotionDatabase {
	out := make([]*model.NotionDatabase, 0, len(recents)+1)
	out = append(out, db)
	for _, r := range recents {
		if r.ID != db.ID {
			out = append(out, r)
		}
	}
	if len(out) > recentDatabaseCap {
		out = out[:recentDatabaseCap]
	}
	return out
}
