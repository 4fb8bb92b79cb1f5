package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/repository/memory"
	"github.com/notework-lab/notework/pkg/usecase"
)

type mockNotionWriter struct {
	saveFn   func(ctx context.Context, databaseID, title, content string) (string, error)
	searchFn func(ctx context.Context, query string) ([]*model.NotionDatabase, error)
}

func (m *mockNotionWriter) SaveNote(ctx context.Context, databaseID, title, content string) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, databaseID, title, content)
	}
	return "page-1", nil
}

func (m *mockNotionWriter) SearchDatabases(ctx context.Context, query string) ([]*model.NotionDatabase, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

func TestSaveNoteToNotion(t *testing.T) {
	writer := &mockNotionWriter{}
	var gotTitle, gotContent string
	writer.saveFn = func(ctx context.Context, databaseID, title, content string) (string, error) {
		gotTitle = title
		gotContent = content
		return "page-42", nil
	}
	uc, _ := newTestUseCases(usecase.WithNotionWriter(writer))
	ctx := context.Background()

	note, err := uc.AddNote(ctx, "# Meeting summary\nfirst point", "")
	gt.NoError(t, err).Required()

	pageID, err := uc.SaveNoteToNotion(ctx, note.ID, "db-1", "Team Notes")
	gt.NoError(t, err).Required()
	gt.Value(t, pageID).Equal("page-42")

	// The page title is the first content line, heading marker stripped
	gt.Value(t, gotTitle).Equal("Meeting summary")
	gt.Value(t, gotContent).Equal("# Meeting summary\nfirst point")

	recents := uc.RecentNotionDatabases()
	gt.Array(t, recents).Length(1)
	gt.Value(t, recents[0].ID).Equal("db-1")
	gt.Value(t, recents[0].Title).Equal("Team Notes")
}

func TestSaveNoteToNotionUnknownNote(t *testing.T) {
	uc, _ := newTestUseCases(usecase.WithNotionWriter(&mockNotionWriter{}))

	_, err := uc.SaveNoteToNotion(context.Background(), model.NewNoteID(), "db-1", "")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrNoteNotFound)).True()
	gt.Array(t, uc.RecentNotionDatabases()).Length(0)
}

func TestSaveNoteToNotionWithoutToken(t *testing.T) {
	uc, _ := newTestUseCases()
	ctx := context.Background()

	note, err := uc.AddNote(ctx, "a note", "")
	gt.NoError(t, err).Required()

	_, err = uc.SaveNoteToNotion(ctx, note.ID, "db-1", "")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrNotionNotConfigured)).True()
}

func TestSaveNoteToNotionFailureRecordsNothing(t *testing.T) {
	writer := &mockNotionWriter{
		saveFn: func(ctx context.Context, databaseID, title, content string) (string, error) {
			return "", errors.New("notion unavailable")
		},
	}
	uc, _ := newTestUseCases(usecase.WithNotionWriter(writer))
	ctx := context.Background()

	note, err := uc.AddNote(ctx, "a note", "")
	gt.NoError(t, err).Required()

	_, err = uc.SaveNoteToNotion(ctx, note.ID, "db-1", "")
	gt.Error(t, err)
	gt.Array(t, uc.RecentNotionDatabases()).Length(0)
}

func TestRecentDatabasesDedupeAndCap(t *testing.T) {
	uc, _ := newTestUseCases(usecase.WithNotionWriter(&mockNotionWriter{}))
	ctx := context.Background()

	note, err := uc.AddNote(ctx, "a note", "")
	gt.NoError(t, err).Required()

	for i := 0; i < 12; i++ {
		_, err := uc.SaveNoteToNotion(ctx, note.ID, fmt.Sprintf("db-%d", i), "")
		gt.NoError(t, err).Required()
	}
	// Saving to db-5 again moves it to the front without a duplicate
	_, err = uc.SaveNoteToNotion(ctx, note.ID, "db-5", "")
	gt.NoError(t, err).Required()

	recents := uc.RecentNotionDatabases()
	gt.Array(t, recents).Length(10)
	gt.Value(t, recents[0].ID).Equal("db-5")
	seen := map[string]bool{}
	for _, r := range recents {
		gt.Bool(t, seen[r.ID]).False()
		seen[r.ID] = true
	}
}

func TestSearchNotionDatabases(t *testing.T) {
	writer := &mockNotionWriter{
		searchFn: func(ctx context.Context, query string) ([]*model.NotionDatabase, error) {
			gt.Value(t, query).Equal("team")
			return []*model.NotionDatabase{{ID: "db-1", Title: "Team Notes"}}, nil
		},
	}
	uc, _ := newTestUseCases(usecase.WithNotionWriter(writer))

	dbs, err := uc.SearchNotionDatabases(context.Background(), "team")
	gt.NoError(t, err).Required()
	gt.Array(t, dbs).Length(1)
	gt.Value(t, dbs[0].Title).Equal("Team Notes")
}

func TestRecentDatabasesSurvivePersist(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	uc := usecase.New(store,
		usecase.WithInvoker(&mockInvoker{}),
		usecase.WithNotionWriter(&mockNotionWriter{}),
	)
	note, err := uc.AddNote(ctx, "a note", "")
	gt.NoError(t, err).Required()
	_, err = uc.SaveNoteToNotion(ctx, note.ID, "db-1", "Team Notes")
	gt.NoError(t, err).Required()
	gt.NoError(t, uc.Persist(ctx))

	restored := usecase.New(store, usecase.WithInvoker(&mockInvoker{}))
	restored.Init(ctx)

	recents := restored.RecentNotionDatabases()
	gt.Array(t, recents).Length(1)
	gt.Value(t, recents[0].Title).Equal("Team Notes")
}

func TestSearchNotionDatabasesWithoutToken(t *testing.T) {
	uc, _ := newTestUseCases()

	_, err := uc.SearchNotionDatabases(context.Background(), "team")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrNotionNotConfigured)).True()
}
