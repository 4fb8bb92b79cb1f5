package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/notework-lab/notework/pkg/usecase"
)

func TestExportMarkdown(t *testing.T) {
	uc, _ := newTestUseCases()
	ctx := context.Background()

	src, err := addTextSource(uc, "The Document", "body text")
	gt.NoError(t, err).Required()

	note, err := uc.AddNote(ctx, "my observation", src.ID)
	gt.NoError(t, err).Required()
	gt.NoError(t, uc.AddTag(ctx, note.ID, "review"))
	gt.NoError(t, uc.ToggleImportant(ctx, note.ID))

	_, err = uc.Summarize(ctx)
	gt.NoError(t, err).Required()

	out := uc.ExportMarkdown(usecase.NoteFilter{})
	gt.String(t, out).Contains("# Notes")
	gt.String(t, out).Contains("## Text ★")
	gt.String(t, out).Contains("## Summary")
	gt.String(t, out).Contains("my observation")
	gt.String(t, out).Contains("Source: The Document")
	gt.String(t, out).Contains("Tags: review")
	gt.String(t, out).Contains("Model: Claude")
}

func TestExportMarkdownHonorsFilter(t *testing.T) {
	uc, _ := newTestUseCases()
	ctx := context.Background()

	_, err := uc.AddNote(ctx, "keep me", "")
	gt.NoError(t, err).Required()
	_, err = uc.AddNote(ctx, "drop me", "")
	gt.NoError(t, err).Required()

	out := uc.ExportMarkdown(usecase.NoteFilter{Search: "keep"})
	gt.String(t, out).Contains("keep me")
	gt.Bool(t, strings.Contains(out, "drop me")).False()
}

func TestExportNotesWritesFile(t *testing.T) {
	uc, _ := newTestUseCases()
	ctx := context.Background()

	_, err := uc.AddNote(ctx, "written to disk", "")
	gt.NoError(t, err).Required()

	path := filepath.Join(t.TempDir(), "notes.md")
	gt.NoError(t, uc.ExportNotes(path, usecase.NoteFilter{}))

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Contains("written to disk")
}
