package usecase

import (
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/notework-lab/notework/pkg/domain/model"
)

// ExportMarkdown renders the filtered note collection as a markdown
// document, one section per note in creation order.
func (uc *UseCases) ExportMarkdown(criteria NoteFilter) string {
	notes := uc.FilterNotes(criteria)

	uc.mu.Lock()
	sources := make(map[model.SourceID]string, len(uc.session.Sources))
	for _, src := range uc.session.Sources {
		sources[src.ID] = src.Title
	}
	uc.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("# Notes\n\n")

	for _, note := range notes {
		fmt.Fprintf(&sb, "## %s", capitalize(note.Kind.String()))
		if note.IsImportant {
			sb.WriteString(" ★")
		}
		sb.WriteString("\n\n")

		fmt.Fprintf(&sb, "- Date: %s\n", note.Timestamp.Format("2006-01-02 15:04"))
		if title, ok := sources[note.SourceID]; ok && note.SourceID != "" {
			fmt.Fprintf(&sb, "- Source: %s\n", title)
		}
		if note.AIModel != "" {
			fmt.Fprintf(&sb, "- Model: %s\n", note.AIModel.Label())
		}
		if len(note.Tags) > 0 {
			fmt.Fprintf(&sb, "- Tags: %s\n", strings.Join(note.Tags, ", "))
		}
		sb.WriteString("\n")
		sb.WriteString(note.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// ExportNotes writes the filtered note collection to a markdown file.
func (uc *UseCases) ExportNotes(path string, criteria NoteFilter) error {
	doc := uc.ExportMarkdown(criteria)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return goerr.Wrap(err, "failed to write export file", goerr.V("path", path))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
