package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// SourceID is a UUID-based identifier for Source
type SourceID string

// NewSourceID generates a new UUID v4 SourceID
func NewSourceID() SourceID {
	return SourceID(uuid.New().String())
}

// colorPalette is the fixed set of accent colors cycled over loaded sources.
// A source keeps its color for its whole lifetime; the palette index is the
// source count at creation time, not the position in the current list.
var colorPalette = []string{
	"#3B82F6", // blue
	"#10B981", // emerald
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}

// ColorForIndex returns the palette color for the n-th loaded source
func ColorForIndex(n int) string {
	if n < 0 {
		n = 0
	}
	return colorPalette[n%len(colorPalette)]
}

// PaletteSize returns the number of colors in the source palette
func PaletteSize() int {
	return len(colorPalette)
}

// Source represents one unit of loadable content: a web or Notion page,
// pasted text, or an uploaded file
type Source struct {
	ID          SourceID         `json:"id"`
	URL         string           `json:"url,omitempty"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Color       string           `json:"color"`
	SourceType  types.SourceType `json:"sourceType"`
	LoadedAt    time.Time        `json:"loadedAt"`
	IsFile      bool             `json:"isFile"`
	FileType    string           `json:"fileType,omitempty"`
	FilePath    string           `json:"filePath,omitempty"`
	FileBlobRef string           `json:"fileBlobRef,omitempty"`
}

// Clone returns a deep copy of the source
func (s *Source) Clone() *Source {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

// SourceDescriptor is the input for loading a new source
type SourceDescriptor struct {
	URL         string
	Title       string
	Content     string
	IsFile      bool
	FileType    string
	FilePath    string
	FileBlobRef string
}
