package interfaces

import (
	"context"

	"github.com/notework-lab/notework/pkg/domain/model"
)

// URLResolver resolves a URL to analyzable text. Implementations exist for
// generic web pages and for Notion pages (which require a configured token).
type URLResolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// NotionWriter saves note content into a Notion database and finds
// databases to save into. Requires a configured integration token.
type NotionWriter interface {
	// SaveNote creates a page titled title with the content rendered as
	// blocks under the database, returning the created page ID
	SaveNote(ctx context.Context, databaseID, title, content string) (string, error)

	// SearchDatabases returns databases whose title matches the query
	SearchDatabases(ctx context.Context, query string) ([]*model.NotionDatabase, error)
}

// FileExtractor resolves a file blob to text. Extraction results are cached
// back onto the source by the engine so extraction runs at most once per source.
type FileExtractor interface {
	Extract(ctx context.Context, blob []byte, fileType string) (string, error)
}
