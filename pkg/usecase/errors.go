package usecase

import "errors"

// Sentinel errors for the engine layer
var (
	// Validation errors: reported inline, never retried automatically
	ErrEmptyContent        = errors.New("source content is empty")
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrNoActiveSource      = errors.New("no active source")
	ErrUnknownSource       = errors.New("unknown source")
	ErrNoContent           = errors.New("source has no resolvable content")
	ErrNoContext           = errors.New("no note exists for the active source")
	ErrInsufficientSources = errors.New("source comparison needs at least two sources")
	ErrNoteNotFound        = errors.New("note not found")
	ErrVersionNotFound     = errors.New("version not found")
	ErrInvalidModel        = errors.New("unknown model")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrProjectNotFound     = errors.New("project not found")

	// Credential errors: reported with the specific model name
	ErrMissingCredential = errors.New("model credential is not configured")

	// ErrNotionNotConfigured is returned when a Notion operation runs
	// without an integration token
	ErrNotionNotConfigured = errors.New("Notion integration is not configured")
)

// Context keys for error values
const (
	SourceIDKey   = "source_id"
	NoteIDKey     = "note_id"
	VersionIDKey  = "version_id"
	TemplateIDKey = "template_id"
	ProjectIDKey  = "project_id"
	ModelKey      = "model"
)
