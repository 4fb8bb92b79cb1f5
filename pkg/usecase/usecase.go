package usecase

import (
	"sync"
	"time"

	"github.com/notework-lab/notework/pkg/domain/interfaces"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
)

// Store keys for durable state
const (
	keySession         = "session"
	keyVersions        = "versions"
	keyURLHistory      = "url_history"
	keyNotionDatabases = "notion_databases"
	keyProjects        = "projects"
	keyCredentials     = "credentials"
)

// UseCases is the source/note/conversation engine. It owns all mutable
// working state; every mutation is an atomic, synchronous update under a
// single mutex, so callers never observe interleaved partial writes. AI
// invocations and content resolution run outside the lock: state is read
// before the call and written back after it resolves.
type UseCases struct {
	mu sync.Mutex

	store        interfaces.Store
	web          interfaces.URLResolver
	notion       interfaces.URLResolver
	notionWriter interfaces.NotionWriter
	extractor    interfaces.FileExtractor
	invoker      interfaces.ModelInvoker
	templates    []*model.Template
	now          func() time.Time

	session         *model.Session
	activeSourceID  model.SourceID
	versions        *model.VersionRing
	urlHistory      []string
	recentDatabases []*model.NotionDatabase
	projects        []*model.Project

	lastUsage        *model.Usage
	lastConversation *model.ConversationEntry
	compare          map[types.ModelID]*CompareResult
	status           types.ActionStatus
}

type Option func(*UseCases)

// WithWebResolver sets the resolver for generic URLs
func WithWebResolver(r interfaces.URLResolver) Option {
	return func(uc *UseCases) {
		uc.web = r
	}
}

// WithNotionResolver sets the resolver for Notion URLs
func WithNotionResolver(r interfaces.URLResolver) Option {
	return func(uc *UseCases) {
		uc.notion = r
	}
}

// WithNotionWriter sets the collaborator that saves notes into Notion
func WithNotionWriter(w interfaces.NotionWriter) Option {
	return func(uc *UseCases) {
		uc.notionWriter = w
	}
}

// WithExtractor sets the file text extraction collaborator
func WithExtractor(x interfaces.FileExtractor) Option {
	return func(uc *UseCases) {
		uc.extractor = x
	}
}

// WithInvoker sets the AI model collaborator
func WithInvoker(inv interfaces.ModelInvoker) Option {
	return func(uc *UseCases) {
		uc.invoker = inv
	}
}

// WithTemplates sets the analysis template presets
func WithTemplates(templates []*model.Template) Option {
	return func(uc *UseCases) {
		uc.templates = templates
	}
}

// WithNow overrides the clock, for testing
func WithNow(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(store interfaces.Store, opts ...Option) *UseCases {
	uc := &UseCases{
		store:    store,
		now:      time.Now,
		session:  model.NewSession(""),
		versions: model.NewVersionRing(nil),
		compare:  map[types.ModelID]*CompareResult{},
		status:   types.ActionStatusIdle,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Status returns the current action pipeline phase
func (uc *UseCases) Status() types.ActionStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.status
}

// Templates returns the configured analysis templates
func (uc *UseCases) Templates() []*model.Template {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]*model.Template, len(uc.templates))
	copy(out, uc.templates)
	return out
}

// ModelConfigured reports whether a model has a usable credential
func (uc *UseCases) ModelConfigured(m types.ModelID) bool {
	if uc.invoker == nil {
		return false
	}
	return uc.invoker.Configured(m)
}

func (uc *UseCases) setStatus(s types.ActionStatus) {
	uc.mu.Lock()
	uc.status = s
	uc.mu.Unlock()
}

// touch refreshes the session activity timestamp. Callers must hold uc.mu.
func (uc *UseCases) touch() {
	uc.session.LastActivity = uc.now()
}
