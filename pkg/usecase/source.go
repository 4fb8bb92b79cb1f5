package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
	"github.com/notework-lab/notework/pkg/utils/async"
)

// AddSource registers a new source, assigns its palette color from the
// current source count, and makes it active. Non-file sources must carry
// non-empty content.
func (uc *UseCases) AddSource(ctx context.Context, desc model.SourceDescriptor) (*model.Source, error) {
	if !desc.IsFile && strings.TrimSpace(desc.Content) == "" {
		return nil, goerr.Wrap(ErrEmptyContent, "cannot add source", goerr.V("title", desc.Title))
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	src := &model.Source{
		ID:          model.NewSourceID(),
		URL:         desc.URL,
		Title:       desc.Title,
		Content:     desc.Content,
		Color:       model.ColorForIndex(len(uc.session.Sources)),
		SourceType:  sourceTypeOf(desc),
		LoadedAt:    uc.now(),
		IsFile:      desc.IsFile,
		FileType:    desc.FileType,
		FilePath:    desc.FilePath,
		FileBlobRef: desc.FileBlobRef,
	}

	uc.session.Sources = append(uc.session.Sources, src)
	uc.activeSourceID = src.ID
	uc.touch()

	return src.Clone(), nil
}

// LoadURL resolves a URL to text and adds it as a source. Notion URLs go
// through the Notion resolver and require a configured connection; all other
// URLs go through the generic web resolver. The URL is appended to the
// load history on success.
func (uc *UseCases) LoadURL(ctx context.Context, url, title string) (*model.Source, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, goerr.Wrap(ErrEmptyContent, "empty URL")
	}

	resolver := uc.web
	if model.IsNotionURL(url) {
		resolver = uc.notion
	}
	if resolver == nil {
		return nil, goerr.New("no resolver configured for URL", goerr.V("url", url))
	}

	content, err := resolver.Resolve(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve URL", goerr.V("url", url))
	}

	if title == "" {
		title = url
	}

	src, err := uc.AddSource(ctx, model.SourceDescriptor{
		URL:     url,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.urlHistory = pushURLHistory(uc.urlHistory, url)
	history := make([]string, len(uc.urlHistory))
	copy(history, uc.urlHistory)
	uc.mu.Unlock()

	// History is persisted right away; a failed write is logged and the
	// next autosave retries it.
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.store.Put(ctx, keyURLHistory, history)
	})

	return src, nil
}

// urlHistoryCap bounds the recent-URL list
const urlHistoryCap = 50

// pushURLHistory prepends a URL to the history, deduplicating and keeping
// the most recent entries first.
func pushURLHistory(history []string, url string) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, url)
	for _, h := range history {
		if h != url {
			out = append(out, h)
		}
	}
	if len(out) > urlHistoryCap {
		out = out[:urlHistoryCap]
	}
	return out
}

// RemoveSource deletes a source by id. When the active source is removed,
// the first remaining source becomes active, or none if the list is empty.
// Notes referencing the source keep their back-reference and survive.
func (uc *UseCases) RemoveSource(ctx context.Context, id model.SourceID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := -1
	for i, src := range uc.session.Sources {
		if src.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return goerr.Wrap(ErrUnknownSource, "cannot remove source", goerr.V(SourceIDKey, id))
	}

	uc.session.Sources = append(uc.session.Sources[:idx], uc.session.Sources[idx+1:]...)

	if uc.activeSourceID == id {
		if len(uc.session.Sources) > 0 {
			uc.activeSourceID = uc.session.Sources[0].ID
		} else {
			uc.activeSourceID = ""
		}
	}
	uc.touch()

	return nil
}

// SetActiveSource changes the active-selection pointer
func (uc *UseCases) SetActiveSource(ctx context.Context, id model.SourceID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.findSource(id) == nil {
		return goerr.Wrap(ErrUnknownSource, "cannot activate source", goerr.V(SourceIDKey, id))
	}
	uc.activeSourceID = id
	uc.touch()

	return nil
}

// ActiveSource returns a copy of the active source, or nil when none is set
func (uc *UseCases) ActiveSource() *model.Source {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.findSource(uc.activeSourceID).Clone()
}

// ActiveSourceID returns the active source id, empty when none is set
func (uc *UseCases) ActiveSourceID() model.SourceID {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.activeSourceID
}

// Sources returns copies of all loaded sources in load order
func (uc *UseCases) Sources() []*model.Source {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*model.Source, 0, len(uc.session.Sources))
	for _, src := range uc.session.Sources {
		out = append(out, src.Clone())
	}
	return out
}

// UpdateSourceContent replaces a source's content by manual edit
func (uc *UseCases) UpdateSourceContent(ctx context.Context, id model.SourceID, content string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	src := uc.findSource(id)
	if src == nil {
		return goerr.Wrap(ErrUnknownSource, "cannot update source", goerr.V(SourceIDKey, id))
	}
	src.Content = content
	uc.touch()

	return nil
}

// URLHistory returns recently loaded URLs, most recent first
func (uc *UseCases) URLHistory() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]string, len(uc.urlHistory))
	copy(out, uc.urlHistory)
	return out
}

// findSource returns the live source with the given id. Callers must hold
// uc.mu; the returned pointer must not escape the lock.
func (uc *UseCases) findSource(id model.SourceID) *model.Source {
	if id == "" {
		return nil
	}
	for _, src := range uc.session.Sources {
		if src.ID == id {
			return src
		}
	}
	return nil
}

// resolveContent produces analyzable text for a source. Cached content is
// returned verbatim; file sources with a blob reference are extracted once
// and the result is written back so extraction never repeats. Extraction
// failures leave the source untouched.
func (uc *UseCases) resolveContent(ctx context.Context, id model.SourceID) (string, error) {
	uc.mu.Lock()
	src := uc.findSource(id)
	if src == nil {
		uc.mu.Unlock()
		return "", goerr.Wrap(ErrUnknownSource, "cannot resolve content", goerr.V(SourceIDKey, id))
	}
	content := src.Content
	isFile := src.IsFile
	blob := src.FileBlobRef
	fileType := src.FileType
	uc.mu.Unlock()

	if content != "" {
		return content, nil
	}

	if isFile && blob != "" {
		if uc.extractor == nil {
			return "", goerr.New("no file extractor configured")
		}
		text, err := uc.extractor.Extract(ctx, []byte(blob), fileType)
		if err != nil {
			return "", goerr.Wrap(err, "failed to extract file text",
				goerr.V(SourceIDKey, id), goerr.V("file_type", fileType))
		}

		uc.mu.Lock()
		if src := uc.findSource(id); src != nil {
			src.Content = text
		}
		uc.mu.Unlock()

		return text, nil
	}

	return "", goerr.Wrap(ErrNoContent, "source is not resolvable", goerr.V(SourceIDKey, id))
}

func sourceTypeOf(desc model.SourceDescriptor) types.SourceType {
	switch {
	case desc.IsFile:
		return types.SourceTypeFile
	case model.IsNotionURL(desc.URL):
		return types.SourceTypeNotion
	case desc.URL != "":
		return types.SourceTypeWeb
	default:
		return types.SourceTypeText
	}
}
