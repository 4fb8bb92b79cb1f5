package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
	"github.com/notework-lab/notework/pkg/utils/logging"
)

// Snapshot materializes the full working state into one session value with
// a fresh snapshot id and a refreshed activity timestamp.
func (uc *UseCases) Snapshot() *model.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotLocked()
}

func (uc *UseCases) snapshotLocked() *model.Session {
	snap := uc.session.Clone()
	snap.ID = model.NewSessionID()
	snap.LastActivity = uc.now()
	return snap
}

// Restore replaces all live state with a saved session. The first source
// becomes active, or none when the session has no sources.
func (uc *UseCases) Restore(session *model.Session) {
	if session == nil {
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.session = session.Clone()
	if len(uc.session.Sources) > 0 {
		uc.activeSourceID = uc.session.Sources[0].ID
	} else {
		uc.activeSourceID = ""
	}
	uc.lastUsage = nil
	uc.lastConversation = nil
	if n := len(uc.session.History); n > 0 {
		uc.lastConversation = uc.session.History[n-1]
	}
	uc.compare = map[types.ModelID]*CompareResult{}
	uc.status = types.ActionStatusIdle
}

// Init loads saved state from the store. Missing or unreadable keys start
// fresh; loading never fails the caller.
func (uc *UseCases) Init(ctx context.Context) {
	logger := logging.From(ctx)

	var sess model.Session
	if err := uc.store.Get(ctx, keySession, &sess); err != nil {
		logger.Debug("no saved session, starting fresh", "error", err.Error())
	} else {
		uc.Restore(&sess)
	}

	var versions []*model.NoteVersion
	if err := uc.store.Get(ctx, keyVersions, &versions); err == nil {
		uc.mu.Lock()
		uc.versions = model.NewVersionRing(versions)
		uc.mu.Unlock()
	}

	var history []string
	if err := uc.store.Get(ctx, keyURLHistory, &history); err == nil {
		uc.mu.Lock()
		uc.urlHistory = history
		uc.mu.Unlock()
	}

	var recents []*model.NotionDatabase
	if err := uc.store.Get(ctx, keyNotionDatabases, &recents); err == nil {
		uc.mu.Lock()
		uc.recentDatabases = recents
		uc.mu.Unlock()
	}

	var projects []*model.Project
	if err := uc.store.Get(ctx, keyProjects, &projects); err == nil {
		uc.mu.Lock()
		uc.projects = projects
		uc.mu.Unlock()
	}
}

// Persist snapshots the working state and writes it to the store along with
// the version ring, URL history, and credential-present flags. Callers log
// failures; persistence never blocks the interactive flow.
func (uc *UseCases) Persist(ctx context.Context) error {
	uc.mu.Lock()
	snap := uc.snapshotLocked()
	versions := uc.versions.List()
	history := make([]string, len(uc.urlHistory))
	copy(history, uc.urlHistory)
	recents := make([]*model.NotionDatabase, len(uc.recentDatabases))
	copy(recents, uc.recentDatabases)
	uc.mu.Unlock()

	if err := uc.store.Put(ctx, keySession, snap); err != nil {
		return goerr.Wrap(err, "failed to persist session")
	}
	if err := uc.store.Put(ctx, keyVersions, versions); err != nil {
		return goerr.Wrap(err, "failed to persist versions")
	}
	if err := uc.store.Put(ctx, keyURLHistory, history); err != nil {
		return goerr.Wrap(err, "failed to persist url history")
	}
	if err := uc.store.Put(ctx, keyNotionDatabases, recents); err != nil {
		return goerr.Wrap(err, "failed to persist recent databases")
	}

	if uc.invoker != nil {
		flags := map[types.ModelID]bool{}
		for _, m := range types.AllModelIDs() {
			flags[m] = uc.invoker.Configured(m)
		}
		if err := uc.store.Put(ctx, keyCredentials, flags); err != nil {
			return goerr.Wrap(err, "failed to persist credential flags")
		}
	}

	return nil
}

// Session returns a copy of the live session
func (uc *UseCases) Session() *model.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.Clone()
}

// CreateProject registers a new project and resets the live session to an
// empty working set for it.
func (uc *UseCases) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrEmptyContent, "project name is empty")
	}

	uc.mu.Lock()
	now := uc.now()
	project := &model.Project{
		ID:        model.NewProjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	uc.projects = append(uc.projects, project)
	projects := make([]*model.Project, len(uc.projects))
	copy(projects, uc.projects)
	uc.resetSessionLocked(project.ID)
	uc.mu.Unlock()

	if err := uc.store.Put(ctx, keyProjects, projects); err != nil {
		logging.From(ctx).Warn("failed to persist projects", "error", err.Error())
	}

	copied := *project
	return &copied, nil
}

// SwitchProject makes another project current. The live working set is
// cleared; sessions are not namespaced per project in storage.
func (uc *UseCases) SwitchProject(ctx context.Context, id model.ProjectID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, p := range uc.projects {
		if p.ID == id {
			p.UpdatedAt = uc.now()
			uc.resetSessionLocked(id)
			return nil
		}
	}
	return goerr.Wrap(ErrProjectNotFound, "cannot switch project", goerr.V(ProjectIDKey, id))
}

// ListProjects returns copies of the known projects
func (uc *UseCases) ListProjects() []*model.Project {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*model.Project, 0, len(uc.projects))
	for _, p := range uc.projects {
		copied := *p
		out = append(out, &copied)
	}
	return out
}

// resetSessionLocked clears sources, notes, conversation history, cost, and
// edit history for a project change. Callers must hold uc.mu.
func (uc *UseCases) resetSessionLocked(projectID model.ProjectID) {
	uc.session = model.NewSession(projectID)
	uc.activeSourceID = ""
	uc.versions = model.NewVersionRing(nil)
	uc.lastUsage = nil
	uc.lastConversation = nil
	uc.compare = map[types.ModelID]*CompareResult{}
	uc.status = types.ActionStatusIdle
}
