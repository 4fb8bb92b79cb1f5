package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/domain/types"
	"github.com/notework-lab/notework/pkg/usecase"
	"github.com/notework-lab/notework/pkg/utils/safe"
)

func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"sources":        s.uc.Sources(),
		"activeSourceId": s.uc.ActiveSourceID(),
	})
}

func (s *Server) addSource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Content     string `json:"content"`
		IsFile      bool   `json:"isFile"`
		FileType    string `json:"fileType"`
		FilePath    string `json:"filePath"`
		FileBlobRef string `json:"fileBlobRef"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	src, err := s.uc.AddSource(r.Context(), model.SourceDescriptor{
		URL:         req.URL,
		Title:       req.Title,
		Content:     req.Content,
		IsFile:      req.IsFile,
		FileType:    req.FileType,
		FilePath:    req.FilePath,
		FileBlobRef: req.FileBlobRef,
	})
	if err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, src)
}

func (s *Server) loadURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	src, err := s.uc.LoadURL(r.Context(), req.URL, req.Title)
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, src)
}

func (s *Server) removeSource(w http.ResponseWriter, r *http.Request) {
	id := model.SourceID(chi.URLParam(r, "sourceID"))
	if err := s.uc.RemoveSource(r.Context(), id); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"activeSourceId": s.uc.ActiveSourceID(),
	})
}

func (s *Server) activateSource(w http.ResponseWriter, r *http.Request) {
	id := model.SourceID(chi.URLParam(r, "sourceID"))
	if err := s.uc.SetActiveSource(r.Context(), id); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateSourceContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	id := model.SourceID(chi.URLParam(r, "sourceID"))
	if err := s.uc.UpdateSourceContent(r.Context(), id, req.Content); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// noteFilterFromQuery builds a filter from query params: kind, important,
// range, tags (repeatable), and q for substring search.
func noteFilterFromQuery(r *http.Request) usecase.NoteFilter {
	q := r.URL.Query()

	filter := usecase.NoteFilter{
		Kind:      types.NoteKind(q.Get("kind")),
		DateRange: types.DateRange(q.Get("range")).Normalize(),
		Tags:      q["tags"],
		Search:    q.Get("q"),
	}
	if important, err := strconv.ParseBool(q.Get("important")); err == nil {
		filter.ImportantOnly = important
	}
	return filter
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"notes": s.uc.FilterNotes(noteFilterFromQuery(r)),
	})
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string         `json:"content"`
		SourceID model.SourceID `json:"sourceId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	note, err := s.uc.AddNote(r.Context(), req.Content, req.SourceID)
	if err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) editNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	id := model.NoteID(chi.URLParam(r, "noteID"))
	if err := s.uc.EditNote(r.Context(), id, req.Content); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := model.NoteID(chi.URLParam(r, "noteID"))
	if err := s.uc.DeleteNote(r.Context(), id); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleImportant(w http.ResponseWriter, r *http.Request) {
	id := model.NoteID(chi.URLParam(r, "noteID"))
	if err := s.uc.ToggleImportant(r.Context(), id); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	id := model.NoteID(chi.URLParam(r, "noteID"))
	if err := s.uc.AddTag(r.Context(), id, req.Tag); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeTag(w http.ResponseWriter, r *http.Request) {
	id := model.NoteID(chi.URLParam(r, "noteID"))
	tag := chi.URLParam(r, "tag")
	if err := s.uc.RemoveTag(r.Context(), id, tag); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"tags": s.uc.AllTags(),
	})
}

func (s *Server) listVersions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"versions": s.uc.Versions(),
	})
}

func (s *Server) noteVersions(w http.ResponseWriter, r *http.Request) {
	id := model.NoteID(chi.URLParam(r, "noteID"))
	respondJSON(w, http.StatusOK, map[string]any{
		"versions": s.uc.NoteVersions(id),
	})
}

func (s *Server) restoreVersion(w http.ResponseWriter, r *http.Request) {
	id := model.VersionID(chi.URLParam(r, "versionID"))
	if err := s.uc.RestoreVersion(r.Context(), id); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) conversationHistory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"history": s.uc.History(),
	})
}

func (s *Server) followUpSuggestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"suggestions": s.uc.FollowUpSuggestions(),
	})
}

func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	note, err := s.uc.Translate(r.Context())
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	note, err := s.uc.Summarize(r.Context())
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) templateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID model.TemplateID `json:"templateId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	note, err := s.uc.TemplateAnalysis(r.Context(), req.TemplateID)
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) askQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question  string        `json:"question"`
		Model     types.ModelID `json:"model"`
		FollowUp  bool          `json:"followUp"`
		Selection string        `json:"selection"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	note, err := s.uc.AskQuestion(r.Context(), usecase.AskQuestionInput{
		Question:  req.Question,
		Model:     req.Model,
		FollowUp:  req.FollowUp,
		Selection: req.Selection,
	})
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"note":        note,
		"suggestions": s.uc.FollowUpSuggestions(),
	})
}

func (s *Server) compareModels(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Content  string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	results, err := s.uc.CompareModels(r.Context(), req.Question, req.Content)
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

func (s *Server) compareResults(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"results": s.uc.CompareResults(),
	})
}

func (s *Server) compareSources(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model types.ModelID `json:"model"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	note, err := s.uc.CompareSources(r.Context(), req.Model)
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) saveToNotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NoteID       model.NoteID `json:"noteId"`
		DatabaseID   string       `json:"databaseId"`
		DatabaseName string       `json:"databaseName"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	pageID, err := s.uc.SaveNoteToNotion(r.Context(), req.NoteID, req.DatabaseID, req.DatabaseName)
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"pageId": pageID})
}

func (s *Server) searchNotionDatabases(w http.ResponseWriter, r *http.Request) {
	dbs, err := s.uc.SearchNotionDatabases(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, r, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, dbs)
}

func (s *Server) recentNotionDatabases(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.uc.RecentNotionDatabases())
}

func (s *Server) usage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"last":      s.uc.LastUsage(),
		"totalCost": s.uc.TotalCost(),
	})
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	type modelInfo struct {
		ID         types.ModelID `json:"id"`
		Label      string        `json:"label"`
		Configured bool          `json:"configured"`
	}

	var out []modelInfo
	for _, id := range types.AllModelIDs() {
		out = append(out, modelInfo{
			ID:         id,
			Label:      id.Label(),
			Configured: s.uc.ModelConfigured(id),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"models": out,
	})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"templates": s.uc.Templates(),
	})
}

func (s *Server) actionStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": s.uc.Status(),
	})
}

func (s *Server) exportNotes(w http.ResponseWriter, r *http.Request) {
	out := s.uc.ExportMarkdown(noteFilterFromQuery(r))
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte(out))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.uc.Session())
}

func (s *Server) flushSession(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Persist(r.Context()); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"projects": s.uc.ListProjects(),
	})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err, http.StatusBadRequest)
		return
	}

	project, err := s.uc.CreateProject(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (s *Server) switchProject(w http.ResponseWriter, r *http.Request) {
	id := model.ProjectID(chi.URLParam(r, "projectID"))
	if err := s.uc.SwitchProject(r.Context(), id); err != nil {
		handleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
