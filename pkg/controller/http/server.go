package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/notework-lab/notework/pkg/usecase"
	"github.com/notework-lab/notework/pkg/utils/logging"
	"github.com/notework-lab/notework/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/sources", func(r chi.Router) {
			r.Get("/", s.listSources)
			r.Post("/", s.addSource)
			r.Post("/url", s.loadURL)
			r.Delete("/{sourceID}", s.removeSource)
			r.Post("/{sourceID}/activate", s.activateSource)
			r.Put("/{sourceID}/content", s.updateSourceContent)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.listNotes)
			r.Post("/", s.addNote)
			r.Put("/{noteID}", s.editNote)
			r.Delete("/{noteID}", s.deleteNote)
			r.Post("/{noteID}/important", s.toggleImportant)
			r.Post("/{noteID}/tags", s.addTag)
			r.Delete("/{noteID}/tags/{tag}", s.removeTag)
			r.Get("/{noteID}/versions", s.noteVersions)
		})

		r.Get("/tags", s.listTags)

		r.Route("/versions", func(r chi.Router) {
			r.Get("/", s.listVersions)
			r.Post("/{versionID}/restore", s.restoreVersion)
		})

		r.Route("/conversation", func(r chi.Router) {
			r.Get("/", s.conversationHistory)
			r.Get("/suggestions", s.followUpSuggestions)
		})

		r.Route("/actions", func(r chi.Router) {
			r.Post("/translate", s.translate)
			r.Post("/summarize", s.summarize)
			r.Post("/template", s.templateAnalysis)
			r.Post("/ask", s.askQuestion)
			r.Post("/compare-models", s.compareModels)
			r.Get("/compare-models", s.compareResults)
			r.Post("/compare-sources", s.compareSources)
			r.Post("/save-to-notion", s.saveToNotion)
		})

		r.Route("/notion/databases", func(r chi.Router) {
			r.Get("/", s.searchNotionDatabases)
			r.Get("/recent", s.recentNotionDatabases)
		})

		r.Get("/usage", s.usage)
		r.Get("/models", s.listModels)
		r.Get("/templates", s.listTemplates)
		r.Get("/status", s.actionStatus)
		r.Get("/export", s.exportNotes)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.session)
			r.Post("/flush", s.flushSession)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Post("/{projectID}/switch", s.switchProject)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
