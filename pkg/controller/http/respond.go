package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/notework-lab/notework/pkg/usecase"
	"github.com/notework-lab/notework/pkg/utils/errutil"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	json.NewEncoder(w).Encode(body) //nolint:errcheck // header already committed
}

// handleError maps engine errors onto HTTP statuses: validation errors are
// 400, missing credentials 412, unknown entities 404, and anything else
// (provider and fetch failures included) the given fallback.
func handleError(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	status := fallback

	switch {
	case errors.Is(err, usecase.ErrEmptyContent),
		errors.Is(err, usecase.ErrEmptyQuestion),
		errors.Is(err, usecase.ErrNoActiveSource),
		errors.Is(err, usecase.ErrNoContent),
		errors.Is(err, usecase.ErrNoContext),
		errors.Is(err, usecase.ErrInvalidModel),
		errors.Is(err, model.ErrInvalidNotionID),
		errors.Is(err, usecase.ErrInsufficientSources):
		status = http.StatusBadRequest

	case errors.Is(err, usecase.ErrMissingCredential),
		errors.Is(err, usecase.ErrNotionNotConfigured):
		status = http.StatusPreconditionFailed

	case errors.Is(err, usecase.ErrUnknownSource),
		errors.Is(err, usecase.ErrNoteNotFound),
		errors.Is(err, usecase.ErrVersionNotFound),
		errors.Is(err, usecase.ErrTemplateNotFound),
		errors.Is(err, usecase.ErrProjectNotFound):
		status = http.StatusNotFound
	}

	errutil.HandleHTTP(r.Context(), w, err, status)
}

func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}
