package adapthttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"weightmelters/internal/app"
	"weightmelters/internal/domain"
)

// handleWeights accepts the log form submission and upserts the caller's
// entry for the submitted day. The response carries the refreshed form
// fragment data plus HX-Trigger so the client refetches the list and chart.
func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	validated, err := s.validator.Validate(r.PostFormValue("date"), r.PostFormValue("weight"))
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr.Fields})
			return
		}
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	user := userFromContext(r)
	entry, err := s.entries.Log(r.Context(), user.ID, validated)
	if err != nil {
		slog.Error("log weight", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setRefreshTriggers(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"form": app.FormState(s.validator.Today(), entry, true),
	})
}

// handleWeightForm returns the log form state, prefilled with today's entry
// when one exists.
func (s *Server) handleWeightForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFromContext(r)
	today := s.validator.Today()
	existing, err := s.entries.EntryForDay(r.Context(), user.ID, today)
	if err != nil {
		slog.Error("load form entry", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"form": app.FormState(today, existing, false),
	})
}

func (s *Server) handleWeightEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFromContext(r)
	limit := intQuery(r, "limit", app.DefaultListLimit)
	entries, err := s.entries.ListFor(r.Context(), user.ID, limit)
	if err != nil {
		slog.Error("list entries", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": app.BuildEntryList(entries)})
}

// handleWeightByID handles DELETE /weights/{id}. Ownership failures answer
// with a generic 403 that leaks nothing about the row.
func (s *Server) handleWeightByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/weights/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	user := userFromContext(r)
	switch err := s.entries.Delete(r.Context(), user.ID, id); {
	case errors.Is(err, domain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not allowed")
	case err != nil:
		slog.Error("delete entry", "user_id", user.ID, "entry_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		setRefreshTriggers(w)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
