package adapthttp

import (
	"log/slog"
	"net/http"

	"weightmelters/internal/app"
)

// handleChartWeight returns one date-ascending series per user with at least
// one entry, for the shared chart fragment.
func (s *Server) handleChartWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	entries, err := s.entries.AllEntries(r.Context())
	if err != nil {
		slog.Error("load chart entries", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"series": app.BuildChart(entries)})
}
