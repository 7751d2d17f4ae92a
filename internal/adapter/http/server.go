package adapthttp

import (
	"net/http"

	"weightmelters/internal/app"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries   *app.EntryService
	validator *app.EntryValidator
	auth      *app.AuthService
	oidc      OIDCConfig
	webDir    string
}

// New creates a Server wired to the given application services.
func New(es *app.EntryService, v *app.EntryValidator, as *app.AuthService, oidc OIDCConfig, webDir string) *Server {
	return &Server{entries: es, validator: v, auth: as, oidc: oidc, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.HandleFunc("/config", s.handleConfig)

	protected := http.NewServeMux()
	protected.HandleFunc("/auth/me", s.handleMe)
	protected.HandleFunc("/weights", s.handleWeights)
	protected.HandleFunc("/weights/form", s.handleWeightForm)
	protected.HandleFunc("/weights/entries", s.handleWeightEntries)
	protected.HandleFunc("/weights/", s.handleWeightByID)
	protected.HandleFunc("/charts/weight", s.handleChartWeight)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return withNoCache(s.loggingMiddleware(metricsMiddleware(root)))
}
