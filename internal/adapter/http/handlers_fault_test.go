package adapthttp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weightmelters/internal/app"
	"weightmelters/internal/domain"
)

var errFault = errors.New("pq: connection reset by peer")

type faultingEntryRepo struct{}

func (faultingEntryRepo) Upsert(_ context.Context, _ int64, _ string, _ float64) (*domain.WeightEntry, error) {
	return nil, errFault
}
func (faultingEntryRepo) GetByID(_ context.Context, _ int64) (*domain.WeightEntry, error) {
	return nil, errFault
}
func (faultingEntryRepo) Delete(_ context.Context, _ int64) error { return errFault }
func (faultingEntryRepo) ForDay(_ context.Context, _ int64, _ string) (*domain.WeightEntry, error) {
	return nil, errFault
}
func (faultingEntryRepo) ListForUser(_ context.Context, _ int64, _ int) ([]domain.WeightEntry, error) {
	return nil, errFault
}
func (faultingEntryRepo) ListAllWithOwners(_ context.Context) ([]domain.EntryWithOwner, error) {
	return nil, errFault
}

type faultingUserRepo struct{}

func (faultingUserRepo) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, errFault
}
func (faultingUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	return nil, errFault
}
func (faultingUserRepo) Create(_ context.Context, _, _, _ string) (*domain.User, error) {
	return nil, errFault
}
func (faultingUserRepo) Count(_ context.Context) (int, error) { return 0, errFault }

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(original) })
	return &buf
}

// Storage faults must answer with a generic body and land in the log with
// their cause; the raw error never reaches the client.
func TestStorageFault_GenericBodyAndLogged(t *testing.T) {
	s := &Server{
		entries:   app.NewEntryService(faultingEntryRepo{}),
		validator: app.NewEntryValidator(app.DefaultLimits()),
	}

	tests := []struct {
		name    string
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{"entries", http.MethodGet, "/weights/entries", s.handleWeightEntries},
		{"chart", http.MethodGet, "/charts/weight", s.handleChartWeight},
		{"form", http.MethodGet, "/weights/form", s.handleWeightForm},
		{"delete", http.MethodDelete, "/weights/5", s.handleWeightByID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogs(t)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			req = req.WithContext(withUser(req.Context(), &domain.User{ID: 1}))
			w := httptest.NewRecorder()
			tc.handler(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", w.Code)
			}
			if body := w.Body.String(); strings.Contains(body, "pq:") {
				t.Errorf("raw storage error leaked to client: %s", body)
			}
			if !strings.Contains(buf.String(), "connection reset") {
				t.Errorf("expected fault in log, got: %s", buf.String())
			}
		})
	}
}

func TestSetupUser_StorageFaultNotLeaked(t *testing.T) {
	s := &Server{auth: app.NewAuthService(faultingUserRepo{}, nil)}
	buf := captureLogs(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/setup",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"secret"}`))
	w := httptest.NewRecorder()
	s.handleSetupUser(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, "pq:") {
		t.Errorf("raw storage error leaked to client: %s", body)
	}
	if !strings.Contains(buf.String(), "connection reset") {
		t.Errorf("expected fault in log, got: %s", buf.String())
	}
}
