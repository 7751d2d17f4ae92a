package app

import (
	"context"

	"weightmelters/internal/domain"
)

// DefaultListLimit caps the entry list fragment at the most recent entries.
const DefaultListLimit = 10

// EntryService encapsulates weight entry use cases.
type EntryService struct {
	repo domain.EntryRepository
}

// NewEntryService creates an EntryService backed by the given repository.
func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{repo: repo}
}

// Log stores a validated entry for the owner. Logging twice for the same day
// overwrites the earlier weight; the repository upsert is atomic, so
// near-simultaneous submissions for the same day never produce two rows.
func (s *EntryService) Log(ctx context.Context, ownerID int64, entry ValidatedEntry) (*domain.WeightEntry, error) {
	return s.repo.Upsert(ctx, ownerID, entry.Date, entry.WeightKg)
}

// Delete removes the entry with the given id if it belongs to ownerID.
// Returns domain.ErrEntryNotFound for an unknown id and domain.ErrNotOwner
// when the entry belongs to someone else.
func (s *EntryService) Delete(ctx context.Context, ownerID, entryID int64) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrEntryNotFound
	}
	if entry.UserID != ownerID {
		return domain.ErrNotOwner
	}
	return s.repo.Delete(ctx, entryID)
}

// ListFor returns the owner's entries, most recent date first.
func (s *EntryService) ListFor(ctx context.Context, ownerID int64, limit int) ([]domain.WeightEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.ListForUser(ctx, ownerID, limit)
}

// EntryForDay returns the owner's entry for the given day, or nil. Used to
// prefill the log form with an existing value.
func (s *EntryService) EntryForDay(ctx context.Context, ownerID int64, day string) (*domain.WeightEntry, error) {
	return s.repo.ForDay(ctx, ownerID, day)
}

// AllEntries returns every entry across all users with owner display fields,
// for the shared chart.
func (s *EntryService) AllEntries(ctx context.Context) ([]domain.EntryWithOwner, error) {
	return s.repo.ListAllWithOwners(ctx)
}
