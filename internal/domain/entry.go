package domain

import (
	"context"
	"errors"
	"time"
)

// DateLayout is the wire and storage format for entry dates.
const DateLayout = "2006-01-02"

var (
	// ErrEntryNotFound indicates that no entry exists with the requested id.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNotOwner indicates an attempt to modify an entry owned by another user.
	ErrNotOwner = errors.New("entry belongs to another user")
)

// WeightEntry is a single weight measurement. At most one entry exists per
// (UserID, Date) pair; the store enforces this.
type WeightEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      string    `json:"date"`
	WeightKg  float64   `json:"weightKg"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryWithOwner is a WeightEntry joined with the owner fields the chart
// needs for labelling.
type EntryWithOwner struct {
	WeightEntry
	OwnerUsername string
	OwnerName     string
	OwnerEmail    string
}

// EntryRepository is the port for weight entry persistence.
type EntryRepository interface {
	// Upsert inserts an entry for (userID, date) or, if one already exists,
	// overwrites its weight. The operation is atomic with respect to the
	// uniqueness constraint.
	Upsert(ctx context.Context, userID int64, date string, weightKg float64) (*WeightEntry, error)
	GetByID(ctx context.Context, id int64) (*WeightEntry, error)
	Delete(ctx context.Context, id int64) error
	// ForDay returns the entry for (userID, date), or nil if none exists.
	ForDay(ctx context.Context, userID int64, date string) (*WeightEntry, error)
	// ListForUser returns the user's entries, most recent date first.
	ListForUser(ctx context.Context, userID int64, limit int) ([]WeightEntry, error)
	// ListAllWithOwners returns every entry across all users with owner
	// display fields, ordered by user then date ascending.
	ListAllWithOwners(ctx context.Context) ([]EntryWithOwner, error)
}
