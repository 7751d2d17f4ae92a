// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weightmelters/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	entries  []domain.WeightEntry
	users    []*domain.User
	sessions map[string]*domain.Session

	entryIDCounter int64
	userIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.UserRepository = (*UserRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- EntryRepository ---

// Upsert inserts an entry for (userID, date) or overwrites the weight of the
// existing one. The mutex stands in for the unique constraint: two
// submissions for the same day can never produce two rows.
func (db *DB) Upsert(ctx context.Context, userID int64, date string, weightKg float64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now().UTC()
	for i := range db.entries {
		e := &db.entries[i]
		if e.UserID == userID && e.Date == date {
			e.WeightKg = weightKg
			e.UpdatedAt = now
			ret := *e
			return &ret, nil
		}
	}

	db.entryIDCounter++
	entry := domain.WeightEntry{
		ID:        db.entryIDCounter,
		UserID:    userID,
		Date:      date,
		WeightKg:  weightKg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.entries = append(db.entries, entry)
	return &entry, nil
}

// GetByID returns the entry with the given id, or nil.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].ID == id {
			ret := db.entries[i]
			return &ret, nil
		}
	}
	return nil, nil
}

// Delete removes the entry with the given id.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].ID == id {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// ForDay returns the entry for (userID, date), or nil.
func (db *DB) ForDay(ctx context.Context, userID int64, date string) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].UserID == userID && db.entries[i].Date == date {
			ret := db.entries[i]
			return &ret, nil
		}
	}
	return nil, nil
}

// ListForUser returns the user's entries, most recent date first.
func (db *DB) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.WeightEntry, 0, limit)
	for _, e := range db.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListAllWithOwners returns every entry with owner display fields, ordered
// by user then date ascending.
func (db *DB) ListAllWithOwners(ctx context.Context) ([]domain.EntryWithOwner, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.EntryWithOwner, 0, len(db.entries))
	for _, e := range db.entries {
		we := domain.EntryWithOwner{WeightEntry: e}
		if u := db.userByID(e.UserID); u != nil {
			we.OwnerUsername = u.Username
			we.OwnerName = u.Name
			we.OwnerEmail = u.Email
		}
		out = append(out, we)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (db *DB) userByID(id int64) *domain.User {
	for _, u := range db.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// --- UserRepository ---

// UserRepo implements user repository operations on DB.
type UserRepo struct {
	db *DB
}

// NewUserRepo wraps a DB as a UserRepository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByUsername retrieves a user by username, or nil.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID, or nil.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if u := r.db.userByID(id); u != nil {
		ret := *u
		return &ret, nil
	}
	return nil, nil
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.userIDCounter++
	u := &domain.User{
		ID:           r.db.userIDCounter,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.db.users = append(r.db.users, u)
	ret := *u
	return &ret, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token, or nil.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	ret := *s
	return &ret, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	for token, s := range r.db.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.db.sessions, token)
		}
	}
	return nil
}
