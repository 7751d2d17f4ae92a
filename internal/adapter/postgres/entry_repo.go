package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weightmelters/internal/domain"
)

const entryCols = "id, user_id, to_char(entry_date, 'YYYY-MM-DD'), weight_kg, created_at, updated_at"

// Upsert inserts an entry for (userID, date) or overwrites the weight of the
// existing one. ON CONFLICT makes the operation atomic, so duplicate
// submissions never surface a constraint violation.
func (d *DB) Upsert(ctx context.Context, userID int64, date string, weightKg float64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_entries(user_id, entry_date, weight_kg, created_at, updated_at) VALUES($1, $2, $3, now(), now()) "+
			"ON CONFLICT (user_id, entry_date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg, updated_at = now() "+
			"RETURNING "+entryCols+";",
		userID, date, weightKg,
	)
	return scanEntry(row)
}

// GetByID returns the entry with the given id, or nil if it does not exist.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+entryCols+" FROM weight_entries WHERE id = $1;", id)
	return scanEntry(row)
}

// Delete removes the entry with the given id.
func (d *DB) Delete(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM weight_entries WHERE id = $1;", id)
	return err
}

// ForDay returns the entry for (userID, date), or nil if none exists.
func (d *DB) ForDay(ctx context.Context, userID int64, date string) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+entryCols+" FROM weight_entries WHERE user_id = $1 AND entry_date = $2;",
		userID, date)
	return scanEntry(row)
}

// ListForUser returns the user's entries, most recent date first.
func (d *DB) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+entryCols+" FROM weight_entries WHERE user_id = $1 ORDER BY entry_date DESC LIMIT $2;",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightEntry, 0, limit)
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.WeightKg, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListAllWithOwners returns every entry joined with its owner's display
// fields, ordered by user then date ascending, ready for chart grouping.
func (d *DB) ListAllWithOwners(ctx context.Context) ([]domain.EntryWithOwner, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT e.id, e.user_id, to_char(e.entry_date, 'YYYY-MM-DD'), e.weight_kg, e.created_at, e.updated_at, u.username, u.name, u.email "+
			"FROM weight_entries e JOIN users u ON u.id = e.user_id ORDER BY e.user_id, e.entry_date;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.EntryWithOwner
	for rows.Next() {
		var e domain.EntryWithOwner
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.WeightKg, &e.CreatedAt, &e.UpdatedAt,
			&e.OwnerUsername, &e.OwnerName, &e.OwnerEmail); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(row *sql.Row) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.WeightKg, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
