package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/avatar-launch/internal/db"
)

// Store provides access to the generation log.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a new entry. If entry.ID is empty a UUID is generated.
// The stored ID is returned.
func (s *Store) Record(ctx context.Context, entry Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Source == "" {
		entry.Source = SourceAPI
	}

	var errText sql.NullString
	if entry.Error != "" {
		errText = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (
			id, prompt, provider, model, source, status, error, image_bytes, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Prompt,
		entry.Provider,
		entry.Model,
		string(entry.Source),
		string(entry.Status),
		errText,
		entry.ImageBytes,
		entry.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting generation: %w", err)
	}
	return entry.ID, nil
}

// Get retrieves a single entry.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, prompt, provider, model, source, status, error, image_bytes, duration_ms, created_at
		FROM generations WHERE id = ?`, id)
	return scanInto(row)
}

// ListFilter controls which entries List returns.
type ListFilter struct {
	Status Status
	Source Source
	Since  *time.Time
	Limit  int
	Offset int
}

// List returns entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, string(filter.Source))
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, prompt, provider, model, source, status, error, image_bytes, duration_ms, created_at FROM generations"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Count returns the number of entries with the given status, or all entries
// when status is empty.
func (s *Store) Count(ctx context.Context, status Status) (int, error) {
	query := "SELECT COUNT(*) FROM generations"
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting generations: %w", err)
	}
	return n, nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e              Entry
		source, status string
		errText        sql.NullString
		durationMS     int64
		ts             string
	)

	err := sc.Scan(
		&e.ID, &e.Prompt, &e.Provider, &e.Model, &source, &status,
		&errText, &e.ImageBytes, &durationMS, &ts,
	)
	if err != nil {
		return nil, err
	}

	e.Source = Source(source)
	e.Status = Status(status)
	e.Duration = time.Duration(durationMS) * time.Millisecond
	if errText.Valid {
		e.Error = errText.String
	}

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.CreatedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		e.CreatedAt = t
	}

	return &e, nil
}
