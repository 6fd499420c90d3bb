package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const entryColumns = "id, user_id, chat_id, status, error_message, created_at, updated_at"

// Record inserts a new attempt in StatusReceived.
func (s *Store) Record(ctx context.Context, userID, chatID int64) (*Entry, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO journal_entries (user_id, chat_id, status, error_message, created_at, updated_at)
         VALUES (?, ?, ?, '', ?, ?)`,
		userID,
		chatID,
		StatusReceived,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches an entry by identifier, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// SetStatus transitions an entry and records an optional error message.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status, errorMessage string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(
		ctx,
		`UPDATE journal_entries SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status,
		errorMessage,
		timestamp,
		id,
	)
	if err != nil {
		return fmt.Errorf("update entry status: %w", err)
	}
	return nil
}

// List returns the most recent entries, optionally filtered by status.
// A non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int, statuses ...Status) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	args := make([]any, 0, len(statuses)+1)
	if len(statuses) > 0 {
		query += ` WHERE status IN (?` + repeatPlaceholder(len(statuses)-1) + `)`
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Clear removes all journal entries and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM journal_entries`)
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Summarize aggregates attempt counts per terminal state.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT status, COUNT(1) FROM journal_entries GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize journal: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scan summary row: %w", err)
		}
		summary.Total += count
		switch Status(status) {
		case StatusDelivered:
			summary.Delivered += count
		case StatusRejected:
			summary.Rejected += count
		case StatusFailed:
			summary.Failed += count
		case StatusReceived, StatusPackaging:
			summary.InFlight += count
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate summary: %w", err)
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry     Entry
		status    string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.ChatID, &status, &entry.ErrorMessage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	entry.Status = Status(status)
	entry.CreatedAt = parseTimestamp(createdAt)
	entry.UpdatedAt = parseTimestamp(updatedAt)
	return &entry, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}
