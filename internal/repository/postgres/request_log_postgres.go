package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bffmvp/internal/model"
	"bffmvp/internal/repository"
)

// RequestLogPostgres is a PostgreSQL implementation of repository.RequestLogRepository.
type RequestLogPostgres struct {
	db *sql.DB
}

// NewRequestLogPostgres creates a new RequestLogPostgres repository.
func NewRequestLogPostgres(db *sql.DB) *RequestLogPostgres {
	return &RequestLogPostgres{db: db}
}

var _ repository.RequestLogRepository = (*RequestLogPostgres)(nil)

// Append inserts the entry and trims the table to the newest limit rows in one transaction.
// Rows are ranked by seq rather than counted from MAX(seq) since rolled-back inserts leave gaps.
func (r *RequestLogPostgres) Append(ctx context.Context, entry model.RequestLog, limit int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qInsert = `
		INSERT INTO request_logs (ts, method, path, status)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, qInsert, entry.Timestamp, entry.Method, entry.Path, entry.Status); err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}

	if limit > 0 {
		const qTrim = `
			DELETE FROM request_logs
			WHERE seq IN (
				SELECT seq FROM request_logs
				ORDER BY seq DESC
				OFFSET $1
			)
		`
		if _, err := tx.ExecContext(ctx, qTrim, limit); err != nil {
			return fmt.Errorf("trim request logs: %w", err)
		}
	}

	return tx.Commit()
}

// List returns the retained entries, oldest first.
func (r *RequestLogPostgres) List(ctx context.Context) ([]model.RequestLog, error) {
	const q = `
		SELECT ts, method, path, status
		FROM request_logs
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list request logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.RequestLog, 0)
	for rows.Next() {
		var l model.RequestLog
		if err := rows.Scan(&l.Timestamp, &l.Method, &l.Path, &l.Status); err != nil {
			return nil, fmt.Errorf("scan request log: %w", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
