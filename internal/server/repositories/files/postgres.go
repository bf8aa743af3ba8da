// Package files is the PostgreSQL catalog of uploaded objects.
package files

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, name, size, size_bytes, type, content_type, storage_path,
		modified_date, created_at, summary, tags`

func (r *PostgresRepository) Insert(ctx context.Context, rec *catalog.FileRecord) error {
	tags, err := json.Marshal(nonNil(rec.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	query := `
		INSERT INTO files (user_id, name, size, size_bytes, type, content_type, storage_path, modified_date, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Name, rec.Size, rec.SizeBytes, rec.Type, rec.ContentType,
		rec.StoragePath, rec.ModifiedDate, tags,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("storage path %s: %w", rec.StoragePath, common.ErrAlreadyExists)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]catalog.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files WHERE user_id = $1 ORDER BY modified_date DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := []catalog.FileRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*catalog.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files WHERE user_id = $1 AND id = $2`
	return r.getOne(ctx, query, userID, id)
}

func (r *PostgresRepository) GetByStoragePath(ctx context.Context, userID, storagePath string) (*catalog.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files WHERE user_id = $1 AND storage_path = $2`
	return r.getOne(ctx, query, userID, storagePath)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*catalog.FileRecord, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *PostgresRepository) UpdateSummary(ctx context.Context, userID, id, summary string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE files SET summary = $3 WHERE user_id = $1 AND id = $2`, userID, id, summary)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context, userID string) (Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(size_bytes), 0) FROM files WHERE user_id = $1`, userID,
	).Scan(&s.Count, &s.TotalBytes)
	if err != nil {
		return Stats{}, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Probe(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM files LIMIT 1`)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*catalog.FileRecord, error) {
	var (
		rec     catalog.FileRecord
		summary sql.NullString
		tags    []byte
	)
	err := s.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Size, &rec.SizeBytes, &rec.Type,
		&rec.ContentType, &rec.StoragePath, &rec.ModifiedDate, &rec.CreatedAt, &summary, &tags)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan file: %w", err)
	}
	rec.Summary = summary.String
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &rec.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &rec, nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
