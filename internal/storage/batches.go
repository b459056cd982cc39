package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/shelf/internal/model"
)

// DefaultHistoryLimit is used when ListBatches is called with a
// non-positive limit.
const DefaultHistoryLimit = 20

// SaveBatch writes a finished batch with its moves and errors.
func (s *SQLiteStorage) SaveBatch(ctx context.Context, record model.BatchRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBatch(record); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, mode, base_folder, tag, started_at, finished_at, moved, skipped, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, string(record.Mode), record.BaseFolder, record.Tag,
		record.StartedAt.UTC(), record.FinishedAt.UTC(),
		record.Result.Moved, record.Result.Skipped, record.Result.ErrorCount())
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	for i, move := range record.Result.Moves {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO batch_moves (batch_id, seq, source, destination) VALUES (?, ?, ?, ?)`,
			record.ID, i, move.Source, move.Destination); err != nil {
			return fmt.Errorf("failed to insert move: %w", err)
		}
	}

	for i, fileErr := range record.Result.Errors {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO batch_errors (batch_id, seq, path, message) VALUES (?, ?, ?, ?)`,
			record.ID, i, fileErr.Path, fileErr.Message); err != nil {
			return fmt.Errorf("failed to insert error: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// ListBatches returns the most recent batches, newest first.
func (s *SQLiteStorage) ListBatches(ctx context.Context, limit int) ([]model.BatchRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, base_folder, tag, started_at, finished_at, moved, skipped
		FROM batches
		ORDER BY finished_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.BatchRecord
	for rows.Next() {
		record, scanErr := scanBatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}

	for i := range records {
		if err := s.loadDetails(ctx, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// GetBatch returns one batch by id or unique id prefix.
func (s *SQLiteStorage) GetBatch(ctx context.Context, id string) (*model.BatchRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, base_folder, tag, started_at, finished_at, moved, skipped
		FROM batches
		WHERE id = ? OR id LIKE ? || '%'
		ORDER BY id = ? DESC
		LIMIT 2`, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []model.BatchRecord
	for rows.Next() {
		record, scanErr := scanBatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
	case len(matches) > 1 && matches[0].ID != id:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousBatch, id)
	}

	record := matches[0]
	if err := s.loadDetails(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (model.BatchRecord, error) {
	var (
		record   model.BatchRecord
		mode     string
		started  time.Time
		finished time.Time
	)
	err := row.Scan(&record.ID, &mode, &record.BaseFolder, &record.Tag,
		&started, &finished, &record.Result.Moved, &record.Result.Skipped)
	if errors.Is(err, sql.ErrNoRows) {
		return record, ErrBatchNotFound
	}
	if err != nil {
		return record, fmt.Errorf("failed to scan batch: %w", err)
	}
	record.Mode = model.BatchMode(mode)
	record.StartedAt = started
	record.FinishedAt = finished
	return record, nil
}

// loadDetails fills in the moves and errors of record.
func (s *SQLiteStorage) loadDetails(ctx context.Context, record *model.BatchRecord) error {
	moveRows, err := s.db.QueryContext(ctx,
		`SELECT source, destination FROM batch_moves WHERE batch_id = ? ORDER BY seq`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to query moves: %w", err)
	}
	for moveRows.Next() {
		var move model.Move
		if err := moveRows.Scan(&move.Source, &move.Destination); err != nil {
			_ = moveRows.Close()
			return fmt.Errorf("failed to scan move: %w", err)
		}
		record.Result.Moves = append(record.Result.Moves, move)
	}
	if err := moveRows.Err(); err != nil {
		_ = moveRows.Close()
		return fmt.Errorf("error iterating moves: %w", err)
	}
	_ = moveRows.Close()

	errRows, err := s.db.QueryContext(ctx,
		`SELECT path, message FROM batch_errors WHERE batch_id = ? ORDER BY seq`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to query errors: %w", err)
	}
	defer func() { _ = errRows.Close() }()
	for errRows.Next() {
		var fileErr model.FileError
		if err := errRows.Scan(&fileErr.Path, &fileErr.Message); err != nil {
			return fmt.Errorf("failed to scan error: %w", err)
		}
		record.Result.Errors = append(record.Result.Errors, fileErr)
	}
	if err := errRows.Err(); err != nil {
		return fmt.Errorf("error iterating errors: %w", err)
	}
	return nil
}
