package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InsertBatch persists one ledger entry and returns its assigned id. The
// store encodes the specs map itself and stamps CreatedAt at write time; a
// specs value that cannot be encoded (non-finite numbers) surfaces
// ErrPersistence before anything is written.
func (s *Store) InsertBatch(ctx context.Context, b *Batch) (int64, error) {
	if b == nil {
		return 0, fmt.Errorf("%w: insert batch: batch is nil", ErrPersistence)
	}
	if b.Weight < 0 {
		return 0, fmt.Errorf("%w: insert batch: negative weight %v", ErrPersistence, b.Weight)
	}

	specsJSON, err := encodeSpecs(b.Specs)
	if err != nil {
		return 0, fmt.Errorf("%w: insert batch: %v", ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b.CreatedAt = nowUTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_batches(name, type_id, grade_id, stage_id, weight, price, specs_json, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, b.Name, b.TypeID, b.GradeID, b.StageID, b.Weight, b.Price, specsJSON, fmtTime(b.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("%w: insert batch: %v", ErrPersistence, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert batch: last insert id: %v", ErrPersistence, err)
	}
	b.ID = id
	return id, nil
}

// GetBatch reads a single batch back by id, including its decoded specs
// map. Returns ErrNotFound for an unknown id.
func (s *Store) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type_id, grade_id, stage_id, weight, price, specs_json, created_at
		FROM inventory_batches
		WHERE id = ?
	`, id)

	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get batch %d: %v", ErrQuery, id, err)
	}
	return batch, nil
}

// ListBatchesByStage returns all batches in the given stage, oldest first.
func (s *Store) ListBatchesByStage(ctx context.Context, stageID int64) ([]Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type_id, grade_id, stage_id, weight, price, specs_json, created_at
		FROM inventory_batches
		WHERE stage_id = ?
		ORDER BY id ASC
	`, stageID)
	if err != nil {
		return nil, fmt.Errorf("%w: list batches for stage %d: %v", ErrQuery, stageID, err)
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list batches for stage %d: %v", ErrQuery, stageID, err)
		}
		out = append(out, *batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate batches: %v", ErrQuery, err)
	}
	return out, nil
}

// AggregateStage sums weight and counts batches for one stage. An unknown
// or unused stage id is a valid query and yields zero totals, never an
// error.
func (s *Store) AggregateStage(ctx context.Context, stageID int64) (StageTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var totals StageTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(weight), 0.0), COUNT(*)
		FROM inventory_batches
		WHERE stage_id = ?
	`, stageID).Scan(&totals.TotalWeight, &totals.Count)
	if err != nil {
		return StageTotals{}, fmt.Errorf("%w: aggregate stage %d: %v", ErrQuery, stageID, err)
	}
	return totals, nil
}

type batchScanner interface {
	Scan(dest ...any) error
}

func scanBatch(scanner batchScanner) (*Batch, error) {
	var (
		batch     Batch
		rawSpecs  string
		createdAt string
	)
	if err := scanner.Scan(&batch.ID, &batch.Name, &batch.TypeID, &batch.GradeID, &batch.StageID, &batch.Weight, &batch.Price, &rawSpecs, &createdAt); err != nil {
		return nil, err
	}

	specs, err := decodeSpecs(rawSpecs)
	if err != nil {
		return nil, err
	}
	batch.Specs = specs

	batch.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
