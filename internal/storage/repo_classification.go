package storage

import (
	"context"
	"fmt"
)

// InsertStage adds a processing stage by name. Re-inserting an existing
// name is a successful no-op; the returned id is 0 in that case and
// callers should re-list rather than rely on it.
func (s *Store) InsertStage(ctx context.Context, name string) (int64, error) {
	return s.insertClassification(ctx, "stages", name)
}

// InsertGrade adds a quality grade by name, with the same idempotent
// contract as InsertStage.
func (s *Store) InsertGrade(ctx context.Context, name string) (int64, error) {
	return s.insertClassification(ctx, "grades", name)
}

// ListStages returns all stages in insertion (ascending id) order.
func (s *Store) ListStages(ctx context.Context) ([]ClassificationItem, error) {
	return s.listClassification(ctx, "stages")
}

// ListGrades returns all grades in insertion (ascending id) order.
func (s *Store) ListGrades(ctx context.Context) ([]ClassificationItem, error) {
	return s.listClassification(ctx, "grades")
}

func (s *Store) insertClassification(ctx context.Context, table, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO `+table+`(name) VALUES(?)`, name)
	if err != nil {
		return 0, fmt.Errorf("%w: insert %s %q: %v", ErrPersistence, table, name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: insert %s: rows affected: %v", ErrPersistence, table, err)
	}
	if affected == 0 {
		// Name already present; the id of the existing row is deliberately
		// not looked up.
		return 0, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert %s: last insert id: %v", ErrPersistence, table, err)
	}
	return id, nil
}

func (s *Store) listClassification(ctx context.Context, table string) ([]ClassificationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrQuery, table, err)
	}
	defer rows.Close()

	var out []ClassificationItem
	for rows.Next() {
		var item ClassificationItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrQuery, table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", ErrQuery, table, err)
	}
	return out, nil
}
