package storage

import (
	"context"
	"fmt"
)

var (
	defaultStages = []string{"Unbucked", "Bucked", "Rolled", "Processed"}
	defaultGrades = []string{"A", "B", "C", "Trim"}
)

// SeedDefaults populates the baseline stages and grades. Each table is
// checked and seeded independently; a table that already has rows is left
// untouched, so calling this on every start is safe.
func (s *Store) SeedDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.seedClassification(ctx, "stages", defaultStages); err != nil {
		return err
	}
	return s.seedClassification(ctx, "grades", defaultGrades)
}

func (s *Store) seedClassification(ctx context.Context, table string, names []string) error {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return fmt.Errorf("%w: count %s: %v", ErrQuery, table, err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range names {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO `+table+`(name) VALUES(?)`, name); err != nil {
			return fmt.Errorf("%w: seed %s %q: %v", ErrPersistence, table, name, err)
		}
	}
	return nil
}
