package storage

import (
	"context"
	"fmt"
)

// InsertProductType adds a product type with its expected spec keys, which
// are stored in the order given. Insert-or-ignore by name: a duplicate is
// a no-op returning id 0.
func (s *Store) InsertProductType(ctx context.Context, name string, specKeys []string) (int64, error) {
	keysJSON, err := encodeSpecKeys(specKeys)
	if err != nil {
		return 0, fmt.Errorf("%w: insert product type %q: %v", ErrPersistence, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO product_types(name, spec_keys_json) VALUES(?, ?)`, name, keysJSON)
	if err != nil {
		return 0, fmt.Errorf("%w: insert product type %q: %v", ErrPersistence, name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: insert product type: rows affected: %v", ErrPersistence, err)
	}
	if affected == 0 {
		return 0, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert product type: last insert id: %v", ErrPersistence, err)
	}
	return id, nil
}

// ListProductTypes returns all product types in ascending id order. A row
// whose stored key list does not parse comes back with an empty key
// sequence instead of failing the whole listing.
func (s *Store) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, spec_keys_json FROM product_types ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list product types: %v", ErrQuery, err)
	}
	defer rows.Close()

	var out []ProductType
	for rows.Next() {
		var (
			pt      ProductType
			rawKeys string
		)
		if err := rows.Scan(&pt.ID, &pt.Name, &rawKeys); err != nil {
			return nil, fmt.Errorf("%w: scan product type: %v", ErrQuery, err)
		}
		pt.SpecKeys = decodeSpecKeys(rawKeys)
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate product types: %v", ErrQuery, err)
	}
	return out, nil
}
