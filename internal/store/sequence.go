package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SequenceState returns the persisted period key and counter for a
// friendly-code namespace. An unknown namespace is ("", 0), not an error,
// so first use of a sequence needs no seeding step.
//
// Implements ident.SequenceStore.
func (s *Store) SequenceState(ctx context.Context, namespace string) (string, int, error) {
	var period string
	var counter int
	err := s.db.QueryRowContext(ctx, `
		SELECT period, counter FROM sequences WHERE namespace = ?
	`, namespace).Scan(&period, &counter)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("sequence state %s: %w", namespace, err)
	}
	return period, counter, nil
}

// SetSequenceState upserts a namespace's period key and counter.
func (s *Store) SetSequenceState(ctx context.Context, namespace, period string, counter int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sequences (namespace, period, counter) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET period = excluded.period, counter = excluded.counter
	`, namespace, period, counter)
	if err != nil {
		return fmt.Errorf("set sequence state %s: %w", namespace, err)
	}
	return nil
}
