package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/druryyl/btrade/internal/model"
)

const checkinColumns = `id, date, time, user_name, lat, lon, accuracy, status,
	customer_id, customer_code, customer_name`

// SaveCheckIn upserts the whole check-in record (write-through).
func (s *Store) SaveCheckIn(ctx context.Context, c model.CheckIn) error {
	if !c.Status.Valid() {
		return fmt.Errorf("save checkin %s: invalid status %q", c.ID, c.Status)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO checkins (`+checkinColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.Date, c.Time, c.UserName, c.Lat, c.Lon, c.Accuracy, string(c.Status),
		c.CustomerID, c.CustomerCode, c.CustomerName,
	)
	if err != nil {
		return fmt.Errorf("save checkin %s: %w", c.ID, err)
	}

	s.notifier.notify(KindCheckIn)
	return nil
}

// GetCheckIn returns one check-in by id, or ErrNotFound.
func (s *Store) GetCheckIn(ctx context.Context, id string) (model.CheckIn, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins WHERE id = ?
	`, id)

	c, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CheckIn{}, fmt.Errorf("checkin %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.CheckIn{}, fmt.Errorf("get checkin %s: %w", id, err)
	}
	return c, nil
}

// CheckIns returns all check-ins in creation order.
func (s *Store) CheckIns(ctx context.Context) ([]model.CheckIn, error) {
	return s.queryCheckIns(ctx, `
		SELECT `+checkinColumns+` FROM checkins ORDER BY id COLLATE BINARY ASC
	`)
}

// DraftCheckIns returns the current DRAFT snapshot in creation order.
func (s *Store) DraftCheckIns(ctx context.Context) ([]model.CheckIn, error) {
	return s.queryCheckIns(ctx, `
		SELECT `+checkinColumns+` FROM checkins WHERE status = ? ORDER BY id COLLATE BINARY ASC
	`, string(model.StatusDraft))
}

// DeleteCheckIn removes a check-in.
func (s *Store) DeleteCheckIn(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkins WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete checkin %s: %w", id, err)
	}
	s.notifier.notify(KindCheckIn)
	return nil
}

// MarkCheckInSent flips a check-in DRAFT -> SENT, refusing any other
// transition at the write boundary.
func (s *Store) MarkCheckInSent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark checkin sent %s: begin tx: %w", id, err)
	}
	defer tx.Rollback()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT status FROM checkins WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checkin %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("mark checkin sent %s: %w", id, err)
	}

	current, err := model.ParseSyncStatus(raw)
	if err != nil {
		return fmt.Errorf("mark checkin sent %s: %w", id, err)
	}
	if !current.CanTransition(model.StatusSent) {
		return fmt.Errorf("checkin %s is %s: %w", id, current, ErrStatusTransition)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE checkins SET status = ? WHERE id = ?`,
		string(model.StatusSent), id); err != nil {
		return fmt.Errorf("mark checkin sent %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark checkin sent %s: commit: %w", id, err)
	}

	s.notifier.notify(KindCheckIn)
	return nil
}

func (s *Store) queryCheckIns(ctx context.Context, query string, args ...any) ([]model.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query checkins: %w", err)
	}
	defer rows.Close()

	checkins := []model.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkins: %w", err)
	}
	return checkins, nil
}

func scanCheckIn(sc scanner) (model.CheckIn, error) {
	var c model.CheckIn
	var status string
	err := sc.Scan(
		&c.ID, &c.Date, &c.Time, &c.UserName, &c.Lat, &c.Lon, &c.Accuracy, &status,
		&c.CustomerID, &c.CustomerCode, &c.CustomerName,
	)
	if err != nil {
		return model.CheckIn{}, err
	}
	c.Status = model.SyncStatus(status)
	return c, nil
}
