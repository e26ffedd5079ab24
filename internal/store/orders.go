package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/druryyl/btrade/internal/model"
)

// ErrNotFound is returned by point lookups that match no row.
var ErrNotFound = errors.New("record not found")

// ErrStatusTransition is returned when a status write would violate the
// DRAFT -> SENT lifecycle.
var ErrStatusTransition = errors.New("illegal sync status transition")

const orderColumns = `id, local_code, order_date, total_amount, faktur_code, note, user_name, status,
	customer_id, customer_code, customer_name, customer_address, customer_lat, customer_lon,
	sales_person_id, sales_person_code, sales_person_name`

// SaveOrder upserts the whole order header. Every edit goes through here:
// a complete write-through snapshot of the record, idempotent on re-delivery.
//
// Uses ON CONFLICT DO UPDATE rather than INSERT OR REPLACE: REPLACE deletes
// the existing row first, which would fire the order_items cascade and wipe
// the order's lines.
func (s *Store) SaveOrder(ctx context.Context, o model.Order) error {
	if !o.Status.Valid() {
		return fmt.Errorf("save order %s: invalid status %q", o.ID, o.Status)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			local_code = excluded.local_code,
			order_date = excluded.order_date,
			total_amount = excluded.total_amount,
			faktur_code = excluded.faktur_code,
			note = excluded.note,
			user_name = excluded.user_name,
			status = excluded.status,
			customer_id = excluded.customer_id,
			customer_code = excluded.customer_code,
			customer_name = excluded.customer_name,
			customer_address = excluded.customer_address,
			customer_lat = excluded.customer_lat,
			customer_lon = excluded.customer_lon,
			sales_person_id = excluded.sales_person_id,
			sales_person_code = excluded.sales_person_code,
			sales_person_name = excluded.sales_person_name
	`,
		o.ID, o.LocalCode, o.OrderDate, o.TotalAmount, o.FakturCode, o.Note, o.UserName, string(o.Status),
		o.CustomerID, o.CustomerCode, o.CustomerName, o.CustomerAddress, o.CustomerLat, o.CustomerLon,
		o.SalesPersonID, o.SalesPersonCode, o.SalesPersonName,
	)
	if err != nil {
		return fmt.Errorf("save order %s: %w", o.ID, err)
	}

	s.notifier.notify(KindOrder)
	return nil
}

// GetOrder returns one order header by id, or ErrNotFound.
func (s *Store) GetOrder(ctx context.Context, id string) (model.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = ?
	`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

// Orders returns all order headers in creation order.
func (s *Store) Orders(ctx context.Context) ([]model.Order, error) {
	return s.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders ORDER BY id COLLATE BINARY ASC
	`)
}

// DraftOrders returns the current DRAFT snapshot in creation order. The sync
// engine calls this once per pass; it is a one-shot snapshot, not a cursor
// over later changes.
func (s *Store) DraftOrders(ctx context.Context) ([]model.Order, error) {
	return s.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY id COLLATE BINARY ASC
	`, string(model.StatusDraft))
}

// DeleteOrder removes an order; its items go with it via the FK cascade.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	s.notifier.notify(KindOrder)
	return nil
}

// MarkOrderSent flips an order DRAFT -> SENT and stamps the server-assigned
// faktur code when the response carried one. The transition check runs inside
// the transaction; a record already SENT returns ErrStatusTransition and a
// missing record ErrNotFound.
func (s *Store) MarkOrderSent(ctx context.Context, id, fakturCode string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark order sent %s: begin tx: %w", id, err)
	}
	defer tx.Rollback() // No-op if committed

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("mark order sent %s: %w", id, err)
	}

	current, err := model.ParseSyncStatus(raw)
	if err != nil {
		return fmt.Errorf("mark order sent %s: %w", id, err)
	}
	if !current.CanTransition(model.StatusSent) {
		return fmt.Errorf("order %s is %s: %w", id, current, ErrStatusTransition)
	}

	if fakturCode != "" {
		_, err = tx.ExecContext(ctx, `UPDATE orders SET status = ?, faktur_code = ? WHERE id = ?`,
			string(model.StatusSent), fakturCode, id)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`,
			string(model.StatusSent), id)
	}
	if err != nil {
		return fmt.Errorf("mark order sent %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark order sent %s: commit: %w", id, err)
	}

	s.notifier.notify(KindOrder)
	return nil
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(sc scanner) (model.Order, error) {
	var o model.Order
	var status string
	err := sc.Scan(
		&o.ID, &o.LocalCode, &o.OrderDate, &o.TotalAmount, &o.FakturCode, &o.Note, &o.UserName, &status,
		&o.CustomerID, &o.CustomerCode, &o.CustomerName, &o.CustomerAddress, &o.CustomerLat, &o.CustomerLon,
		&o.SalesPersonID, &o.SalesPersonCode, &o.SalesPersonName,
	)
	if err != nil {
		return model.Order{}, err
	}
	o.Status = model.SyncStatus(status)
	return o, nil
}
