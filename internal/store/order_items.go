package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/druryyl/btrade/internal/model"
)

const itemColumns = `order_id, no_urut, item_code, item_name, item_category,
	unit_big, unit_small, conversion, qty_big, qty_small, qty_bonus,
	unit_price, disc1, disc2, disc3, disc4, line_total`

// AddOrderItem appends a line to an order and returns the assigned no_urut.
//
// The sequence number is MAX(no_urut)+1 at insert time, so numbers grow
// monotonically and are never reused after a deletion within the same order
// session. Item insert, sequence assignment and the parent total recompute
// share one transaction.
func (s *Store) AddOrderItem(ctx context.Context, it model.OrderItem) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("add item to order %s: begin tx: %w", it.OrderID, err)
	}
	defer tx.Rollback() // No-op if committed

	var next int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(no_urut), 0) + 1 FROM order_items WHERE order_id = ?
	`, it.OrderID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("add item to order %s: next no_urut: %w", it.OrderID, err)
	}
	it.NoUrut = next

	if err := upsertItem(ctx, tx, it); err != nil {
		return 0, fmt.Errorf("add item to order %s: %w", it.OrderID, err)
	}
	if err := recomputeOrderTotal(ctx, tx, it.OrderID); err != nil {
		return 0, fmt.Errorf("add item to order %s: %w", it.OrderID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("add item to order %s: commit: %w", it.OrderID, err)
	}

	s.notifier.notify(KindOrder)
	return next, nil
}

// UpdateOrderItem rewrites an existing line (write-through, whole record) and
// recomputes the parent total in the same transaction.
func (s *Store) UpdateOrderItem(ctx context.Context, it model.OrderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update item %s/%d: begin tx: %w", it.OrderID, it.NoUrut, err)
	}
	defer tx.Rollback()

	if err := upsertItem(ctx, tx, it); err != nil {
		return fmt.Errorf("update item %s/%d: %w", it.OrderID, it.NoUrut, err)
	}
	if err := recomputeOrderTotal(ctx, tx, it.OrderID); err != nil {
		return fmt.Errorf("update item %s/%d: %w", it.OrderID, it.NoUrut, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update item %s/%d: commit: %w", it.OrderID, it.NoUrut, err)
	}

	s.notifier.notify(KindOrder)
	return nil
}

// DeleteOrderItem removes one line and recomputes the parent total in the
// same transaction. The freed no_urut is not reused.
func (s *Store) DeleteOrderItem(ctx context.Context, orderID string, noUrut int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete item %s/%d: begin tx: %w", orderID, noUrut, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM order_items WHERE order_id = ? AND no_urut = ?
	`, orderID, noUrut); err != nil {
		return fmt.Errorf("delete item %s/%d: %w", orderID, noUrut, err)
	}
	if err := recomputeOrderTotal(ctx, tx, orderID); err != nil {
		return fmt.Errorf("delete item %s/%d: %w", orderID, noUrut, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete item %s/%d: commit: %w", orderID, noUrut, err)
	}

	s.notifier.notify(KindOrder)
	return nil
}

// OrderItems returns an order's lines in line-sequence order.
func (s *Store) OrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM order_items WHERE order_id = ? ORDER BY no_urut ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query items of order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(
			&it.OrderID, &it.NoUrut, &it.ItemCode, &it.ItemName, &it.ItemCategory,
			&it.UnitBig, &it.UnitSmall, &it.Conversion, &it.QtyBig, &it.QtySmall, &it.QtyBonus,
			&it.UnitPrice, &it.Disc1, &it.Disc2, &it.Disc3, &it.Disc4, &it.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan item of order %s: %w", orderID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items of order %s: %w", orderID, err)
	}
	return items, nil
}

func upsertItem(ctx context.Context, tx *sql.Tx, it model.OrderItem) error {
	_, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO order_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		it.OrderID, it.NoUrut, it.ItemCode, it.ItemName, it.ItemCategory,
		it.UnitBig, it.UnitSmall, it.Conversion, it.QtyBig, it.QtySmall, it.QtyBonus,
		it.UnitPrice, it.Disc1, it.Disc2, it.Disc3, it.Disc4, it.LineTotal,
	)
	return err
}

// recomputeOrderTotal rewrites the parent's cached total from the items
// table. Runs inside every item mutation's transaction, which is what keeps
// orders.total_amount equal to SUM(line_total) at all times.
func recomputeOrderTotal(ctx context.Context, tx *sql.Tx, orderID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE orders SET total_amount = (
			SELECT COALESCE(SUM(line_total), 0) FROM order_items WHERE order_id = ?
		) WHERE id = ?
	`, orderID, orderID)
	if err != nil {
		return fmt.Errorf("recompute total: %w", err)
	}
	return nil
}
