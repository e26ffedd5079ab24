package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/druryyl/btrade/internal/model"
)

// ReplaceBatchSize bounds how many mirror rows one insert transaction holds
// during a pull refresh. Tunable: it limits per-transaction memory and row
// locks, it is not a correctness constraint.
const ReplaceBatchSize = 100

// ReplaceCustomers swaps the whole customer mirror for rows. The delete and
// the batched inserts are separate transactions: a pull interrupted midway
// leaves a partial mirror, which the next pull repairs. Each row write is
// atomic.
//
// Locally-dirty coordinates survive the swap: a row flagged location_dirty
// keeps its local lat/lon/accuracy instead of the server's, so an unpushed
// re-pin is not silently overwritten by a pull.
func (s *Store) ReplaceCustomers(ctx context.Context, rows []model.Customer) error {
	dirty, err := s.dirtyLocationsByID(ctx)
	if err != nil {
		return fmt.Errorf("replace customers: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("replace customers: clear: %w", err)
	}

	err = s.insertBatched(ctx, len(rows), func(tx *sql.Tx, i int) error {
		c := rows[i]
		if d, ok := dirty[c.ID]; ok {
			c.Lat, c.Lon, c.Accuracy = d.Lat, d.Lon, d.Accuracy
			c.LocationDirty = true
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO customers (id, code, name, address, lat, lon, accuracy, location_dirty)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Code, c.Name, c.Address, c.Lat, c.Lon, c.Accuracy, boolToInt(c.LocationDirty))
		return err
	})
	if err != nil {
		return fmt.Errorf("replace customers: %w", err)
	}

	s.notifier.notify(KindCustomer)
	return nil
}

// ReplaceSalesPersons swaps the whole salesperson mirror.
func (s *Store) ReplaceSalesPersons(ctx context.Context, rows []model.SalesPerson) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM salespersons`); err != nil {
		return fmt.Errorf("replace salespersons: clear: %w", err)
	}

	err := s.insertBatched(ctx, len(rows), func(tx *sql.Tx, i int) error {
		p := rows[i]
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO salespersons (id, code, name) VALUES (?, ?, ?)
		`, p.ID, p.Code, p.Name)
		return err
	})
	if err != nil {
		return fmt.Errorf("replace salespersons: %w", err)
	}

	s.notifier.notify(KindSalesPerson)
	return nil
}

// ReplaceItems swaps the whole catalog mirror.
func (s *Store) ReplaceItems(ctx context.Context, rows []model.Item) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("replace items: clear: %w", err)
	}

	err := s.insertBatched(ctx, len(rows), func(tx *sql.Tx, i int) error {
		it := rows[i]
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO items (id, code, name, category, unit_big, unit_small, conversion, unit_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, it.ID, it.Code, it.Name, it.Category, it.UnitBig, it.UnitSmall, it.Conversion, it.UnitPrice)
		return err
	})
	if err != nil {
		return fmt.Errorf("replace items: %w", err)
	}

	s.notifier.notify(KindItem)
	return nil
}

// insertBatched runs insert in transactions of ReplaceBatchSize rows each.
func (s *Store) insertBatched(ctx context.Context, n int, insert func(tx *sql.Tx, i int) error) error {
	for start := 0; start < n; start += ReplaceBatchSize {
		end := start + ReplaceBatchSize
		if end > n {
			end = n
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("batch %d: begin tx: %w", start/ReplaceBatchSize, err)
		}
		for i := start; i < end; i++ {
			if err := insert(tx, i); err != nil {
				tx.Rollback()
				return fmt.Errorf("batch row %d: %w", i, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("batch %d: commit: %w", start/ReplaceBatchSize, err)
		}
	}
	return nil
}

// GetCustomer returns one customer mirror row, or ErrNotFound.
func (s *Store) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, code, name, address, lat, lon, accuracy, location_dirty
		FROM customers WHERE id = ?
	`, id)

	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

// Customers returns the whole customer mirror ordered by code.
func (s *Store) Customers(ctx context.Context) ([]model.Customer, error) {
	return s.queryCustomers(ctx, `
		SELECT id, code, name, address, lat, lon, accuracy, location_dirty
		FROM customers ORDER BY code COLLATE BINARY ASC
	`)
}

// SalesPersons returns the whole salesperson mirror ordered by code.
func (s *Store) SalesPersons(ctx context.Context) ([]model.SalesPerson, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, name FROM salespersons ORDER BY code COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query salespersons: %w", err)
	}
	defer rows.Close()

	people := []model.SalesPerson{}
	for rows.Next() {
		var p model.SalesPerson
		if err := rows.Scan(&p.ID, &p.Code, &p.Name); err != nil {
			return nil, fmt.Errorf("scan salesperson: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salespersons: %w", err)
	}
	return people, nil
}

// Items returns the whole catalog mirror ordered by code.
func (s *Store) Items(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, name, category, unit_big, unit_small, conversion, unit_price
		FROM items ORDER BY code COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Category,
			&it.UnitBig, &it.UnitSmall, &it.Conversion, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// UpdateCustomerLocation records a local re-pin of a customer's coordinates
// and flags the row for upstream push.
func (s *Store) UpdateCustomerLocation(ctx context.Context, id string, lat, lon, accuracy float64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers SET lat = ?, lon = ?, accuracy = ?, location_dirty = 1 WHERE id = ?
	`, lat, lon, accuracy, id)
	if err != nil {
		return fmt.Errorf("update customer location %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	s.notifier.notify(KindCustomer)
	return nil
}

// DirtyLocationCustomers returns customers whose coordinates carry unpushed
// local edits, in code order. This is the location syncer's draft set.
func (s *Store) DirtyLocationCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.queryCustomers(ctx, `
		SELECT id, code, name, address, lat, lon, accuracy, location_dirty
		FROM customers WHERE location_dirty = 1 ORDER BY code COLLATE BINARY ASC
	`)
}

// ClearLocationDirty marks a customer's coordinates as pushed.
func (s *Store) ClearLocationDirty(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE customers SET location_dirty = 0 WHERE id = ?
	`, id); err != nil {
		return fmt.Errorf("clear location dirty %s: %w", id, err)
	}
	s.notifier.notify(KindCustomer)
	return nil
}

func (s *Store) dirtyLocationsByID(ctx context.Context) (map[string]model.Customer, error) {
	dirty, err := s.DirtyLocationCustomers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Customer, len(dirty))
	for _, c := range dirty {
		byID[c.ID] = c
	}
	return byID, nil
}

func (s *Store) queryCustomers(ctx context.Context, query string, args ...any) ([]model.Customer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func scanCustomer(sc scanner) (model.Customer, error) {
	var c model.Customer
	var dirty int
	err := sc.Scan(&c.ID, &c.Code, &c.Name, &c.Address, &c.Lat, &c.Lon, &c.Accuracy, &dirty)
	if err != nil {
		return model.Customer{}, err
	}
	c.LocationDirty = dirty != 0
	return c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
