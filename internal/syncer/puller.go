package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/druryyl/btrade/internal/model"
)

// MirrorStore is the slice of the local store the puller writes to.
type MirrorStore interface {
	ReplaceItems(ctx context.Context, rows []model.Item) error
	ReplaceCustomers(ctx context.Context, rows []model.Customer) error
	ReplaceSalesPersons(ctx context.Context, rows []model.SalesPerson) error
}

// MasterPuller fetches the remote master-data lists.
type MasterPuller interface {
	PullItems(ctx context.Context) ([]model.Item, error)
	PullCustomers(ctx context.Context) ([]model.Customer, error)
	PullSalesPersons(ctx context.Context) ([]model.SalesPerson, error)
}

// Puller refreshes the local master-data mirrors: fetch, delete-all, then
// batched bulk insert per entity kind. Unlike draft pushes there is no
// per-record failure tolerance; a failed pull of one kind fails the refresh
// for that kind, and the stale mirror stays in place.
type Puller struct {
	store  MirrorStore
	remote MasterPuller
}

// NewPuller builds a master-data puller.
func NewPuller(store MirrorStore, remote MasterPuller) *Puller {
	return &Puller{store: store, remote: remote}
}

// PullAll refreshes the three mirrors, fetching them in parallel. The first
// error cancels the remaining fetches and is returned.
func (p *Puller) PullAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return p.pullItems(ctx) })
	g.Go(func() error { return p.pullCustomers(ctx) })
	g.Go(func() error { return p.pullSalesPersons(ctx) })

	return g.Wait()
}

func (p *Puller) pullItems(ctx context.Context) error {
	rows, err := p.remote.PullItems(ctx)
	if err != nil {
		return fmt.Errorf("pull catalog: %w", err)
	}
	if err := p.store.ReplaceItems(ctx, rows); err != nil {
		return fmt.Errorf("pull catalog: %w", err)
	}
	slog.Info("catalog mirror refreshed", "rows", len(rows))
	return nil
}

func (p *Puller) pullCustomers(ctx context.Context) error {
	rows, err := p.remote.PullCustomers(ctx)
	if err != nil {
		return fmt.Errorf("pull customers: %w", err)
	}
	if err := p.store.ReplaceCustomers(ctx, rows); err != nil {
		return fmt.Errorf("pull customers: %w", err)
	}
	slog.Info("customer mirror refreshed", "rows", len(rows))
	return nil
}

func (p *Puller) pullSalesPersons(ctx context.Context) error {
	rows, err := p.remote.PullSalesPersons(ctx)
	if err != nil {
		return fmt.Errorf("pull salespersons: %w", err)
	}
	if err := p.store.ReplaceSalesPersons(ctx, rows); err != nil {
		return fmt.Errorf("pull salespersons: %w", err)
	}
	slog.Info("salesperson mirror refreshed", "rows", len(rows))
	return nil
}
