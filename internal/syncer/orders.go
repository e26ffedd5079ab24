package syncer

import (
	"context"
	"fmt"

	"github.com/druryyl/btrade/internal/model"
	"github.com/druryyl/btrade/internal/transport"
)

// OrderStore is the slice of the local store the order syncer needs.
type OrderStore interface {
	DraftOrders(ctx context.Context) ([]model.Order, error)
	OrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	MarkOrderSent(ctx context.Context, id, fakturCode string) error
}

// OrderPusher delivers one order payload to the remote service.
type OrderPusher interface {
	PushOrder(ctx context.Context, order transport.WireOrder) (transport.Response, error)
}

// OrderSyncer pushes draft orders.
type OrderSyncer struct {
	store OrderStore
	push  OrderPusher
	shape Shape
}

// NewOrderSyncer builds an order syncer with the given scheduling shape.
func NewOrderSyncer(store OrderStore, push OrderPusher, shape Shape) *OrderSyncer {
	return &OrderSyncer{store: store, push: push, shape: shape}
}

// Push runs one sync pass over the current draft orders. onProgress may be
// nil. See the package doc for the pass contract.
func (s *OrderSyncer) Push(ctx context.Context, onProgress ProgressFunc) Outcome {
	drafts, err := s.store.DraftOrders(ctx)
	if err != nil {
		return Failure{Message: "could not read draft orders", Err: err}
	}

	return runPass(ctx, s.shape, "orders", drafts, onProgress,
		func(o model.Order) string {
			if o.CustomerName != "" {
				return o.CustomerName
			}
			return o.LocalCode
		},
		s.attempt,
	)
}

// attempt delivers one order and, on acceptance, flips it to SENT. The
// status flip is a separate local write after the network call: a crash in
// between re-sends the order next pass.
func (s *OrderSyncer) attempt(ctx context.Context, o model.Order) error {
	items, err := s.store.OrderItems(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	resp, err := s.push.PushOrder(ctx, wireOrder(o, items))
	if err != nil {
		return err
	}
	if !resp.Accepted() {
		return fmt.Errorf("rejected by service: %s", resp.Message)
	}

	// Cancellation observed after network accept: leave the record DRAFT
	// rather than racing a write against teardown. Accepted re-delivery risk.
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.store.MarkOrderSent(ctx, o.ID, resp.Data)
}
