package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/druryyl/btrade/internal/model"
	"github.com/druryyl/btrade/internal/transport"
)

// LocationStore is the slice of the local store the location syncer needs.
// Its draft condition is a dirty flag on the customer mirror, not a status.
type LocationStore interface {
	DirtyLocationCustomers(ctx context.Context) ([]model.Customer, error)
	ClearLocationDirty(ctx context.Context, id string) error
}

// LocationPusher delivers one customer coordinate update.
type LocationPusher interface {
	PushCustomerLocation(ctx context.Context, update transport.LocationUpdate) (transport.Response, error)
}

// LocationSyncer pushes locally re-pinned customer coordinates upstream.
type LocationSyncer struct {
	store    LocationStore
	push     LocationPusher
	shape    Shape
	userName string
	now      func() time.Time
}

// NewLocationSyncer builds a location syncer. userName stamps the update's
// author; now may be nil for the wall clock.
func NewLocationSyncer(store LocationStore, push LocationPusher, shape Shape, userName string, now func() time.Time) *LocationSyncer {
	if now == nil {
		now = time.Now
	}
	return &LocationSyncer{store: store, push: push, shape: shape, userName: userName, now: now}
}

// Push runs one sync pass over customers with unpushed coordinate edits.
func (s *LocationSyncer) Push(ctx context.Context, onProgress ProgressFunc) Outcome {
	dirty, err := s.store.DirtyLocationCustomers(ctx)
	if err != nil {
		return Failure{Message: "could not read pending location updates", Err: err}
	}

	return runPass(ctx, s.shape, "location updates", dirty, onProgress,
		func(c model.Customer) string { return c.Name },
		s.attempt,
	)
}

func (s *LocationSyncer) attempt(ctx context.Context, c model.Customer) error {
	resp, err := s.push.PushCustomerLocation(ctx, locationUpdate(c, s.userName, s.now()))
	if err != nil {
		return err
	}
	if !resp.Accepted() {
		return fmt.Errorf("rejected by service: %s", resp.Message)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.ClearLocationDirty(ctx, c.ID)
}
