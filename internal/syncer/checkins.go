package syncer

import (
	"context"
	"fmt"

	"github.com/druryyl/btrade/internal/model"
	"github.com/druryyl/btrade/internal/transport"
)

// CheckInStore is the slice of the local store the check-in syncer needs.
type CheckInStore interface {
	DraftCheckIns(ctx context.Context) ([]model.CheckIn, error)
	MarkCheckInSent(ctx context.Context, id string) error
}

// CheckInPusher delivers one check-in payload to the remote service.
type CheckInPusher interface {
	PushCheckIn(ctx context.Context, checkIn transport.WireCheckIn) (transport.Response, error)
}

// CheckInSyncer pushes draft check-ins.
type CheckInSyncer struct {
	store CheckInStore
	push  CheckInPusher
	shape Shape
}

// NewCheckInSyncer builds a check-in syncer with the given scheduling shape.
func NewCheckInSyncer(store CheckInStore, push CheckInPusher, shape Shape) *CheckInSyncer {
	return &CheckInSyncer{store: store, push: push, shape: shape}
}

// Push runs one sync pass over the current draft check-ins.
func (s *CheckInSyncer) Push(ctx context.Context, onProgress ProgressFunc) Outcome {
	drafts, err := s.store.DraftCheckIns(ctx)
	if err != nil {
		return Failure{Message: "could not read draft check-ins", Err: err}
	}

	return runPass(ctx, s.shape, "check-ins", drafts, onProgress,
		func(c model.CheckIn) string { return c.CustomerName },
		s.attempt,
	)
}

func (s *CheckInSyncer) attempt(ctx context.Context, c model.CheckIn) error {
	resp, err := s.push.PushCheckIn(ctx, wireCheckIn(c))
	if err != nil {
		return err
	}
	if !resp.Accepted() {
		return fmt.Errorf("rejected by service: %s", resp.Message)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.MarkCheckInSent(ctx, c.ID)
}
