package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Shape selects how a pass schedules its per-record network attempts.
type Shape int

const (
	// Sequential awaits each record's attempt (network call plus status
	// write) before starting the next. Progress is strictly ordered and
	// attributable to the record in flight.
	Sequential Shape = iota

	// Concurrent launches all attempts together and joins them before the
	// count is reported. No ordering between records; progress events fire
	// at launch time.
	Concurrent
)

// runPass drives one sync pass over a draft snapshot. entity names the
// record family for logs and messages; label renders the human tag carried
// by progress events; attempt delivers one record and flips its local state,
// returning nil only when the record is now SENT.
//
// Per-record failure isolation lives here: an attempt error is logged and
// the pass moves on. Cancellation is checked between records so a torn-down
// caller stops issuing attempts and local writes.
func runPass[T any](
	ctx context.Context,
	shape Shape,
	entity string,
	drafts []T,
	onProgress ProgressFunc,
	label func(T) string,
	attempt func(context.Context, T) error,
) Outcome {
	total := len(drafts)
	pass := uuid.NewString()

	if total == 0 {
		slog.Debug("sync pass empty", "pass", pass, "entity", entity)
		return Success{Message: "no draft " + entity + " to sync", Count: 0}
	}

	slog.Info("sync pass started", "pass", pass, "entity", entity, "drafts", total, "shape", shapeName(shape))

	var sent int64
	deliver := func(ctx context.Context, i int, rec T) {
		if err := attempt(ctx, rec); err != nil {
			// Skip and continue; the record stays DRAFT for the next pass.
			slog.Warn("record sync failed",
				"pass", pass, "entity", entity, "record", i+1, "label", label(rec), "error", err)
			return
		}
		atomic.AddInt64(&sent, 1)
	}

	switch shape {
	case Concurrent:
		var g errgroup.Group
		for i, rec := range drafts {
			if ctx.Err() != nil {
				break
			}
			if onProgress != nil {
				onProgress(Progress{Current: i + 1, Total: total, Label: label(rec)})
			}
			i, rec := i, rec
			g.Go(func() error {
				deliver(ctx, i, rec)
				return nil
			})
		}
		// Join barrier: the count is read only after every launched attempt
		// finished.
		g.Wait()

	default:
		for i, rec := range drafts {
			if ctx.Err() != nil {
				break
			}
			if onProgress != nil {
				onProgress(Progress{Current: i + 1, Total: total, Label: label(rec)})
			}
			deliver(ctx, i, rec)
		}
	}

	n := int(atomic.LoadInt64(&sent))
	slog.Info("sync pass finished", "pass", pass, "entity", entity, "sent", n, "drafts", total)
	return Success{
		Message: passMessage(entity, n, total),
		Count:   n,
	}
}

func passMessage(entity string, sent, total int) string {
	return fmt.Sprintf("synced %d of %d %s", sent, total, entity)
}

func shapeName(s Shape) string {
	if s == Concurrent {
		return "concurrent"
	}
	return "sequential"
}
