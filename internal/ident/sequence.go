package ident

import (
	"context"
	"fmt"
	"time"
)

// SequenceStore persists one (period, counter) pair per logical sequence
// namespace so counters survive process restarts. The store package
// implements this over its sequences table.
type SequenceStore interface {
	// SequenceState returns the stored period key and counter for a
	// namespace. A namespace never written before returns ("", 0, nil).
	SequenceState(ctx context.Context, namespace string) (period string, counter int, err error)

	// SetSequenceState upserts a namespace's period key and counter.
	SetSequenceState(ctx context.Context, namespace, period string, counter int) error
}

// Sequence mints human-friendly local order codes of the form YYmDDD-NNN:
// two-digit year, single hex month digit (1..C), the configured device code,
// and a 3-digit counter that resets to 1 whenever the year+month key changes.
//
// Codes are locally unique per device, not globally unique: two devices with
// the same code will mint colliding values. The global identifier (New) is
// the identity key; this is a human-facing reference only. Year truncation
// to two digits is a known limitation, not masked here.
type Sequence struct {
	store      SequenceStore
	namespace  string
	deviceCode string
	now        func() time.Time
}

// NewSequence returns a code minter for one namespace. now may be nil, in
// which case the wall clock is used.
func NewSequence(store SequenceStore, namespace, deviceCode string, now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{store: store, namespace: namespace, deviceCode: deviceCode, now: now}
}

// Next mints the next code, persisting the advanced counter before
// returning. Counter state is keyed by year+month: same key increments,
// changed key resets to 1.
//
// The read-modify-write is not transactional: callers within one namespace
// must be serialized (the capture flow mints one code per record edit, never
// concurrently) or two callers can mint the same code.
func (s *Sequence) Next(ctx context.Context) (string, error) {
	t := s.now()
	period := fmt.Sprintf("%02d%X", t.Year()%100, int(t.Month()))

	storedPeriod, counter, err := s.store.SequenceState(ctx, s.namespace)
	if err != nil {
		return "", fmt.Errorf("sequence %s: read state: %w", s.namespace, err)
	}

	if storedPeriod == period {
		counter++
	} else {
		counter = 1
	}

	if err := s.store.SetSequenceState(ctx, s.namespace, period, counter); err != nil {
		return "", fmt.Errorf("sequence %s: write state: %w", s.namespace, err)
	}

	return fmt.Sprintf("%s%s-%03d", period, s.deviceCode, counter), nil
}
