package syncer

import "fmt"

// Outcome is the closed result type of a sync pass. Exactly three variants
// exist: Success, Failure and Progress. The unexported method keeps the set
// closed so a type switch over outcomes is exhaustive.
type Outcome interface {
	outcome()
	String() string
}

// Success is the terminal outcome of a pass that ran to completion. Count is
// the number of records that transitioned to SENT; partial completion is
// still Success, with the shortfall carried in Message.
type Success struct {
	Message string
	Count   int
}

// Failure is the terminal outcome of a pass that could not proceed at all,
// e.g. the draft snapshot itself failing. Per-record delivery failures are
// not Failures.
type Failure struct {
	Message string
	Err     error
}

// Progress reports one attempted record, 1-based, before the terminal
// outcome. Delivered through the pass's progress callback; never terminal.
type Progress struct {
	Current int
	Total   int
	Label   string
}

func (Success) outcome()  {}
func (Failure) outcome()  {}
func (Progress) outcome() {}

func (s Success) String() string { return s.Message }

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d %s", p.Current, p.Total, p.Label)
}

// ProgressFunc receives per-record progress events. A nil ProgressFunc is
// valid and means the caller wants no progress feedback.
type ProgressFunc func(Progress)
