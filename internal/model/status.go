package model

import "fmt"

// SyncStatus is the lifecycle state of a locally-authored record.
type SyncStatus string

const (
	// StatusDraft marks a record created locally and not yet acknowledged
	// by the remote service.
	StatusDraft SyncStatus = "DRAFT"

	// StatusSent marks a record the remote service has accepted. Terminal:
	// there is no SENT -> DRAFT transition.
	StatusSent SyncStatus = "SENT"
)

// Valid reports whether s is one of the known status values.
func (s SyncStatus) Valid() bool {
	return s == StatusDraft || s == StatusSent
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// transition. The only legal move is DRAFT -> SENT.
func (s SyncStatus) CanTransition(next SyncStatus) bool {
	return s == StatusDraft && next == StatusSent
}

// ParseSyncStatus converts a stored string into a SyncStatus, rejecting
// anything outside the closed set.
func ParseSyncStatus(raw string) (SyncStatus, error) {
	s := SyncStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown sync status %q", raw)
	}
	return s, nil
}
