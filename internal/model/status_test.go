package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStatus_CanTransition(t *testing.T) {
	assert.True(t, StatusDraft.CanTransition(StatusSent))

	// SENT is terminal.
	assert.False(t, StatusSent.CanTransition(StatusDraft))
	assert.False(t, StatusSent.CanTransition(StatusSent))
	assert.False(t, StatusDraft.CanTransition(StatusDraft))
}

func TestParseSyncStatus(t *testing.T) {
	s, err := ParseSyncStatus("DRAFT")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, s)

	s, err = ParseSyncStatus("SENT")
	require.NoError(t, err)
	assert.Equal(t, StatusSent, s)

	_, err = ParseSyncStatus("draft")
	assert.Error(t, err, "status values are case-sensitive")

	_, err = ParseSyncStatus("PENDING")
	assert.Error(t, err)
}
