package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druryyl/btrade/internal/ident"
	"github.com/druryyl/btrade/internal/model"
)

func draftCheckIn() model.CheckIn {
	return model.CheckIn{
		ID:           ident.New(),
		Date:         "2025-08-30",
		Time:         "09:15:00",
		UserName:     "andi",
		Lat:          -6.2001,
		Lon:          106.8166,
		Accuracy:     12.5,
		Status:       model.StatusDraft,
		CustomerID:   "C-1",
		CustomerCode: "TK001",
		CustomerName: "Toko Sinar Jaya",
	}
}

func TestSaveCheckIn_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := draftCheckIn()
	require.NoError(t, s.SaveCheckIn(ctx, c))

	got, err := s.GetCheckIn(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestSaveCheckIn_WriteThrough(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := draftCheckIn()
	require.NoError(t, s.SaveCheckIn(ctx, c))

	c.Accuracy = 4.0
	require.NoError(t, s.SaveCheckIn(ctx, c))

	got, err := s.GetCheckIn(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Accuracy)
}

func TestDraftCheckIns_FiltersSent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	draft := draftCheckIn()
	sent := draftCheckIn()
	sent.Status = model.StatusSent
	require.NoError(t, s.SaveCheckIn(ctx, draft))
	require.NoError(t, s.SaveCheckIn(ctx, sent))

	drafts, err := s.DraftCheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)
}

func TestMarkCheckInSent_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := draftCheckIn()
	require.NoError(t, s.SaveCheckIn(ctx, c))
	require.NoError(t, s.MarkCheckInSent(ctx, c.ID))

	got, err := s.GetCheckIn(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, got.Status)

	assert.ErrorIs(t, s.MarkCheckInSent(ctx, c.ID), ErrStatusTransition)
	assert.ErrorIs(t, s.MarkCheckInSent(ctx, ident.New()), ErrNotFound)
}

func TestDeleteCheckIn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := draftCheckIn()
	require.NoError(t, s.SaveCheckIn(ctx, c))
	require.NoError(t, s.DeleteCheckIn(ctx, c.ID))

	_, err := s.GetCheckIn(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
