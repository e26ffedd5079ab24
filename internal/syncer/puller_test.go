package syncer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druryyl/btrade/internal/model"
)

func TestPuller_PullAllReplacesEveryMirror(t *testing.T) {
	remote := &fakeMaster{
		items:       []model.Item{{ID: "B-1", Code: "SKU-1"}},
		customers:   []model.Customer{{ID: "C-1", Code: "TK001"}, {ID: "C-2", Code: "TK002"}},
		salespeople: []model.SalesPerson{{ID: "S-1", Code: "SLS01"}},
	}
	mirror := &fakeMirror{}

	p := NewPuller(mirror, remote)
	require.NoError(t, p.PullAll(context.Background()))

	assert.Len(t, mirror.items, 1)
	assert.Len(t, mirror.customers, 2)
	assert.Len(t, mirror.salespeople, 1)
}

func TestPuller_RemoteErrorPropagates(t *testing.T) {
	remote := &fakeMaster{err: errors.New("503 from upstream")}
	mirror := &fakeMirror{}

	p := NewPuller(mirror, remote)
	err := p.PullAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, remote.err)
	assert.Empty(t, mirror.items, "stale mirror stays untouched on a failed pull")
}
