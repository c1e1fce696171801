package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()

	id, err := r.CreateUser(ctx, "anna", "anna@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = r.CreateUser(ctx, "anna", "other@example.com", "hash")
	assert.Error(t, err)

	gotID, hash, err := r.GetByLogin(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "hash", hash)

	gotID, _, err = r.GetByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, gotID)
}

func TestMemoryAnalyses(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := r.SaveAnalysis(ctx, Analysis{UserID: 1, Tool: "life", Input: json.RawMessage(`{}`), Result: json.RawMessage(`{}`)})
	require.NoError(t, err)
	second, err := r.SaveAnalysis(ctx, Analysis{UserID: 1, Tool: "damage", Input: json.RawMessage(`{}`), Result: json.RawMessage(`{}`)})
	require.NoError(t, err)
	_, err = r.SaveAnalysis(ctx, Analysis{UserID: 2, Tool: "life"})
	require.NoError(t, err)

	list, err := r.ListAnalyses(ctx, 1, "", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)

	list, err = r.ListAnalyses(ctx, 1, "", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = r.ListAnalyses(ctx, 1, "life", 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0].ID)

	a, err := r.GetAnalysis(ctx, 1, first)
	require.NoError(t, err)
	assert.Equal(t, "life", a.Tool)

	_, err = r.GetAnalysis(ctx, 2, first)
	assert.ErrorIs(t, err, ErrNotFound)
}
