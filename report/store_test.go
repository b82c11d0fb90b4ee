package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a miniredis instance and returns a connected Store.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewStore(client)
}

func testReport(id, username string, createdAt time.Time) *Report {
	return &Report{
		ReportID:  id,
		Username:  username,
		CreatedAt: createdAt,
		Report: Payload{
			AllProfiles: []Profile{
				{Site: "GitHub", URL: fmt.Sprintf("https://github.com/%s", username)},
			},
		},
	}
}

func TestStoreSaveGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, testReport("agg-1", "alice", created)))

	got, err := store.Get(ctx, "agg-1")
	require.NoError(t, err)
	assert.Equal(t, "agg-1", got.ReportID)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.CreatedAt.Equal(created))
	require.Len(t, got.Report.AllProfiles, 1)
	assert.Equal(t, "GitHub", got.Report.AllProfiles[0].Site)
}

func TestStoreGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSaveInvalidID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Save(context.Background(), &Report{Username: "alice"})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestStoreList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := testReport(fmt.Sprintf("agg-%d", i), "alice", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Save(ctx, r))
	}

	t.Run("newest first", func(t *testing.T) {
		summaries, err := store.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, summaries, 3)
		assert.Equal(t, "agg-2", summaries[0].ReportID)
		assert.Equal(t, "agg-0", summaries[2].ReportID)
	})

	t.Run("pagination", func(t *testing.T) {
		summaries, err := store.List(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "agg-1", summaries[0].ReportID)
	})
}

func TestStoreByUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Save(ctx, testReport("agg-1", "alice", now)))
	require.NoError(t, store.Save(ctx, testReport("agg-2", "alice", now)))
	require.NoError(t, store.Save(ctx, testReport("agg-3", "bob", now)))

	ids, err := store.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"agg-1", "agg-2"}, ids)
}

func TestStoreDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testReport("agg-1", "alice", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "agg-1"))

	_, err := store.Get(ctx, "agg-1")
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := store.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, ids)

	summaries, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	t.Run("deleting again returns not found", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, "agg-1"), ErrNotFound)
	})
}
