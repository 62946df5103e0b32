package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
	"github.com/shirokuma-tools/shirokuma-docs/internal/db"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	database, cleanup, err := db.NewDatabase(config.CacheConfig{
		Path: filepath.Join(t.TempDir(), "cache.db"),
	})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewStore(database.DB)
}

func TestCacheRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, hit, err := store.GetCached(ctx, "issues/acme/site", time.Hour)
	require.NoError(t, err)
	assert.False(t, hit, "empty cache must miss")

	payload := []byte(`[{"number":1}]`)
	require.NoError(t, store.PutCached(ctx, "issues/acme/site", payload))

	got, hit, err := store.GetCached(ctx, "issues/acme/site", time.Hour)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, payload, got)
}

func TestCacheExpiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutCached(ctx, "k", []byte("v")))

	// A zero maxAge disables the age check entirely.
	_, hit, err := store.GetCached(ctx, "k", 0)
	require.NoError(t, err)
	assert.True(t, hit)

	// An entry written just now is older than a negative TTL.
	_, hit, err = store.GetCached(ctx, "k", -time.Second)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheOverwriteAndInvalidate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutCached(ctx, "k", []byte("old")))
	require.NoError(t, store.PutCached(ctx, "k", []byte("new")))

	got, hit, err := store.GetCached(ctx, "k", time.Hour)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("new"), got)

	require.NoError(t, store.InvalidateCached(ctx, "k"))
	require.NoError(t, store.InvalidateCached(ctx, "k"), "double invalidate is fine")

	_, hit, err = store.GetCached(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestScanRunHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		run := &core.ScanRun{
			Kind:       "featuremap",
			SourceDir:  "src",
			Files:      10 + i,
			StartedAt:  start,
			FinishedAt: start.Add(time.Duration(i+1) * time.Second),
		}
		require.NoError(t, store.RecordScanRun(ctx, run))
		assert.NotZero(t, run.ID)
	}
	require.NoError(t, store.RecordScanRun(ctx, &core.ScanRun{
		Kind: "testcatalog", SourceDir: "src", Files: 2,
		StartedAt: start, FinishedAt: start,
	}))

	runs, err := store.RecentScanRuns(ctx, "featuremap", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 12, runs[0].Files, "most recent first")
	assert.Equal(t, 11, runs[1].Files)
}
