package syncstate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notedrive/internal/client/repositories/syncstate"
	"github.com/dmitrijs2005/notedrive/internal/client/storage"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) syncstate.Repository {
	t.Helper()
	repos, err := storage.InitDatabase(context.Background(),
		"file:syncstate_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	repos.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = repos.DB.Close() })
	return repos.SyncState
}

func TestSQLiteRepository_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	got, err := repo.Get(ctx, "global", syncstate.LastSyncTimeKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, "global", syncstate.LastSyncTimeKey, []byte("2024-01-01T00:00:00Z")))
	require.NoError(t, repo.Set(ctx, "global", syncstate.LastSyncTimeKey, []byte("2024-01-02T00:00:00Z")))

	got, err = repo.Get(ctx, "global", syncstate.LastSyncTimeKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("2024-01-02T00:00:00Z"), got)

	// other owners see their own values
	got, err = repo.Get(ctx, "user_1", syncstate.LastSyncTimeKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Delete(ctx, "global", syncstate.LastSyncTimeKey))
	got, err = repo.Get(ctx, "global", syncstate.LastSyncTimeKey)
	require.NoError(t, err)
	assert.Nil(t, got)
}
