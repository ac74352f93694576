package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gensol-dev/storefront/internal/orderlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func entryAt(orderID string, at time.Time) *orderlog.Entry {
	return &orderlog.Entry{
		OrderID:   orderID,
		TenantID:  "t1",
		Phone:     "5491112345678",
		Payload:   `{"items":[]}`,
		Message:   "Order%23",
		CreatedAt: at,
	}
}

func TestRepository_SaveAndGetLatest(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, entryAt("AB12", now.Add(-time.Minute))))
	require.NoError(t, repo.Save(ctx, entryAt("AB12", now)))

	latest, err := repo.GetLatest(ctx, "AB12")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "AB12", latest.OrderID)
	assert.Equal(t, "t1", latest.TenantID)
	assert.WithinDuration(t, now, latest.CreatedAt, time.Second)
}

func TestRepository_GetLatestMissing(t *testing.T) {
	repo := openTestRepo(t)

	latest, err := repo.GetLatest(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now().UTC()

	for i, id := range []string{"AAAA", "BBBB", "CCCC"} {
		require.NoError(t, repo.Save(ctx, entryAt(id, now.Add(time.Duration(i)*time.Second))))
	}

	entries, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "CCCC", entries[0].OrderID)
	assert.Equal(t, "BBBB", entries[1].OrderID)
}
