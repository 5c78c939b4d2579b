package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/pkg/cache"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
	"github.com/qs3c/jobtrack_go_server/internal/testutil"
)

func setupInsightService(t *testing.T) (*InsightService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	svc := NewInsightService(appRepo, eventRepo, cache.NewCache(client, time.Minute))

	cleanup := func() {
		client.Close()
		mr.Close()
		testutil.CleanupTestDB(t, db)
	}

	return svc, db, cleanup
}

func TestInsightService_Snapshot_UsesCache(t *testing.T) {
	svc, db, cleanup := setupInsightService(t)
	defer cleanup()

	testutil.TestApplication(t, db, testutil.WithPosition(0))

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalApplications)

	// A new application does not show up until the cache is invalidated
	testutil.TestApplication(t, db, testutil.WithPosition(1))

	snap, err = svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalApplications)

	svc.Invalidate(context.Background())

	snap, err = svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.TotalApplications)
}

func TestInsightService_Snapshot_WithoutCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	svc := NewInsightService(appRepo, eventRepo, nil)

	testutil.TestApplication(t, db, testutil.WithPosition(0))

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalApplications)

	// Invalidate with no cache configured is a no-op
	svc.Invalidate(context.Background())
}
