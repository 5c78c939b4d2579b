package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
	"github.com/qs3c/jobtrack_go_server/internal/service"
	"github.com/qs3c/jobtrack_go_server/internal/testutil"
)

func setupInsightHandler(t *testing.T) (*InsightHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)

	insightService := service.NewInsightService(appRepo, eventRepo, nil)
	handler := NewInsightHandler(insightService)

	ctx := &testContext{
		DB: db,
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestInsightHandler_Get(t *testing.T) {
	handler, ctx, cleanup := setupInsightHandler(t)
	defer cleanup()

	app := testutil.TestApplication(t, ctx.DB, testutil.WithPosition(0))
	testutil.TestEvent(t, ctx.DB, app.ID, model.EventCreated, nil, model.StatusApplied, app.CreatedAt)

	router := gin.New()
	router.GET("/insights", handler.Get)

	w := performRequest(router, "GET", "/insights", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total_applications"])
	assert.NotNil(t, data["by_status"])
	assert.NotNil(t, data["funnel"])
	assert.NotNil(t, data["daily_created"])
	assert.NotNil(t, data["tips"])
}

func TestInsightHandler_Get_Empty(t *testing.T) {
	handler, _, cleanup := setupInsightHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/insights", handler.Get)

	w := performRequest(router, "GET", "/insights", nil)
	resp := parseResponse(t, w)

	// Empty store still yields a full snapshot, never an error
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), data["total_applications"])
}
