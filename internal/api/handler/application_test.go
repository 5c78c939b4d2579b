package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
	"github.com/qs3c/jobtrack_go_server/internal/service"
	"github.com/qs3c/jobtrack_go_server/internal/testutil"
)

// testContext 本地测试上下文
type testContext struct {
	DB *gorm.DB
}

func setupApplicationHandler(t *testing.T) (*ApplicationHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	boardRepo := repository.NewBoardRepository(db)

	insightService := service.NewInsightService(appRepo, eventRepo, nil)
	boardService := service.NewBoardService(appRepo, boardRepo, insightService)
	applicationService := service.NewApplicationService(appRepo, eventRepo, boardService, insightService)
	handler := NewApplicationHandler(applicationService)

	ctx := &testContext{
		DB: db,
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func TestApplicationHandler_Create_Success(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/applications", handler.Create)

	req := dto.CreateApplicationRequest{
		Company: "Acme",
		Role:    "Backend Engineer",
	}

	w := performRequest(router, "POST", "/applications", req)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// Verify response data
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotZero(t, data["id"])
	assert.Equal(t, "APPLIED", data["status"])
}

func TestApplicationHandler_Create_MissingCompany(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/applications", handler.Create)

	w := performRequest(router, "POST", "/applications", dto.CreateApplicationRequest{
		Role: "Backend Engineer",
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestApplicationHandler_Create_InvalidStatus(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/applications", handler.Create)

	w := performRequest(router, "POST", "/applications", dto.CreateApplicationRequest{
		Company: "Acme",
		Role:    "Backend Engineer",
		Status:  "SHORTLIST",
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestApplicationHandler_Get_WithEvents(t *testing.T) {
	handler, ctx, cleanup := setupApplicationHandler(t)
	defer cleanup()

	app := testutil.TestApplication(t, ctx.DB, testutil.WithPosition(0))
	testutil.TestEvent(t, ctx.DB, app.ID, model.EventCreated, nil, model.StatusApplied, app.CreatedAt)

	router := gin.New()
	router.GET("/applications/:id", handler.Get)

	w := performRequest(router, "GET", fmt.Sprintf("/applications/%d", app.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotNil(t, data["application"])
	events, ok := data["events"].([]interface{})
	require.True(t, ok)
	assert.Len(t, events, 1)
}

func TestApplicationHandler_Get_NotFound(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/applications/:id", handler.Get)

	w := performRequest(router, "GET", "/applications/99999", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestApplicationHandler_Get_InvalidID(t *testing.T) {
	handler, _, cleanup := setupApplicationHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/applications/:id", handler.Get)

	w := performRequest(router, "GET", "/applications/abc", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestApplicationHandler_Update_StatusChange(t *testing.T) {
	handler, ctx, cleanup := setupApplicationHandler(t)
	defer cleanup()

	app := testutil.TestApplication(t, ctx.DB, testutil.WithPosition(0))

	router := gin.New()
	router.PATCH("/applications/:id", handler.Update)

	status := "INTERVIEW"
	w := performRequest(router, "PATCH", fmt.Sprintf("/applications/%d", app.ID), dto.UpdateApplicationRequest{
		Status: &status,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "INTERVIEW", data["status"])
}

func TestApplicationHandler_Delete_Success(t *testing.T) {
	handler, ctx, cleanup := setupApplicationHandler(t)
	defer cleanup()

	app := testutil.TestApplication(t, ctx.DB, testutil.WithPosition(0))

	router := gin.New()
	router.DELETE("/applications/:id", handler.Delete)

	w := performRequest(router, "DELETE", fmt.Sprintf("/applications/%d", app.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	var count int64
	require.NoError(t, ctx.DB.Model(&model.Application{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
