package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
	"github.com/qs3c/jobtrack_go_server/internal/testutil"
)

func setupApplicationService(t *testing.T) (*ApplicationService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	boardRepo := repository.NewBoardRepository(db)

	insights := NewInsightService(appRepo, eventRepo, nil)
	boardService := NewBoardService(appRepo, boardRepo, insights)
	applicationService := NewApplicationService(appRepo, eventRepo, boardService, insights)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return applicationService, db, cleanup
}

func TestApplicationService_Create_AppendsToColumnEnd(t *testing.T) {
	svc, db, cleanup := setupApplicationService(t)
	defer cleanup()

	testutil.TestApplication(t, db, testutil.WithPosition(0))
	testutil.TestApplication(t, db, testutil.WithPosition(1))

	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{
		Company: "Acme",
		Role:    "Backend Engineer",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusApplied, app.Status)
	assert.Equal(t, 2, app.Position)

	// A CREATED event is recorded in the same transaction
	var events []model.ApplicationEvent
	err = db.Where("application_id = ?", app.ID).Find(&events).Error
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCreated, events[0].Type)
	assert.Equal(t, model.StatusApplied, events[0].ToStatus)
}

func TestApplicationService_Create_ExplicitStatus(t *testing.T) {
	svc, _, cleanup := setupApplicationService(t)
	defer cleanup()

	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{
		Company: "Acme",
		Role:    "Backend Engineer",
		Status:  string(model.StatusInterview),
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusInterview, app.Status)
	assert.Equal(t, 0, app.Position)
}

func TestApplicationService_Create_InvalidStatus(t *testing.T) {
	svc, _, cleanup := setupApplicationService(t)
	defer cleanup()

	_, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{
		Company: "Acme",
		Role:    "Backend Engineer",
		Status:  "SHORTLIST",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplicationService_Get_WithEvents(t *testing.T) {
	svc, _, cleanup := setupApplicationService(t)
	defer cleanup()

	app, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{
		Company: "Acme",
		Role:    "Backend Engineer",
	})
	require.NoError(t, err)

	detail, err := svc.Get(app.ID)
	require.NoError(t, err)

	assert.Equal(t, app.ID, detail.Application.ID)
	require.Len(t, detail.Events, 1)
	assert.Equal(t, model.EventCreated, detail.Events[0].Type)
}

func TestApplicationService_Get_NotFound(t *testing.T) {
	svc, _, cleanup := setupApplicationService(t)
	defer cleanup()

	_, err := svc.Get(99999)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationService_Update_Fields(t *testing.T) {
	svc, db, cleanup := setupApplicationService(t)
	defer cleanup()

	app := testutil.TestApplication(t, db, testutil.WithPosition(0))

	company := "Globex"
	location := "Remote"
	updated, err := svc.Update(context.Background(), app.ID, &dto.UpdateApplicationRequest{
		Company:  &company,
		Location: &location,
	})
	require.NoError(t, err)

	assert.Equal(t, "Globex", updated.Company)
	assert.Equal(t, "Remote", updated.Location)
	assert.Equal(t, model.StatusApplied, updated.Status)
}

func TestApplicationService_Update_StatusMovesToColumnEnd(t *testing.T) {
	svc, db, cleanup := setupApplicationService(t)
	defer cleanup()

	app := testutil.TestApplication(t, db, testutil.WithPosition(0))
	testutil.TestApplication(t, db, testutil.WithStatus(model.StatusInterview), testutil.WithPosition(0))

	status := string(model.StatusInterview)
	updated, err := svc.Update(context.Background(), app.ID, &dto.UpdateApplicationRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusInterview, updated.Status)
	assert.Equal(t, 1, updated.Position)

	// The status change goes through the board, so the event is appended
	var count int64
	err = db.Model(&model.ApplicationEvent{}).
		Where("application_id = ? AND type = ?", app.ID, model.EventStatusChange).
		Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestApplicationService_Update_SameStatusIsNoop(t *testing.T) {
	svc, db, cleanup := setupApplicationService(t)
	defer cleanup()

	app := testutil.TestApplication(t, db, testutil.WithPosition(0))

	status := string(model.StatusApplied)
	updated, err := svc.Update(context.Background(), app.ID, &dto.UpdateApplicationRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, updated.Position)

	var count int64
	err = db.Model(&model.ApplicationEvent{}).
		Where("type = ?", model.EventStatusChange).
		Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestApplicationService_Delete_CascadesAndCompacts(t *testing.T) {
	svc, db, cleanup := setupApplicationService(t)
	defer cleanup()

	a0, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Company: "A", Role: "R"})
	require.NoError(t, err)
	a1, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Company: "B", Role: "R"})
	require.NoError(t, err)
	a2, err := svc.Create(context.Background(), &dto.CreateApplicationRequest{Company: "C", Role: "R"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), a1.ID))

	// Events of the deleted application are gone
	var eventCount int64
	err = db.Model(&model.ApplicationEvent{}).Where("application_id = ?", a1.ID).Count(&eventCount).Error
	require.NoError(t, err)
	assert.Equal(t, int64(0), eventCount)

	// Remaining column is compacted to 0..n-1
	var apps []model.Application
	err = db.Where("status = ?", model.StatusApplied).Order("position ASC").Find(&apps).Error
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, a0.ID, apps[0].ID)
	assert.Equal(t, 0, apps[0].Position)
	assert.Equal(t, a2.ID, apps[1].ID)
	assert.Equal(t, 1, apps[1].Position)
}

func TestApplicationService_Delete_NotFound(t *testing.T) {
	svc, _, cleanup := setupApplicationService(t)
	defer cleanup()

	err := svc.Delete(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
