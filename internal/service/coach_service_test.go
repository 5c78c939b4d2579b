package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
	"github.com/qs3c/jobtrack_go_server/internal/testutil"
)

func setupCoachService(t *testing.T) (*CoachService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// No OpenAI client: narratives fall back to rule-based text
	coachService := NewCoachService(appRepo, eventRepo, reportRepo, nil)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return coachService, db, cleanup
}

func boolPtr(b bool) *bool {
	return &b
}

func TestCoachService_Generate_WindowsByCreationTime(t *testing.T) {
	svc, db, cleanup := setupCoachService(t)
	defer cleanup()

	now := time.Now()
	testutil.TestApplication(t, db, testutil.WithCreatedAt(now.AddDate(0, 0, -3)))
	testutil.TestApplication(t, db, testutil.WithCreatedAt(now.AddDate(0, 0, -10)))

	resp, err := svc.Generate(context.Background(), &dto.GenerateReportRequest{RangeDays: 7})
	require.NoError(t, err)

	require.NotNil(t, resp.Report)
	assert.Equal(t, 7, resp.Report.RangeDays)
	assert.Equal(t, 1, resp.Report.TotalApplications)
	assert.NotEmpty(t, resp.Report.Summary)
	assert.NotZero(t, resp.ReportID)

	// Saved by default
	var count int64
	require.NoError(t, db.Model(&model.CoachReport{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCoachService_Generate_WithoutSave(t *testing.T) {
	svc, db, cleanup := setupCoachService(t)
	defer cleanup()

	resp, err := svc.Generate(context.Background(), &dto.GenerateReportRequest{
		RangeDays: 30,
		Save:      boolPtr(false),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Report)
	assert.Equal(t, 0, resp.Report.TotalApplications)

	var count int64
	require.NoError(t, db.Model(&model.CoachReport{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCoachService_History_ClampsTake(t *testing.T) {
	svc, db, cleanup := setupCoachService(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		testutil.TestReport(t, db, testutil.WithReportCreatedAt(time.Now().Add(-time.Duration(i)*time.Hour)))
	}

	items, err := svc.History(0)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = svc.History(2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCoachService_GetByID_NotFound(t *testing.T) {
	svc, _, cleanup := setupCoachService(t)
	defer cleanup()

	_, err := svc.GetByID(99999)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestCoachService_Compare_Empty(t *testing.T) {
	svc, _, cleanup := setupCoachService(t)
	defer cleanup()

	resp, err := svc.Compare()
	require.NoError(t, err)

	assert.Nil(t, resp.Latest7)
	assert.Nil(t, resp.Latest30)
	assert.Nil(t, resp.Delta)
	require.NotEmpty(t, resp.ActionCards)
	assert.Equal(t, dto.SeverityHigh, resp.ActionCards[0].Priority)
}

func TestCoachService_Compare_OneSided(t *testing.T) {
	svc, db, cleanup := setupCoachService(t)
	defer cleanup()

	testutil.TestReport(t, db, testutil.WithRangeDays(7))

	resp, err := svc.Compare()
	require.NoError(t, err)

	assert.NotNil(t, resp.Latest7)
	assert.Nil(t, resp.Latest30)
	assert.Nil(t, resp.Delta)
	require.NotEmpty(t, resp.ActionCards)
}

func TestCoachService_Compare_Delta(t *testing.T) {
	svc, db, cleanup := setupCoachService(t)
	defer cleanup()

	testutil.TestReport(t, db,
		testutil.WithRangeDays(7),
		testutil.WithReportMetrics(6, 4.0, 8),
	)
	testutil.TestReport(t, db,
		testutil.WithRangeDays(30),
		testutil.WithReportMetrics(4, 5.0, 4),
	)

	resp, err := svc.Compare()
	require.NoError(t, err)

	require.NotNil(t, resp.Delta)
	assert.Equal(t, 2, resp.Delta.TotalApplications)
	assert.Equal(t, -1.0, resp.Delta.AvgDaysInPipeline)
	assert.Equal(t, 4, resp.Delta.ReachedCount)

	require.NotNil(t, resp.Delta.Pct.TotalApplications)
	assert.InDelta(t, 50.0, *resp.Delta.Pct.TotalApplications, 1e-9)
	require.NotNil(t, resp.Delta.Pct.AvgDaysInPipeline)
	assert.InDelta(t, -20.0, *resp.Delta.Pct.AvgDaysInPipeline, 1e-9)
	require.NotNil(t, resp.Delta.Pct.ReachedCount)
	assert.InDelta(t, 100.0, *resp.Delta.Pct.ReachedCount, 1e-9)
}

func TestCoachService_Compare_ZeroBaselineGivesNilPct(t *testing.T) {
	svc, db, cleanup := setupCoachService(t)
	defer cleanup()

	testutil.TestReport(t, db,
		testutil.WithRangeDays(7),
		testutil.WithReportMetrics(3, 2.0, 3),
	)
	testutil.TestReport(t, db,
		testutil.WithRangeDays(30),
		testutil.WithReportMetrics(0, 0, 0),
	)

	resp, err := svc.Compare()
	require.NoError(t, err)

	require.NotNil(t, resp.Delta)
	assert.Nil(t, resp.Delta.Pct.TotalApplications)
	assert.Nil(t, resp.Delta.Pct.AvgDaysInPipeline)
	assert.Nil(t, resp.Delta.Pct.ReachedCount)
}

func TestPctDelta(t *testing.T) {
	v := pctDelta(6, 4)
	require.NotNil(t, v)
	assert.InDelta(t, 50.0, *v, 1e-9)

	v = pctDelta(3, 6)
	require.NotNil(t, v)
	assert.InDelta(t, -50.0, *v, 1e-9)

	assert.Nil(t, pctDelta(5, 0))
}
