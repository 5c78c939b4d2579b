package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// TestApplication 创建测试申请
func TestApplication(t *testing.T, db *gorm.DB, opts ...func(*model.Application)) *model.Application {
	t.Helper()

	app := &model.Application{
		Company: fmt.Sprintf("Test Company %d", time.Now().UnixNano()%10000),
		Role:    "Backend Engineer",
		Status:  model.StatusApplied,
	}

	for _, opt := range opts {
		opt(app)
	}

	if err := db.Create(app).Error; err != nil {
		t.Fatalf("Failed to create test application: %v", err)
	}

	return app
}

// WithCompany 设置公司名
func WithCompany(company string) func(*model.Application) {
	return func(a *model.Application) {
		a.Company = company
	}
}

// WithRole 设置职位
func WithRole(role string) func(*model.Application) {
	return func(a *model.Application) {
		a.Role = role
	}
}

// WithStatus 设置所在列
func WithStatus(status model.Status) func(*model.Application) {
	return func(a *model.Application) {
		a.Status = status
	}
}

// WithPosition 设置列内顺序
func WithPosition(position int) func(*model.Application) {
	return func(a *model.Application) {
		a.Position = position
	}
}

// WithCreatedAt 设置创建时间
func WithCreatedAt(createdAt time.Time) func(*model.Application) {
	return func(a *model.Application) {
		a.CreatedAt = createdAt
	}
}

// TestEvent 创建测试事件
func TestEvent(t *testing.T, db *gorm.DB, applicationID int64, eventType string, from *model.Status, to model.Status, createdAt time.Time) *model.ApplicationEvent {
	t.Helper()

	event := &model.ApplicationEvent{
		ApplicationID: applicationID,
		Type:          eventType,
		FromStatus:    from,
		ToStatus:      to,
		CreatedAt:     createdAt,
	}

	if err := db.Create(event).Error; err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return event
}

// TestReport 创建测试报告
func TestReport(t *testing.T, db *gorm.DB, opts ...func(*model.CoachReport)) *model.CoachReport {
	t.Helper()

	report := &model.CoachReport{
		RangeDays:         7,
		TotalApplications: 5,
		ByStatus:          model.StatusCounts{model.StatusApplied: 5},
		DailyCreated:      model.DailyCounts{},
		AvgDaysInPipeline: 3.5,
		ReachedCount:      5,
		Title:             "7 日求职复盘",
		Summary:           "测试摘要",
		Priorities:        model.StringArray{},
	}

	for _, opt := range opts {
		opt(report)
	}

	if err := db.Create(report).Error; err != nil {
		t.Fatalf("Failed to create test report: %v", err)
	}

	return report
}

// WithRangeDays 设置报告窗口
func WithRangeDays(days int) func(*model.CoachReport) {
	return func(r *model.CoachReport) {
		r.RangeDays = days
	}
}

// WithReportMetrics 设置报告核心指标
func WithReportMetrics(total int, avgDays float64, reached int) func(*model.CoachReport) {
	return func(r *model.CoachReport) {
		r.TotalApplications = total
		r.AvgDaysInPipeline = avgDays
		r.ReachedCount = reached
	}
}

// WithReportCreatedAt 设置报告创建时间
func WithReportCreatedAt(createdAt time.Time) func(*model.CoachReport) {
	return func(r *model.CoachReport) {
		r.CreatedAt = createdAt
	}
}
