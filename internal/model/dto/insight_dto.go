package dto

import (
	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// 建议级别
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Tip 基于指标的启发式建议
type Tip struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Severity string `json:"severity"` // high, medium, low
	Metric   string `json:"metric,omitempty"`
}

// InsightsSnapshot 一次洞察计算的完整输出
type InsightsSnapshot struct {
	TotalApplications int                 `json:"total_applications"`
	ByStatus          model.StatusCounts  `json:"by_status"`
	AvgDaysInPipeline float64             `json:"avg_days_in_pipeline"` // 创建至今的平均天数（年龄指标）
	Funnel            model.FunnelRates   `json:"funnel"`
	DailyCreated      model.DailyCounts   `json:"daily_created"`
	AvgTimePerStage   model.StageAverages `json:"avg_time_per_stage"` // 各阶段平均停留天数
	ReachedCount      model.StatusCounts  `json:"reached_count"`
	Tips              []Tip               `json:"tips"`
}
