package dto

import (
	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// GenerateReportRequest 生成复盘报告请求
type GenerateReportRequest struct {
	RangeDays int   `json:"range_days" binding:"required,oneof=7 30"`
	Save      *bool `json:"save,omitempty"` // 默认保存
}

// GenerateReportResponse 生成复盘报告响应
type GenerateReportResponse struct {
	ReportID int64              `json:"report_id,omitempty"`
	Report   *model.CoachReport `json:"report"`
}

// ReportListItem 报告历史列表项
type ReportListItem struct {
	ID                int64   `json:"id"`
	RangeDays         int     `json:"range_days"`
	TotalApplications int     `json:"total_applications"`
	AvgDaysInPipeline float64 `json:"avg_days_in_pipeline"`
	ReachedCount      int     `json:"reached_count"`
	Title             string  `json:"title"`
	CreatedAt         string  `json:"created_at"`
}

// PctDeltas 各指标的百分比变化，分母为 0 时为 null
type PctDeltas struct {
	TotalApplications *float64 `json:"total_applications"`
	AvgDaysInPipeline *float64 `json:"avg_days_in_pipeline"`
	ReachedCount      *float64 `json:"reached_count"`
}

// CompareDelta 最近 7 天报告相对 30 天报告的变化
type CompareDelta struct {
	TotalApplications int       `json:"total_applications"`
	AvgDaysInPipeline float64   `json:"avg_days_in_pipeline"`
	ReachedCount      int       `json:"reached_count"`
	Pct               PctDeltas `json:"pct"`
}

// ActionCard 对比结果附带的行动建议
type ActionCard struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Priority string `json:"priority"` // high, medium, low
}

// CompareResponse 报告对比响应
type CompareResponse struct {
	Latest7     *model.CoachReport `json:"latest7"`
	Latest30    *model.CoachReport `json:"latest30"`
	Delta       *CompareDelta      `json:"delta"`
	ActionCards []ActionCard       `json:"action_cards"`
}
