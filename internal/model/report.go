package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// jsonColumnBytes 取出 JSON 列的原始字节。
// mysql 驱动给 []byte，sqlite 驱动对 TEXT 列常给 string，两者都要认。
func jsonColumnBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	}
	return nil, false
}

// StringArray 用于 JSON 数组字段
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	bytes, ok := jsonColumnBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// StatusCounts 按阶段统计的计数，存为 JSON
type StatusCounts map[Status]int

func (m StatusCounts) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *StatusCounts) Scan(value interface{}) error {
	if value == nil {
		*m = StatusCounts{}
		return nil
	}
	bytes, ok := jsonColumnBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// StageAverages 按阶段统计的平均天数，存为 JSON
type StageAverages map[Status]float64

func (m StageAverages) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *StageAverages) Scan(value interface{}) error {
	if value == nil {
		*m = StageAverages{}
		return nil
	}
	bytes, ok := jsonColumnBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// DailyCount 单日新建申请数
type DailyCount struct {
	Date  string `json:"date"` // UTC 日期，YYYY-MM-DD
	Count int    `json:"count"`
}

// DailyCounts 近 30 天逐日计数，存为 JSON
type DailyCounts []DailyCount

func (d DailyCounts) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	return json.Marshal(d)
}

func (d *DailyCounts) Scan(value interface{}) error {
	if value == nil {
		*d = DailyCounts{}
		return nil
	}
	bytes, ok := jsonColumnBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// FunnelRates 相邻阶段转化率
type FunnelRates struct {
	AppliedToInterview float64 `json:"applied_to_interview"`
	InterviewToOffer   float64 `json:"interview_to_offer"`
	OfferToAccepted    float64 `json:"offer_to_accepted"`
}

func (f FunnelRates) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FunnelRates) Scan(value interface{}) error {
	if value == nil {
		*f = FunnelRates{}
		return nil
	}
	bytes, ok := jsonColumnBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, f)
}

// CoachReport 某次洞察计算的不可变快照，用于历史对比
type CoachReport struct {
	ID                int64         `gorm:"primaryKey" json:"id"`
	RangeDays         int           `gorm:"not null;index" json:"range_days"` // 7 或 30
	TotalApplications int           `gorm:"not null" json:"total_applications"`
	ByStatus          StatusCounts  `gorm:"type:json" json:"by_status"`
	DailyCreated      DailyCounts   `gorm:"type:json" json:"daily_created"`
	Funnel            FunnelRates   `gorm:"type:json" json:"funnel"`
	AvgDaysInPipeline float64       `gorm:"not null" json:"avg_days_in_pipeline"`
	AvgTimePerStage   StageAverages `gorm:"type:json" json:"avg_time_per_stage"`
	ReachedCount      int           `gorm:"not null" json:"reached_count"` // 各阶段触达数合计（历史趋势用）
	Title             string        `gorm:"size:200" json:"title"`
	Summary           string        `gorm:"type:text" json:"summary"`
	Priorities        StringArray   `gorm:"type:json" json:"priorities"`
	CreatedAt         time.Time     `gorm:"index" json:"created_at"`
}

func (CoachReport) TableName() string {
	return "coach_reports"
}
