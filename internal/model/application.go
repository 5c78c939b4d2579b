package model

import (
	"time"
)

// Status 申请所处的流程阶段（闭集）
type Status string

const (
	StatusApplied   Status = "APPLIED"
	StatusInterview Status = "INTERVIEW"
	StatusOffer     Status = "OFFER"
	StatusRejected  Status = "REJECTED"
)

// AllStatuses 按流程顺序排列的全部阶段
var AllStatuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid 校验是否为合法阶段
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Company   string    `gorm:"size:200;not null" json:"company"`
	Role      string    `gorm:"size:200;not null" json:"role"`
	Status    Status    `gorm:"size:20;not null;default:APPLIED;index" json:"status"`
	Position  int       `gorm:"not null;default:0" json:"position"` // 列内顺序，每列保持 0..n-1 紧凑
	Location  string    `gorm:"size:200" json:"location,omitempty"`
	JobURL    string    `gorm:"size:500" json:"job_url,omitempty"`
	AISummary string    `gorm:"type:text" json:"ai_summary,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
