package model

import (
	"time"
)

// 事件类型
const (
	EventCreated      = "CREATED"
	EventStatusChange = "STATUS_CHANGE"
)

// ApplicationEvent 申请生命周期事件，只追加不修改
type ApplicationEvent struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	ApplicationID int64     `gorm:"not null;index" json:"application_id"`
	Type          string    `gorm:"size:20;not null" json:"type"` // CREATED, STATUS_CHANGE
	FromStatus    *Status   `gorm:"size:20" json:"from_status,omitempty"`
	ToStatus      Status    `gorm:"size:20;not null" json:"to_status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (ApplicationEvent) TableName() string {
	return "application_events"
}
