package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Append 追加一条事件（事件只增不改）
func (r *EventRepository) Append(event *model.ApplicationEvent) error {
	return r.db.Create(event).Error
}

// ListAllOrdered 获取全部事件，按 (申请, 时间, 插入顺序) 排列，供洞察计算使用
func (r *EventRepository) ListAllOrdered() ([]model.ApplicationEvent, error) {
	var events []model.ApplicationEvent
	err := r.db.Where("type IN ?", []string{model.EventCreated, model.EventStatusChange}).
		Order("application_id ASC, created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

// ListByApplicationID 获取单个申请的事件时间线
func (r *EventRepository) ListByApplicationID(applicationID int64) ([]model.ApplicationEvent, error) {
	var events []model.ApplicationEvent
	err := r.db.Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

// ListByApplicationIDs 批量获取多个申请的事件，排列方式同 ListAllOrdered
func (r *EventRepository) ListByApplicationIDs(ids []int64) ([]model.ApplicationEvent, error) {
	var events []model.ApplicationEvent
	err := r.db.Where("application_id IN ? AND type IN ?", ids, []string{model.EventCreated, model.EventStatusChange}).
		Order("application_id ASC, created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}
