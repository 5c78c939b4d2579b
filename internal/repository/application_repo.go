package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreateWithEvent 创建申请并在同一事务内追加 CREATED 事件
func (r *ApplicationRepository) CreateWithEvent(app *model.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		event := &model.ApplicationEvent{
			ApplicationID: app.ID,
			Type:          model.EventCreated,
			ToStatus:      app.Status,
		}
		return tx.Create(event).Error
	})
}

func (r *ApplicationRepository) GetByID(id int64) (*model.Application, error) {
	var app model.Application
	err := r.db.Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListAll 获取全部申请，按创建时间倒序
func (r *ApplicationRepository) ListAll() ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

// ListCreatedSince 获取指定时间之后创建的申请
func (r *ApplicationRepository) ListCreatedSince(since time.Time) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("created_at >= ?", since).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByIDs(ids []int64) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("id IN ?", ids).Find(&apps).Error
	return apps, err
}

// ListByStatusOrdered 获取某列全部申请，按列内顺序排列
func (r *ApplicationRepository) ListByStatusOrdered(status model.Status) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("status = ?", status).
		Order("position ASC, id ASC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) CountByStatus(status model.Status) (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// UpdateFields 更新单条申请的部分字段
func (r *ApplicationRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Application{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteCascade 删除申请及其事件，并在同一事务内压实所在列的顺序
func (r *ApplicationRepository) DeleteCascade(app *model.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", app.ID).
			Delete(&model.ApplicationEvent{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.Application{}, app.ID).Error; err != nil {
			return err
		}

		var remaining []model.Application
		if err := tx.Where("status = ?", app.Status).
			Order("position ASC, id ASC").
			Find(&remaining).Error; err != nil {
			return err
		}

		for i := range remaining {
			if remaining[i].Position == i {
				continue
			}
			if err := tx.Model(&model.Application{}).
				Where("id = ?", remaining[i].ID).
				Update("position", i).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
