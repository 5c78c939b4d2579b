package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// PositionUpdate 一次看板变更中单条申请的目标状态与列内顺序
type PositionUpdate struct {
	ID       int64
	Status   model.Status
	Position int
}

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// ApplyUpdates 在单个事务内落盘一次看板变更的全部写入。
// 任何一条更新失败（包括目标行不存在）都会整体回滚，
// 保证每列顺序 0..n-1 的紧凑性不会因部分写入被破坏。
func (r *BoardRepository) ApplyUpdates(updates []PositionUpdate, events []model.ApplicationEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&model.Application{}).
				Where("id = ?", u.ID).
				Updates(map[string]interface{}{
					"status":   u.Status,
					"position": u.Position,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		for i := range events {
			if err := tx.Create(&events[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
