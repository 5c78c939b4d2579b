package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *model.CoachReport) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id int64) (*model.CoachReport, error) {
	var report model.CoachReport
	err := r.db.Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List 获取报告历史，按创建时间倒序
func (r *ReportRepository) List(take int) ([]model.CoachReport, error) {
	var reports []model.CoachReport
	err := r.db.Order("created_at DESC").Limit(take).Find(&reports).Error
	return reports, err
}

// LatestByRange 获取指定窗口的最新一份报告
func (r *ReportRepository) LatestByRange(rangeDays int) (*model.CoachReport, error) {
	var report model.CoachReport
	err := r.db.Where("range_days = ?", rangeDays).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}
