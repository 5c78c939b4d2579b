package dto

import (
	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// CreateApplicationRequest 创建申请请求
type CreateApplicationRequest struct {
	Company  string `json:"company" binding:"required,max=200"`
	Role     string `json:"role" binding:"required,max=200"`
	Status   string `json:"status,omitempty" binding:"omitempty,max=20"`
	Location string `json:"location,omitempty" binding:"omitempty,max=200"`
	JobURL   string `json:"job_url,omitempty" binding:"omitempty,url,max=500"`
}

// UpdateApplicationRequest 更新申请请求，仅更新给出的字段
type UpdateApplicationRequest struct {
	Company   *string `json:"company,omitempty" binding:"omitempty,max=200"`
	Role      *string `json:"role,omitempty" binding:"omitempty,max=200"`
	Location  *string `json:"location,omitempty" binding:"omitempty,max=200"`
	JobURL    *string `json:"job_url,omitempty" binding:"omitempty,max=500"`
	AISummary *string `json:"ai_summary,omitempty"`
	Status    *string `json:"status,omitempty" binding:"omitempty,max=20"`
}

// ApplicationDetail 申请详情，附带生命周期事件
type ApplicationDetail struct {
	Application *model.Application       `json:"application"`
	Events      []model.ApplicationEvent `json:"events"`
}
