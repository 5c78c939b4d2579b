package dto

import (
	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// MoveRequest 看板拖拽移动请求
type MoveRequest struct {
	ID         int64  `json:"id" binding:"required"`
	DestStatus string `json:"dest_status" binding:"required,max=20"`
	DestIndex  *int   `json:"dest_index,omitempty"` // 省略表示移动到列尾
}

// ReorderRequest 整列排序请求
type ReorderRequest struct {
	Status     string  `json:"status" binding:"required,max=20"`
	OrderedIDs []int64 `json:"ordered_ids" binding:"required,min=1"`
}

// BoardColumn 看板单列
type BoardColumn struct {
	Status       model.Status        `json:"status"`
	Applications []model.Application `json:"applications"`
}

// BoardResponse 看板视图
type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}
