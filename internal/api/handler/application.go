package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/service"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Create 创建申请
// POST /api/v1/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	app, err := h.applicationService.Create(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInvalidStatus:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", app)
}

// List 获取申请列表
// GET /api/v1/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applicationService.List()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, apps)
}

// Get 获取申请详情（含事件时间线）
// GET /api/v1/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的申请ID")
		return
	}

	detail, err := h.applicationService.Get(id)
	if err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 局部更新申请，带 status 字段时等价于移动到目标列列尾
// PATCH /api/v1/applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的申请ID")
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	app, err := h.applicationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidStatus:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", app)
}

// Delete 删除申请
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的申请ID")
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
