package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/service"
)

type CoachHandler struct {
	coachService *service.CoachService
}

func NewCoachHandler(coachService *service.CoachService) *CoachHandler {
	return &CoachHandler{
		coachService: coachService,
	}
}

// Generate 生成复盘报告
// POST /api/v1/coach/reports
func (h *CoachHandler) Generate(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.coachService.Generate(c.Request.Context(), &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "生成成功", resp)
}

// History 获取报告历史
// GET /api/v1/coach/reports
func (h *CoachHandler) History(c *gin.Context) {
	take, _ := strconv.Atoi(c.DefaultQuery("take", "20"))

	items, err := h.coachService.History(take)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// Get 获取单份报告
// GET /api/v1/coach/reports/:id
func (h *CoachHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的报告ID")
		return
	}

	report, err := h.coachService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrReportNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, report)
}

// Compare 对比最新的 7 日与 30 日报告
// GET /api/v1/coach/compare
func (h *CoachHandler) Compare(c *gin.Context) {
	resp, err := h.coachService.Compare()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}
