package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/openai"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/service"
)

type AIHandler struct {
	aiService *service.AIService
}

func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{
		aiService: aiService,
	}
}

// Summary 生成申请摘要
// POST /api/v1/ai/summary
func (h *AIHandler) Summary(c *gin.Context) {
	var req dto.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.aiService.Summary(c.Request.Context(), &req)
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.Success(c, resp)
}

// FollowUp 生成跟进邮件
// POST /api/v1/ai/followup
func (h *AIHandler) FollowUp(c *gin.Context) {
	var req dto.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.aiService.FollowUp(c.Request.Context(), &req)
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.Success(c, resp)
}

// Review 生成结构化申请点评
// POST /api/v1/ai/review
func (h *AIHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.aiService.Review(c.Request.Context(), &req)
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.Success(c, resp)
}

func handleAIError(c *gin.Context, err error) {
	switch err {
	case service.ErrApplicationNotFound:
		response.NotFoundError(c, err.Error())
	case openai.ErrNotConfigured:
		response.UpstreamError(c, "未配置 OpenAI API Key")
	default:
		response.UpstreamError(c, "")
	}
}
