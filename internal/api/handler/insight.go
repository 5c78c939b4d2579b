package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/service"
)

type InsightHandler struct {
	insightService *service.InsightService
}

func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// Get 获取洞察快照
// GET /api/v1/insights
func (h *InsightHandler) Get(c *gin.Context) {
	snapshot, err := h.insightService.Snapshot(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, snapshot)
}
