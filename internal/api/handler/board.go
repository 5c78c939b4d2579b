package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/response"
	"github.com/qs3c/jobtrack_go_server/internal/service"
)

type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// Get 获取看板视图
// GET /api/v1/board
func (h *BoardHandler) Get(c *gin.Context) {
	board, err := h.boardService.Board()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, board)
}

// Move 移动单条申请到目标列的指定位置
// POST /api/v1/board/move
func (h *BoardHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.boardService.Move(c.Request.Context(), &req); err != nil {
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

	response.SuccessWithMessage(c, "移动成功", nil)
}

// Reorder 按给定顺序整体重排一列
// POST /api/v1/board/reorder
func (h *BoardHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.boardService.Reorder(c.Request.Context(), &req); err != nil {
		switch err {
		case service.ErrInvalidStatus, service.ErrDuplicateIDs:
			response.ParamError(c, err.Error())
		case service.ErrUnknownIDs:
			response.NotFoundError(c, err.Error())
		case service.ErrIncompleteColumn:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "保存成功", nil)
}
