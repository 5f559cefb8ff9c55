package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/service"
	"github.com/hy-hyun/prototype/pkg/response"
)

// EnrollmentHandler 报名 HTTP 处理器
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

// Apply 报名（선착순 / 베팅）
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Apply(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	app, err := h.enrollSvc.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrAlreadyApplied):
			response.Conflict(c, 14001, "已报名该课程")
		case errors.Is(err, service.ErrCourseFull):
			response.Conflict(c, 14002, "课程名额已满")
		case errors.Is(err, service.ErrCreditLimitExceeded):
			response.BadRequest(c, 14003, "超出学分上限")
		case errors.Is(err, service.ErrScheduleConflict):
			response.Conflict(c, 14004, "与已报名课程时间冲突")
		case errors.Is(err, service.ErrBidRequired):
			response.BadRequest(c, 14005, "베팅报名必须出价")
		case errors.Is(err, service.ErrInsufficientPoints):
			response.BadRequest(c, 13003, "베팅 포인트余额不足")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, app)
}

// ListMine 我的报名记录
// GET /api/v1/enrollments
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	apps, err := h.enrollSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, apps)
}

// Cancel 取消报名
// DELETE /api/v1/enrollments/:id
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.enrollSvc.Cancel(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.NotFound(c, 14006, "报名记录不存在")
		case errors.Is(err, service.ErrNotCancelable):
			response.Conflict(c, 14007, "该报名状态不可取消")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// Draw 베팅开奖
// POST /api/v1/enrollments/draw/:courseRef
func (h *EnrollmentHandler) Draw(c *gin.Context) {
	result, err := h.enrollSvc.Draw(c.Request.Context(), c.Param("courseRef"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
