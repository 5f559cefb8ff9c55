package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/service"
	"github.com/hy-hyun/prototype/pkg/response"
)

// TimetableHandler 时间表 HTTP 处理器
type TimetableHandler struct {
	ttSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(ttSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{ttSvc: ttSvc}
}

// My 我的时间表（含冲突扫描与课间移动风险分析）
// GET /api/v1/timetable
func (h *TimetableHandler) My(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.ttSvc.My(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// CheckAddition 试加课（增量评估，不落库）
// POST /api/v1/timetable/check
func (h *TimetableHandler) CheckAddition(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckAdditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.ttSvc.CheckAddition(c.Request.Context(), userID, req.CourseRef)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// ExportXLSX 导出周视图 Excel
// GET /api/v1/timetable/export/xlsx
func (h *TimetableHandler) ExportXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.ttSvc.ExportXLSX(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrTimetableEmpty) {
			response.NotFound(c, 15001, "时间表为空")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ExportICS 导出 iCalendar
// GET /api/v1/timetable/export/ics?week_start=2025-03-03
func (h *TimetableHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	weekStart := time.Now()
	if q := c.Query("week_start"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			response.BadRequest(c, 10001, "week_start 格式应为 YYYY-MM-DD")
			return
		}
		weekStart = parsed
	}

	data, filename, err := h.ttSvc.ExportICS(c.Request.Context(), userID, weekStart)
	if err != nil {
		if errors.Is(err, service.ErrTimetableEmpty) {
			response.NotFound(c, 15001, "时间表为空")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
