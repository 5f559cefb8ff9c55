package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/service"
	"github.com/hy-hyun/prototype/pkg/response"
)

// CatalogHandler 课程目录 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// List 查询课程目录
// GET /api/v1/courses
func (h *CatalogHandler) List(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	items, total, err := h.catalogSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, req.Page, req.PageSize)
}

// Get 课程详情
// GET /api/v1/courses/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	info, err := h.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, info)
}

// Import 导入课程（目录数据接入）
// POST /api/v1/courses
func (h *CatalogHandler) Import(c *gin.Context) {
	var req dto.CourseImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	info, err := h.catalogSvc.Import(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseExists):
			response.Conflict(c, 12002, "该分班已存在")
		case errors.Is(err, service.ErrScheduleUnparsable):
			response.BadRequest(c, 12003, "上课时间数据无法解析")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, info)
}
