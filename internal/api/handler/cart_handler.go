package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/service"
	"github.com/hy-hyun/prototype/pkg/response"
)

// CartHandler 书签篮 HTTP 处理器
type CartHandler struct {
	cartSvc service.CartService
}

// NewCartHandler 创建 CartHandler
func NewCartHandler(cartSvc service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// List 查询书签篮
// GET /api/v1/cart
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.cartSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// Add 加入书签篮（冲突与移动风险仅作警告返回）
// POST /api/v1/cart
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.cartSvc.Add(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrAlreadyInCart):
			response.Conflict(c, 13001, "该课程已在书签篮中")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Remove 移出书签篮
// DELETE /api/v1/cart/:courseRef
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cartSvc.Remove(c.Request.Context(), userID, c.Param("courseRef")); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			response.NotFound(c, 13002, "书签篮中无此课程")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// SetBid 调整베팅出价
// PUT /api/v1/cart/:courseRef/bid
func (h *CartHandler) SetBid(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CartBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.cartSvc.SetBid(c.Request.Context(), userID, c.Param("courseRef"), req.BidPoints)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			response.NotFound(c, 13002, "书签篮中无此课程")
		case errors.Is(err, service.ErrInsufficientPoints):
			response.BadRequest(c, 13003, "베팅 포인트余额不足")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
