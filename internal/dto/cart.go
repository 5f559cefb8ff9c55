package dto

// ── 书签篮 DTO ──

// CartAddRequest 加入书签篮请求
type CartAddRequest struct {
	CourseRef string `json:"course_ref" binding:"required"`
	BidPoints int    `json:"bid_points" binding:"omitempty,min=0"`
}

// CartBidRequest 调整出价请求
type CartBidRequest struct {
	BidPoints int `json:"bid_points" binding:"min=0"`
}

// CartItemInfo 书签篮条目
type CartItemInfo struct {
	ID        uint64      `json:"id"`
	Course    *CourseInfo `json:"course"`
	BidPoints int         `json:"bid_points"`
	// 与当前时间表的冲突及移动风险提示
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
	Gaps      []GapInfo      `json:"gaps,omitempty"`
}

// CartAddResponse 加入书签篮响应
// 冲突不阻止加入，仅作为警告返回
type CartAddResponse struct {
	Item      *CartItemInfo  `json:"item"`
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
	Gaps      []GapInfo      `json:"gaps,omitempty"`
}
