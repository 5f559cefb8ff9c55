package dto

// ── 报名 DTO ──

// ApplyRequest 报名请求
type ApplyRequest struct {
	CourseRef string `json:"course_ref" binding:"required"`
	Method    string `json:"method"     binding:"required,oneof=fcfs bid"`
	BidPoints int    `json:"bid_points" binding:"omitempty,min=0"`
}

// ApplicationInfo 报名申请信息
type ApplicationInfo struct {
	ID        string      `json:"id"`
	Course    *CourseInfo `json:"course"`
	Method    string      `json:"method"`
	BidPoints int         `json:"bid_points"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"created_at"`
}

// DrawResultInfo 베팅开奖结果
type DrawResultInfo struct {
	CourseRef string   `json:"course_ref"`
	Winners   []string `json:"winners"` // 中签申请 ID
	Losers    []string `json:"losers"`
}
