package dto

// ── 时间表分析 DTO ──

// ConflictInfo 时间冲突信息
type ConflictInfo struct {
	CourseID string `json:"course_id"`
	ClassID  string `json:"class_id"`
	Title    string `json:"title,omitempty"`
}

// GapInfo 课间移动风险信息
type GapInfo struct {
	ID           string `json:"id"`
	Day          int    `json:"day"`
	DayName      string `json:"day_name"`
	TimeSlot     int    `json:"time_slot"`
	From         string `json:"from"`
	To           string `json:"to"`
	FromLecture  string `json:"from_lecture"`
	ToLecture    string `json:"to_lecture"`
	Risk         string `json:"risk"` // safe / warning / danger
	RequiredTime int    `json:"required_time"`
	GapMinutes   int    `json:"gap_minutes"`
	Status       string `json:"status"` // 연강 / 시간부족 / 촉박 / 여유
}

// TimetableResponse 时间表分析响应
type TimetableResponse struct {
	Sections  []CourseInfo   `json:"sections"`
	Conflicts []ConflictInfo `json:"conflicts"`
	Gaps      []GapInfo      `json:"gaps"`
}

// CheckAdditionRequest 试加课请求：评估新分班与现有时间表的关系
type CheckAdditionRequest struct {
	CourseRef string `json:"course_ref" binding:"required"`
}

// CheckAdditionResponse 试加课响应
type CheckAdditionResponse struct {
	Addable   bool           `json:"addable"` // 无硬冲突
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
	Gaps      []GapInfo      `json:"gaps,omitempty"`
}
