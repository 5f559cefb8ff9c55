package dto

// ── 课程目录 DTO ──

// CourseListRequest 目录查询参数
type CourseListRequest struct {
	Query      string `form:"q"`
	Department string `form:"department"`
	Category   string `form:"category"`
	Credits    int    `form:"credits"    binding:"omitempty,min=1,max=6"`
	DayOfWeek  int    `form:"day"        binding:"omitempty,min=1,max=7"`
	Page       int    `form:"page"       binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size"  binding:"omitempty,min=1,max=100"`
}

// MeetingInfo 上课时间段
type MeetingInfo struct {
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	StartSlot int    `json:"start_slot"`
	EndSlot   int    `json:"end_slot"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`
	Building  string `json:"building"`
	Room      string `json:"room"`
}

// RawMeeting 外部目录数据的原始时间段，三种已识别形态之一：
//   - kind=slot : day + start_slot/end_slot（已归一化的槽位）
//   - kind=clock: day + start/end（HH:MM 时刻字符串）
//   - kind=text : value（紧凑行，如 "월 09:00-10:30 공학관 101"）
//
// 其余形态一律视为无法解析，跳过该时间段（不回退到 0 号槽位）
type RawMeeting struct {
	Kind      string `json:"kind"`
	Day       int    `json:"day,omitempty"`
	StartSlot int    `json:"start_slot,omitempty"`
	EndSlot   int    `json:"end_slot,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Value     string `json:"value,omitempty"`
	Building  string `json:"building,omitempty"`
	Room      string `json:"room,omitempty"`
}

// CourseImportRequest 导入课程请求（目录数据接入）
type CourseImportRequest struct {
	CourseID   string       `json:"course_id" binding:"required"`
	ClassID    string       `json:"class_id"  binding:"required"`
	Title      string       `json:"title"     binding:"required"`
	Instructor string       `json:"instructor"`
	Department string       `json:"department"`
	Category   string       `json:"category"`
	Credits    int          `json:"credits"   binding:"omitempty,min=1,max=6"`
	Capacity   int          `json:"capacity"  binding:"omitempty,min=0"`
	Keywords   []string     `json:"keywords"`
	Schedule   []RawMeeting `json:"schedule"  binding:"required,min=1"`
}

// CourseInfo 课程分班信息
type CourseInfo struct {
	ID         string        `json:"id"`
	CourseID   string        `json:"course_id"`
	ClassID    string        `json:"class_id"`
	Title      string        `json:"title"`
	Instructor string        `json:"instructor"`
	Department string        `json:"department"`
	Category   string        `json:"category"`
	Credits    int           `json:"credits"`
	Capacity   int           `json:"capacity"`
	Enrolled   int           `json:"enrolled"`
	Keywords   []string      `json:"keywords"`
	Meetings   []MeetingInfo `json:"meetings"`
}
