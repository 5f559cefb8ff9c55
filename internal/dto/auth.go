package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password"   binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Name      string `json:"name"       binding:"required,min=2,max=20"`
	Password  string `json:"password"   binding:"required,min=8,max=20"`
	Major     string `json:"major"`
	Grade     int    `json:"grade"      binding:"omitempty,min=1,max=6"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *UserProfile `json:"user"`
}

// UserProfile 用户概要信息
type UserProfile struct {
	ID         string `json:"id"`
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Major      string `json:"major"`
	Grade      int    `json:"grade"`
	MaxCredits int    `json:"max_credits"`
	Points     int    `json:"points"`
}
