package model

// 报名方式
const (
	MethodFCFS = "fcfs" // 선착순：先到先得，满员即关闭
	MethodBID  = "bid"  // 베팅：出价抽签
)

// 报名状态
const (
	AppStatusPending  = "pending"  // 베팅待开奖
	AppStatusEnrolled = "enrolled" // 已录取
	AppStatusRejected = "rejected" // 落选
	AppStatusCanceled = "canceled" // 用户取消
)

// Application 报名申请 — 对应 applications
type Application struct {
	ID        string `gorm:"type:varchar(36);primaryKey"                              json:"id"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:uq_app_user_course" json:"user_id"`
	CourseRef string `gorm:"type:varchar(36);not null;uniqueIndex:uq_app_user_course" json:"course_ref"`
	Method    string `gorm:"type:varchar(10);not null"            json:"method"`
	BidPoints int    `gorm:"not null;default:0"                   json:"bid_points"`
	Status    string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseRef;references:ID" json:"course,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// Active 申请是否仍占用名额/待处理
func (a *Application) Active() bool {
	return a.Status == AppStatusPending || a.Status == AppStatusEnrolled
}
