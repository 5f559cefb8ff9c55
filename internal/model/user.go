package model

// User 用户表 — 对应 users
type User struct {
	ID         string `gorm:"type:varchar(36);primaryKey"          json:"id"`
	StudentID  string `gorm:"type:varchar(20);not null;uniqueIndex" json:"student_id"` // 학번
	Name       string `gorm:"type:varchar(50);not null"            json:"name"`
	Password   string `gorm:"type:varchar(100);not null"           json:"-"` // bcrypt 哈希
	Major      string `gorm:"type:varchar(100);not null;default:''" json:"major"`
	Grade      int    `gorm:"not null;default:1"                   json:"grade"`
	MaxCredits int    `gorm:"not null;default:21"                  json:"max_credits"`
	Points     int    `gorm:"not null;default:100"                 json:"points"` // 베팅 포인트余额
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
