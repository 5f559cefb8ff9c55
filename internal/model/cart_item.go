package model

// CartItem 书签篮条目 — 对应 cart_items
// 同一用户对同一分班只能有一条（唯一约束 uq_cart_user_course）
type CartItem struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"                                json:"id"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:uq_cart_user_course" json:"user_id"`
	CourseRef string `gorm:"type:varchar(36);not null;uniqueIndex:uq_cart_user_course" json:"course_ref"`
	BidPoints int    `gorm:"not null;default:0" json:"bid_points"` // 베팅 제도下的出价
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseRef;references:ID" json:"course,omitempty"`
}

// TableName 指定表名
func (CartItem) TableName() string { return "cart_items" }
