package model

// Course 课程分班表 — 对应 courses
// 业务键为 (course_id, class_id)：同一门课可开多个分班
type Course struct {
	ID         string     `gorm:"type:varchar(36);primaryKey"                                json:"id"`
	CourseID   string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_courses_course_class" json:"course_id"` // 학수번호
	ClassID    string     `gorm:"type:varchar(10);not null;uniqueIndex:uq_courses_course_class" json:"class_id"`  // 수업번호
	Title      string     `gorm:"type:varchar(200);not null"            json:"title"`
	Instructor string     `gorm:"type:varchar(50);not null;default:''"  json:"instructor"`
	Department string     `gorm:"type:varchar(100);not null;default:''" json:"department"`
	Category   string     `gorm:"type:varchar(50);not null;default:''"  json:"category"`
	Credits    int        `gorm:"not null;default:3"                    json:"credits"`
	Capacity   int        `gorm:"not null;default:0"                    json:"capacity"`
	Enrolled   int        `gorm:"not null;default:0"                    json:"enrolled"`
	Keywords   StringList `gorm:"type:text;not null;default:''"         json:"keywords"`
	Version    int64      `gorm:"not null;default:0"                    json:"version"` // 乐观锁，名额变更时递增
	BaseModel

	// 关联
	Meetings []CourseMeeting `gorm:"foreignKey:CourseRef;references:ID" json:"meetings,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// IsFull 名额是否已满
func (c *Course) IsFull() bool {
	return c.Capacity > 0 && c.Enrolled >= c.Capacity
}

// CourseMeeting 上课时间段 — 对应 course_meetings
// 时间以 30 分钟槽位表示，区间为左闭右开 [StartSlot, EndSlot)
type CourseMeeting struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"             json:"id"`
	CourseRef string `gorm:"type:varchar(36);not null;index"      json:"course_ref"`
	DayOfWeek int    `gorm:"not null"                             json:"day_of_week"` // 1=周一 … 7=周日
	StartSlot int    `gorm:"not null"                             json:"start_slot"`
	EndSlot   int    `gorm:"not null"                             json:"end_slot"`
	Building  string `gorm:"type:varchar(50);not null;default:''" json:"building"`
	Room      string `gorm:"type:varchar(50);not null;default:''" json:"room"`
}

// TableName 指定表名
func (CourseMeeting) TableName() string { return "course_meetings" }
