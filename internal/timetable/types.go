package timetable

// ── 时间表分析核心类型 ──
//
// 本包是纯内存计算核心：无 I/O、无内部可变状态，所有入口函数可被
// 并发宿主任意并行调用。持久化与目录解析由外部协作方完成，
// 本包只消费规范化后的 Meeting/Section。

// RiskLevel 间隔风险的三档严重度，UI 据此着色，不做进一步计算
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskWarning RiskLevel = "warning"
	RiskDanger  RiskLevel = "danger"
)

var riskRank = map[RiskLevel]int{RiskSafe: 0, RiskWarning: 1, RiskDanger: 2}

// escalate 返回两档风险中较高的一档
func escalate(a, b RiskLevel) RiskLevel {
	if riskRank[a] >= riskRank[b] {
		return a
	}
	return b
}

// Meeting 一次课程会面。槽位区间为半开 [Start, End)，恒有 Start < End。
// 解析边界构造后不再修改。
type Meeting struct {
	Day      int    `json:"day"`   // 1=월 … 7=일（全仓库统一 1 基准）
	Start    int    `json:"start"` // 起始槽位（含）
	End      int    `json:"end"`   // 结束槽位（不含）
	Building string `json:"building,omitempty"` // 建筑显示名，可为空（未知）
	Room     string `json:"room,omitempty"`     // 仅展示用
}

// SectionKey 分班的复合自然键，学期内唯一
type SectionKey struct {
	CourseID string // 학수번호
	ClassID  string // 수업번호
}

// Section 一个具体开课分班及其全部会面时间。
// Schedule 顺序仅影响展示，不影响分析正确性。
type Section struct {
	CourseID string
	ClassID  string
	Title    string
	Schedule []Meeting
}

// Key 返回分班的复合自然键
func (s Section) Key() SectionKey {
	return SectionKey{CourseID: s.CourseID, ClassID: s.ClassID}
}

// 间隔状态标签，与前端徽章文案一致
const (
	StatusBackToBack   = "연강"   // 连堂
	StatusInsufficient = "시간부족" // 时间不够
	StatusTight        = "촉박"   // 勉强够
	StatusComfortable  = "여유"   // 充裕
)

// Gap 相邻课程配对的移动风险分析结果。
// 每次分析从当前 Meeting 数据重新派生，不持久化。
type Gap struct {
	ID           string    `json:"id"`            // 由 (day, endSlot, startSlot) 派生，输入不变则稳定
	Day          int       `json:"day"`           // 1=월 … 7=일
	TimeSlot     int       `json:"time_slot"`     // 展示位置：后一门课的起始槽位
	From         string    `json:"from"`          // 出发建筑
	To           string    `json:"to"`            // 到达建筑
	FromLecture  string    `json:"from_lecture"`  // 出发课程名
	ToLecture    string    `json:"to_lecture"`    // 到达课程名
	Risk         RiskLevel `json:"risk"`          // 计算后的风险档
	RequiredTime int       `json:"required_time"` // 需要的移动时间（分钟）
	GapMinutes   int       `json:"gap_minutes"`   // 实际间隔（分钟）
	Status       string    `json:"status"`        // 状态标签（연강/시간부족/촉박/여유）
}

var dayNames = [...]string{"", "월", "화", "수", "목", "금", "토", "일"}

// DayName 返回 1 基准星期序号对应的韩文单字，越界返回空串
func DayName(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return dayNames[day]
}
