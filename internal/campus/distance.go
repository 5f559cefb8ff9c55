package campus

// ── 分群间移动难度矩阵 ──
//
// 完整 (出发群 × 到达群) 表，H 群（비대면/线上）恒为 비대면。
// 原始数据存在非对称项（例如 A→B=주의 而 B→A=-），
// 查询方不应假设矩阵对称，需按两个方向各查一次。

// DistanceWarning 分群间移动难度的离散分类（封闭枚举）
type DistanceWarning string

const (
	// WarnSame 同一建筑群，无移动负担
	WarnSame DistanceWarning = "0"
	// WarnCaution 坡道/人流需留意
	WarnCaution DistanceWarning = "주의"
	// WarnWarning 课间大概率来不及
	WarnWarning DistanceWarning = "경고"
	// WarnRemote 线上课程，无实际移动
	WarnRemote DistanceWarning = "비대면"
	// WarnNotApplicable 无特别指引，不展示
	WarnNotApplicable DistanceWarning = "-"
)

var distanceMatrix = map[string]map[string]DistanceWarning{
	"A": {
		"A": WarnSame, "B": WarnCaution, "C": WarnWarning, "D": WarnCaution,
		"E": WarnNotApplicable, "F": WarnNotApplicable, "G": WarnNotApplicable, "H": WarnRemote,
	},
	"B": {
		"A": WarnNotApplicable, "B": WarnSame, "C": WarnNotApplicable, "D": WarnNotApplicable,
		"E": WarnWarning, "F": WarnNotApplicable, "G": WarnNotApplicable, "H": WarnRemote,
	},
	"C": {
		"A": WarnWarning, "B": WarnCaution, "C": WarnSame, "D": WarnWarning,
		"E": WarnNotApplicable, "F": WarnWarning, "G": WarnWarning, "H": WarnRemote,
	},
	"D": {
		"A": WarnNotApplicable, "B": WarnNotApplicable, "C": WarnWarning, "D": WarnSame,
		"E": WarnWarning, "F": WarnNotApplicable, "G": WarnWarning, "H": WarnRemote,
	},
	"E": {
		"A": WarnNotApplicable, "B": WarnWarning, "C": WarnNotApplicable, "D": WarnWarning,
		"E": WarnSame, "F": WarnWarning, "G": WarnNotApplicable, "H": WarnRemote,
	},
	"F": {
		"A": WarnNotApplicable, "B": WarnNotApplicable, "C": WarnWarning, "D": WarnNotApplicable,
		"E": WarnWarning, "F": WarnSame, "G": WarnNotApplicable, "H": WarnRemote,
	},
	"G": {
		"A": WarnCaution, "B": WarnWarning, "C": WarnNotApplicable, "D": WarnWarning,
		"E": WarnNotApplicable, "F": WarnCaution, "G": WarnSame, "H": WarnRemote,
	},
	"H": {
		"A": WarnCaution, "B": WarnWarning, "C": WarnWarning, "D": WarnWarning,
		"E": WarnNotApplicable, "F": WarnCaution, "G": WarnNotApplicable, "H": WarnRemote,
	},
}

// RiskFor 按 (from, to) 直接读表，无任何计算；编号未收录时 ok=false
func RiskFor(fromGroup, toGroup string) (DistanceWarning, bool) {
	row, ok := distanceMatrix[fromGroup]
	if !ok {
		return "", false
	}
	w, ok := row[toGroup]
	if !ok {
		return "", false
	}
	return w, true
}

// RiskBetween 对称查询：正向无数据或为"-"时回退查反向。
// 仅单侧有值的非对称项由此兜底；双向均为"-"时维持"-"由调用方抑制。
func RiskBetween(groupA, groupB string) (DistanceWarning, bool) {
	forward, fok := RiskFor(groupA, groupB)
	if fok && forward != WarnNotApplicable {
		return forward, true
	}
	reverse, rok := RiskFor(groupB, groupA)
	if rok && reverse != WarnNotApplicable {
		return reverse, true
	}
	return forward, fok
}
