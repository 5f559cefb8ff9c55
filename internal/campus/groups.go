package campus

// ── 建筑群静态参考数据 ──
//
// 设计说明：
//   - 分群表是人工维护的离散分类（反映坡道/电梯/人流等实际通行难度），
//     不是地理距离计算的产物，保持为可编辑的静态表。
//   - 进程启动即固化，运行期只读，无锁即可被并发分析共享。

// BuildingGroup 建筑群：一组建筑显示名的命名分区
type BuildingGroup struct {
	GroupID   string   // 单字母分群编号，唯一
	GroupName string   // 分群显示名
	Buildings []string // 精确匹配用的建筑显示名集合
}

// buildingGroups 按固定顺序扫描；规范数据中建筑名不跨群重复，
// 若出现重复则命中第一个包含它的分群
var buildingGroups = []BuildingGroup{
	{
		GroupID:   "A",
		GroupName: "공학",
		Buildings: []string{"제1공학관", "제2공학관", "백남음악관"},
	},
	{
		GroupID:   "B",
		GroupName: "사범",
		Buildings: []string{"사범대학본관", "사범대학별관", "의대계단강의동", "융합교육관"},
	},
	{
		GroupID:   "C",
		GroupName: "경영",
		Buildings: []string{"경영대학", "경영관", "경영", "제3법학관"},
	},
	{
		GroupID:   "D",
		GroupName: "인문자연",
		Buildings: []string{"인문과학대학", "자연과학대학", "자연과학관"},
	},
	{
		GroupID:   "E",
		GroupName: "올림픽",
		Buildings: []string{"올림픽체육관", "IT.BT관"},
	},
	{
		GroupID:   "F",
		GroupName: "사회",
		Buildings: []string{"사회과학관", "사회과학대학"},
	},
	{
		GroupID:   "G",
		GroupName: "신소재",
		Buildings: []string{"신소재공학관", "토목건축관"},
	},
	{
		GroupID:   "H",
		GroupName: "비대면",
		Buildings: []string{"온라인", "비대면"},
	},
}

// GroupOf 按建筑显示名查找所属分群编号。
// 匹配刻意保持严格（区分大小写、不做空白归一化）：目录数据与参考表的
// 任何命名不一致都会得到"未知"，下游将其视为"无法评估风险"而非"安全"。
func GroupOf(building string) (string, bool) {
	if building == "" {
		return "", false
	}
	for _, g := range buildingGroups {
		for _, b := range g.Buildings {
			if b == building {
				return g.GroupID, true
			}
		}
	}
	return "", false
}

// GroupName 返回分群编号对应的显示名，未知编号返回空串
func GroupName(groupID string) string {
	for _, g := range buildingGroups {
		if g.GroupID == groupID {
			return g.GroupName
		}
	}
	return ""
}

// SameGroup 判断两个建筑是否属于同一分群；任一建筑未收录则返回 false
func SameGroup(building1, building2 string) bool {
	g1, ok1 := GroupOf(building1)
	g2, ok2 := GroupOf(building2)
	if !ok1 || !ok2 {
		return false
	}
	return g1 == g2
}

// BuildingsOf 返回指定分群收录的全部建筑名（副本）
func BuildingsOf(groupID string) []string {
	for _, g := range buildingGroups {
		if g.GroupID == groupID {
			out := make([]string, len(g.Buildings))
			copy(out, g.Buildings)
			return out
		}
	}
	return nil
}

// AllBuildings 返回参考表收录的全部建筑名
func AllBuildings() []string {
	var out []string
	for _, g := range buildingGroups {
		out = append(out, g.Buildings...)
	}
	return out
}

// Groups 返回全部分群定义（副本，防止调用方篡改静态表）
func Groups() []BuildingGroup {
	out := make([]BuildingGroup, len(buildingGroups))
	for i, g := range buildingGroups {
		buildings := make([]string, len(g.Buildings))
		copy(buildings, g.Buildings)
		out[i] = BuildingGroup{GroupID: g.GroupID, GroupName: g.GroupName, Buildings: buildings}
	}
	return out
}
