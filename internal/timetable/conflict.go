package timetable

// HasConflict 判断两个分班是否存在同日时间重叠。
// 区间为半开 [Start, End)，标准重叠判定 m2.Start < m1.End && m2.End > m1.Start；
// 边界相等（m2.Start == m1.End）属于连堂而非冲突，由间隔分析处理。
// 纯函数，对输入顺序无要求，命中第一对冲突即返回。
func HasConflict(a, b Section) bool {
	for _, m1 := range a.Schedule {
		for _, m2 := range b.Schedule {
			if m1.Day != m2.Day {
				continue
			}
			if m2.Start < m1.End && m2.End > m1.Start {
				return true
			}
		}
	}
	return false
}

// ConflictsWith 返回既有分班中与候选分班冲突的全部分班键。
// 加课前的即时校验用：一次扫描给出全部冲突来源而非第一个。
func ConflictsWith(candidate Section, existing []Section) []SectionKey {
	var keys []SectionKey
	for i := range existing {
		if existing[i].Key() == candidate.Key() {
			continue
		}
		if HasConflict(candidate, existing[i]) {
			keys = append(keys, existing[i].Key())
		}
	}
	return keys
}
