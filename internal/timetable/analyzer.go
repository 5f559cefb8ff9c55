package timetable

import (
	"fmt"
	"sort"

	"github.com/hy-hyun/prototype/internal/campus"
)

// ── 间隔/移动风险分析 ──
//
// 算法：展开全部会面并标注归属分班 → 按日分组 → 日内按起始槽位稳定
// 排序 → 滑窗检查相邻配对 → 间隔 0~1 槽位的配对查建筑分群与移动难度
// 矩阵 → 按时间余量定级产出 Gap。
//
// 失败语义：建筑缺失、未收录、矩阵无指引一律降级为"该配对不出告警"。
// 分析在每次选课变更时被动触发，宁可漏报也不允许误报或中断交互；
// 未收录建筑既不隐含"安全"也不隐含"危险"，只是无法评估。

// tightMarginMinutes 间隔与所需移动时间的差距小于此值时判"촉박"
const tightMarginMinutes = 5

// Analyze 对当前全部分班做全量重扫，返回按日、按时间有序的告警列表。
// 空课表分班自然被跳过。对不变的输入重复调用产生逐项相同的结果（含 ID）。
func Analyze(sections []Section) []Gap {
	all := flatten(sections)

	byDay := make(map[int][]dayMeeting)
	for _, m := range all {
		byDay[m.day] = append(byDay[m.day], m)
	}
	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	gaps := make([]Gap, 0)
	for _, d := range days {
		dayList := byDay[d]
		// 稳定排序：并列起始时间保持源顺序。真正的同刻重叠属于冲突，
		// 由 HasConflict 前置检查负责，不在间隔分析范围内。
		sort.SliceStable(dayList, func(i, j int) bool {
			return dayList[i].start < dayList[j].start
		})
		for i := 0; i+1 < len(dayList); i++ {
			if g, ok := evaluatePair(d, dayList[i].endpoint, dayList[i+1].endpoint); ok {
				gaps = append(gaps, g)
			}
		}
	}
	return gaps
}

// AnalyzeAddition 增量分析：仅检查候选分班与既有分班之间的相邻配对，
// 供逐门加课时的即时反馈使用，避免整表重扫。
// 候选课可能出现在配对的任一侧（候选→既有、既有→候选），两个方向都查。
func AnalyzeAddition(newSection Section, existing []Section) []Gap {
	gaps := make([]Gap, 0)
	for _, nm := range newSection.Schedule {
		newEnd := endpoint{
			key:      newSection.Key(),
			title:    newSection.Title,
			building: nm.Building,
			start:    nm.Start,
			end:      nm.End,
		}
		for i := range existing {
			for _, em := range existing[i].Schedule {
				if em.Day != nm.Day {
					continue
				}
				existingEnd := endpoint{
					key:      existing[i].Key(),
					title:    existing[i].Title,
					building: em.Building,
					start:    em.Start,
					end:      em.End,
				}
				// 候选课在前
				if g, ok := evaluatePair(nm.Day, newEnd, existingEnd); ok {
					gaps = append(gaps, g)
				}
				// 既有课在前
				if g, ok := evaluatePair(nm.Day, existingEnd, newEnd); ok {
					gaps = append(gaps, g)
				}
			}
		}
	}
	return gaps
}

// endpoint 参与配对评估的一端：会面时间 + 归属分班标识
type endpoint struct {
	key      SectionKey
	title    string
	building string
	start    int
	end      int
}

type dayMeeting struct {
	endpoint
	day int
}

// flatten 展开全部会面并标注归属分班
func flatten(sections []Section) []dayMeeting {
	var all []dayMeeting
	for i := range sections {
		sec := &sections[i]
		for _, m := range sec.Schedule {
			all = append(all, dayMeeting{
				day: m.Day,
				endpoint: endpoint{
					key:      sec.Key(),
					title:    sec.Title,
					building: m.Building,
					start:    m.Start,
					end:      m.End,
				},
			})
		}
	}
	return all
}

// evaluatePair 评估一对同日会面（cur 在前、next 在后），
// 判断是否产出告警并完成定级
func evaluatePair(day int, cur, next endpoint) (Gap, bool) {
	gapSlots := next.start - cur.end
	if gapSlots < 0 || gapSlots > 1 {
		return Gap{}, false
	}
	// 同一分班拆成的多段会面不构成移动事件
	if cur.key == next.key {
		return Gap{}, false
	}
	// 建筑名缺失无法评估；建筑名相同无需移动，均不出告警
	if cur.building == "" || next.building == "" || cur.building == next.building {
		return Gap{}, false
	}

	fromGroup, ok := campus.GroupOf(cur.building)
	if !ok {
		return Gap{}, false
	}
	toGroup, ok := campus.GroupOf(next.building)
	if !ok {
		return Gap{}, false
	}

	warning, ok := campus.RiskBetween(fromGroup, toGroup)
	if !ok || warning == campus.WarnNotApplicable {
		return Gap{}, false
	}
	required, base, ok := travelProfile(warning)
	if !ok {
		return Gap{}, false
	}

	gapMinutes := gapSlots * SlotMinutes
	status, risk := classifyGap(gapSlots, gapMinutes, required, base)

	return Gap{
		// ID 仅由 (day, 前课结束槽位, 后课起始槽位) 派生：
		// 同一张课表重复分析时逐项稳定
		ID:           fmt.Sprintf("gap-%d-%d-%d", day, cur.end, next.start),
		Day:          day,
		TimeSlot:     next.start,
		From:         cur.building,
		To:           next.building,
		FromLecture:  cur.title,
		ToLecture:    next.title,
		Risk:         risk,
		RequiredTime: required,
		GapMinutes:   gapMinutes,
		Status:       status,
	}, true
}

// travelProfile 将矩阵分类换算为 (所需移动分钟数, 基础风险档)。
// 数值是人工标定的经验值，随矩阵一起维护，不做地理计算。
func travelProfile(w campus.DistanceWarning) (int, RiskLevel, bool) {
	switch w {
	case campus.WarnSame:
		return 0, RiskSafe, true
	case campus.WarnCaution:
		return 10, RiskWarning, true
	case campus.WarnWarning:
		return 15, RiskDanger, true
	case campus.WarnRemote:
		// 线上课程无实际移动，照常呈现但不施加风险
		return 0, RiskSafe, true
	default:
		return 0, RiskSafe, false
	}
}

// classifyGap 按时间余量对告警定级。
// 边界约定：
//   - 连堂（gapSlots==0）按矩阵基础风险原样呈现，不因时间比较额外升级；
//   - gap == required-5 判"촉박"（至少 warning），gap == required 判"여유"
//     （基础风险原样）——矩阵本身的 warning/danger 不因间隔充裕而降档。
func classifyGap(gapSlots, gapMinutes, required int, base RiskLevel) (string, RiskLevel) {
	switch {
	case gapSlots == 0:
		return StatusBackToBack, base
	case gapMinutes < required-tightMarginMinutes:
		return StatusInsufficient, RiskDanger
	case gapMinutes < required:
		return StatusTight, escalate(base, RiskWarning)
	default:
		return StatusComfortable, base
	}
}
