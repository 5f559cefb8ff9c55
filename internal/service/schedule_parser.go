package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/timetable"
)

// ErrScheduleUnparsable 所有原始时间段均无法解析
var ErrScheduleUnparsable = errors.New("上课时间数据无法解析")

// 紧凑行中的星期简称 → 1=周一 … 7=周日
var dayAbbrev = map[string]int{
	"월": 1, "화": 2, "수": 3, "목": 4, "금": 5, "토": 6, "일": 7,
}

// ParseRawSchedule 将外部目录的原始时间段归一化为 CourseMeeting。
//
// 按 kind 判别形态（见 dto.RawMeeting），无法解析的时间段记一条日志后
// 跳过，绝不中断整组解析，也不回退到 0 号槽位——上游数据质量问题应当
// 暴露为缺失，而不是伪装成一节 09:00 的课。
func ParseRawSchedule(raws []dto.RawMeeting, logger *zap.Logger) []model.CourseMeeting {
	meetings := make([]model.CourseMeeting, 0, len(raws))
	for i, raw := range raws {
		m, err := parseOne(raw)
		if err != nil {
			logger.Warn("跳过无法解析的时间段",
				zap.Int("index", i),
				zap.String("kind", raw.Kind),
				zap.Error(err),
			)
			continue
		}
		meetings = append(meetings, m)
	}
	return meetings
}

func parseOne(raw dto.RawMeeting) (model.CourseMeeting, error) {
	switch raw.Kind {
	case "slot":
		return parseSlot(raw)
	case "clock":
		return parseClock(raw)
	case "text":
		return parseText(raw)
	default:
		return model.CourseMeeting{}, errors.New("未识别的时间段形态: " + raw.Kind)
	}
}

// parseSlot 已归一化的槽位对象，仅做区间校验
func parseSlot(raw dto.RawMeeting) (model.CourseMeeting, error) {
	if raw.Day < 1 || raw.Day > 7 {
		return model.CourseMeeting{}, errors.New("星期越界")
	}
	if raw.StartSlot >= raw.EndSlot {
		return model.CourseMeeting{}, errors.New("槽位区间为空")
	}
	return model.CourseMeeting{
		DayOfWeek: raw.Day,
		StartSlot: raw.StartSlot,
		EndSlot:   raw.EndSlot,
		Building:  raw.Building,
		Room:      raw.Room,
	}, nil
}

// parseClock HH:MM 时刻字符串对象
func parseClock(raw dto.RawMeeting) (model.CourseMeeting, error) {
	if raw.Day < 1 || raw.Day > 7 {
		return model.CourseMeeting{}, errors.New("星期越界")
	}
	start, err := timetable.ClockToSlot(raw.Start)
	if err != nil {
		return model.CourseMeeting{}, err
	}
	end, err := timetable.ClockToSlot(raw.End)
	if err != nil {
		return model.CourseMeeting{}, err
	}
	if start >= end {
		return model.CourseMeeting{}, errors.New("时刻区间为空")
	}
	return model.CourseMeeting{
		DayOfWeek: raw.Day,
		StartSlot: start,
		EndSlot:   end,
		Building:  raw.Building,
		Room:      raw.Room,
	}, nil
}

// parseText 紧凑行："월 09:00-10:30 공학관 101"（楼名与教室可省略）
func parseText(raw dto.RawMeeting) (model.CourseMeeting, error) {
	fields := strings.Fields(raw.Value)
	if len(fields) < 2 {
		return model.CourseMeeting{}, errors.New("紧凑行字段不足")
	}

	day, ok := dayAbbrev[fields[0]]
	if !ok {
		return model.CourseMeeting{}, errors.New("未识别的星期简称: " + fields[0])
	}

	clocks := strings.SplitN(fields[1], "-", 2)
	if len(clocks) != 2 {
		return model.CourseMeeting{}, errors.New("时刻区间格式错误: " + fields[1])
	}
	start, err := timetable.ClockToSlot(clocks[0])
	if err != nil {
		return model.CourseMeeting{}, err
	}
	end, err := timetable.ClockToSlot(clocks[1])
	if err != nil {
		return model.CourseMeeting{}, err
	}
	if start >= end {
		return model.CourseMeeting{}, errors.New("时刻区间为空")
	}

	m := model.CourseMeeting{DayOfWeek: day, StartSlot: start, EndSlot: end}
	if len(fields) > 2 {
		m.Building = fields[2]
	}
	if len(fields) > 3 {
		m.Room = fields[3]
	}
	return m, nil
}
