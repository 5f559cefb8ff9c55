package service

import (
	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/timetable"
)

// ── model ↔ dto / timetable 转换 ──

func toMeetingInfo(m *model.CourseMeeting) dto.MeetingInfo {
	return dto.MeetingInfo{
		DayOfWeek: m.DayOfWeek,
		DayName:   timetable.DayName(m.DayOfWeek),
		StartSlot: m.StartSlot,
		EndSlot:   m.EndSlot,
		StartTime: timetable.SlotClock(m.StartSlot),
		EndTime:   timetable.SlotClock(m.EndSlot),
		Building:  m.Building,
		Room:      m.Room,
	}
}

func toCourseInfo(c *model.Course) *dto.CourseInfo {
	meetings := make([]dto.MeetingInfo, 0, len(c.Meetings))
	for i := range c.Meetings {
		meetings = append(meetings, toMeetingInfo(&c.Meetings[i]))
	}
	return &dto.CourseInfo{
		ID:         c.ID,
		CourseID:   c.CourseID,
		ClassID:    c.ClassID,
		Title:      c.Title,
		Instructor: c.Instructor,
		Department: c.Department,
		Category:   c.Category,
		Credits:    c.Credits,
		Capacity:   c.Capacity,
		Enrolled:   c.Enrolled,
		Keywords:   c.Keywords,
		Meetings:   meetings,
	}
}

// toSection 将课程分班转换为时间表分析所需的 Section
func toSection(c *model.Course) timetable.Section {
	schedule := make([]timetable.Meeting, 0, len(c.Meetings))
	for _, m := range c.Meetings {
		schedule = append(schedule, timetable.Meeting{
			Day:      m.DayOfWeek,
			Start:    m.StartSlot,
			End:      m.EndSlot,
			Building: m.Building,
			Room:     m.Room,
		})
	}
	return timetable.Section{
		CourseID: c.CourseID,
		ClassID:  c.ClassID,
		Title:    c.Title,
		Schedule: schedule,
	}
}

func toGapInfos(gaps []timetable.Gap) []dto.GapInfo {
	if len(gaps) == 0 {
		return nil
	}
	out := make([]dto.GapInfo, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, dto.GapInfo{
			ID:           g.ID,
			Day:          g.Day,
			DayName:      timetable.DayName(g.Day),
			TimeSlot:     g.TimeSlot,
			From:         g.From,
			To:           g.To,
			FromLecture:  g.FromLecture,
			ToLecture:    g.ToLecture,
			Risk:         string(g.Risk),
			RequiredTime: g.RequiredTime,
			GapMinutes:   g.GapMinutes,
			Status:       g.Status,
		})
	}
	return out
}
