package service

import (
	"testing"

	"go.uber.org/zap"

	"github.com/hy-hyun/prototype/internal/dto"
)

func TestParseRawSchedule_AllVariants(t *testing.T) {
	raws := []dto.RawMeeting{
		{Kind: "slot", Day: 1, StartSlot: 0, EndSlot: 3, Building: "제1공학관", Room: "101"},
		{Kind: "clock", Day: 3, Start: "10:30", End: "12:00", Building: "사범대학본관"},
		{Kind: "text", Value: "금 13:00-14:30 경영대학 204"},
	}

	meetings := ParseRawSchedule(raws, zap.NewNop())
	if len(meetings) != 3 {
		t.Fatalf("期望 3 条时间段，实际 %d", len(meetings))
	}

	if meetings[0].DayOfWeek != 1 || meetings[0].StartSlot != 0 || meetings[0].EndSlot != 3 {
		t.Errorf("slot 形态解析错误: %+v", meetings[0])
	}
	// 10:30 = slot 3, 12:00 = slot 6
	if meetings[1].DayOfWeek != 3 || meetings[1].StartSlot != 3 || meetings[1].EndSlot != 6 {
		t.Errorf("clock 形态解析错误: %+v", meetings[1])
	}
	// 금=5，13:00 = slot 8, 14:30 = slot 11
	m := meetings[2]
	if m.DayOfWeek != 5 || m.StartSlot != 8 || m.EndSlot != 11 {
		t.Errorf("text 形态时间解析错误: %+v", m)
	}
	if m.Building != "경영대학" || m.Room != "204" {
		t.Errorf("text 形态地点解析错误: %+v", m)
	}
}

func TestParseRawSchedule_SkipsMalformed(t *testing.T) {
	raws := []dto.RawMeeting{
		{Kind: "clock", Day: 1, Start: "뀈뀈", End: "12:00"},        // 时刻无法解析
		{Kind: "clock", Day: 0, Start: "09:00", End: "10:00"},    // 星期越界
		{Kind: "slot", Day: 2, StartSlot: 5, EndSlot: 5},         // 空区间
		{Kind: "text", Value: "언젠가 어딘가"},                         // 紧凑行格式错误
		{Kind: "hologram", Day: 1},                               // 未识别形态
		{Kind: "slot", Day: 2, StartSlot: 2, EndSlot: 4},         // 唯一合法项
	}

	meetings := ParseRawSchedule(raws, zap.NewNop())
	if len(meetings) != 1 {
		t.Fatalf("期望仅 1 条合法时间段，实际 %d", len(meetings))
	}
	// 无法解析的时段必须整条丢弃，不得回退到 0 号槽位
	if meetings[0].StartSlot != 2 || meetings[0].EndSlot != 4 {
		t.Errorf("合法时间段被篡改: %+v", meetings[0])
	}
}

func TestParseRawSchedule_TextWithoutLocation(t *testing.T) {
	meetings := ParseRawSchedule([]dto.RawMeeting{
		{Kind: "text", Value: "월 09:00-10:30"},
	}, zap.NewNop())
	if len(meetings) != 1 {
		t.Fatalf("期望 1 条时间段，实际 %d", len(meetings))
	}
	if meetings[0].Building != "" || meetings[0].Room != "" {
		t.Errorf("无地点紧凑行应留空 Building/Room: %+v", meetings[0])
	}
}
