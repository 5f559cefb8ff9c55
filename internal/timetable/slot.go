package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ── 槽位模型 ──
//
// 教学日从 epoch（默认 09:00）开始，每 30 分钟一个槽位：
// slot = (hour - epochHour)*2 + minute/30。
// epoch 是部署配置，不是硬常量；仓库内默认按 09:00。

const (
	// SlotMinutes 槽位宽度（分钟）
	SlotMinutes = 30
	// DefaultEpochHour 教学日起点小时（槽位 0 = 09:00）
	DefaultEpochHour = 9

	slotsPerHour = 60 / SlotMinutes
)

// ErrInvalidClock 时刻字符串无法解析。
// 本包不替调用方兜底：参考实现曾默认回退到槽位 0（09:00），
// 会凭空制造会面并掩盖数据质量问题，回退策略由调用方自行决定。
var ErrInvalidClock = errors.New("无法解析的时刻格式")

// ToSlot 以默认 epoch 将时分换算为槽位序号
func ToSlot(hour, minute int) int {
	return ToSlotWithEpoch(DefaultEpochHour, hour, minute)
}

// ToSlotWithEpoch 以指定 epoch 小时换算槽位序号
func ToSlotWithEpoch(epochHour, hour, minute int) int {
	return (hour-epochHour)*slotsPerHour + minute/SlotMinutes
}

// FromSlot 以默认 epoch 将槽位序号换算回时分
func FromSlot(slot int) (int, int) {
	return FromSlotWithEpoch(DefaultEpochHour, slot)
}

// FromSlotWithEpoch 以指定 epoch 小时将槽位序号换算回时分
func FromSlotWithEpoch(epochHour, slot int) (int, int) {
	hour := epochHour + slot/slotsPerHour
	minute := (slot % slotsPerHour) * SlotMinutes
	if minute < 0 {
		// Go 的整除向零取整，epoch 之前的负槽位需要修正
		hour--
		minute += 60
	}
	return hour, minute
}

// ParseClock 解析 "HH:MM" 形式的时刻字符串
func ParseClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, errHour := strconv.Atoi(parts[0])
	minute, errMinute := strconv.Atoi(parts[1])
	if errHour != nil || errMinute != nil ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour, minute, nil
}

// ClockToSlot 解析时刻字符串并按默认 epoch 换算为槽位
func ClockToSlot(s string) (int, error) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return ToSlot(hour, minute), nil
}

// SlotClock 将槽位序号格式化为 "HH:MM"（默认 epoch），用于展示与导出
func SlotClock(slot int) string {
	hour, minute := FromSlot(slot)
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// SlotClockWithEpoch 以指定 epoch 小时格式化槽位为 "HH:MM"
func SlotClockWithEpoch(epochHour, slot int) string {
	hour, minute := FromSlotWithEpoch(epochHour, slot)
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
