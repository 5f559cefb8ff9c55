package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/config"
	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/repository"
	"github.com/hy-hyun/prototype/internal/timetable"
)

var (
	ErrTimetableEmpty     = errors.New("时间表为空")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// TimetableService 时间表业务接口
//
// 时间表取自已录取（enrolled）的报名记录；pending 的베팅申请
// 尚未占用时段，不参与分析。书签篮中的候选课不进时间表，
// 由书签篮的逐项警告和 CheckAddition 覆盖
type TimetableService interface {
	// My 返回当前时间表及完整的冲突扫描与课间移动风险分析
	My(ctx context.Context, userID string) (*dto.TimetableResponse, error)
	// CheckAddition 试加课：只评估候选课与现有时间表的关系，
	// 不落库（加一门课时的增量分析，避免整表重扫）
	CheckAddition(ctx context.Context, userID, courseRef string) (*dto.CheckAdditionResponse, error)
	// ExportXLSX 导出周视图 Excel
	ExportXLSX(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportICS 导出 iCalendar，weekStart 为目标周的周一
	ExportICS(ctx context.Context, userID string, weekStart time.Time) ([]byte, string, error)
}

type timetableService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{cfg: cfg, repo: repo, logger: logger}
}

// epochHour 教学日起点小时（槽位 0 对应的整点），导出时按此换算时刻
func (s *timetableService) epochHour() int {
	return s.cfg.Timetable.EpochHour
}

// enrolledCourses 当前已录取课程
func (s *timetableService) enrolledCourses(ctx context.Context, userID string) ([]*model.Course, error) {
	apps, err := s.repo.Application.ListActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	var courses []*model.Course
	for i := range apps {
		if apps[i].Status == model.AppStatusEnrolled && apps[i].Course != nil {
			courses = append(courses, apps[i].Course)
		}
	}
	return courses, nil
}

func (s *timetableService) My(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	courses, err := s.enrolledCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	sections := make([]timetable.Section, 0, len(courses))
	infos := make([]dto.CourseInfo, 0, len(courses))
	for _, c := range courses {
		sections = append(sections, toSection(c))
		infos = append(infos, *toCourseInfo(c))
	}

	// 冲突扫描：列出卷入任一冲突对的分班
	var conflicts []dto.ConflictInfo
	involved := make(map[timetable.SectionKey]bool)
	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			if timetable.HasConflict(sections[i], sections[j]) {
				involved[sections[i].Key()] = true
				involved[sections[j].Key()] = true
			}
		}
	}
	for _, sec := range sections {
		if involved[sec.Key()] {
			conflicts = append(conflicts, dto.ConflictInfo{
				CourseID: sec.CourseID,
				ClassID:  sec.ClassID,
				Title:    sec.Title,
			})
		}
	}

	return &dto.TimetableResponse{
		Sections:  infos,
		Conflicts: conflicts,
		Gaps:      toGapInfos(timetable.Analyze(sections)),
	}, nil
}

func (s *timetableService) CheckAddition(ctx context.Context, userID, courseRef string) (*dto.CheckAdditionResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, courseRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	courses, err := s.enrolledCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	sections := make([]timetable.Section, 0, len(courses))
	for _, c := range courses {
		sections = append(sections, toSection(c))
	}

	candidate := toSection(course)
	conflicts := conflictInfos(candidate, sections)

	return &dto.CheckAdditionResponse{
		Addable:   len(conflicts) == 0,
		Conflicts: conflicts,
		Gaps:      toGapInfos(timetable.AnalyzeAddition(candidate, sections)),
	}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX — 导出周视图 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头：槽位起始时刻（教学日起点起，30 分钟一行）
//   - 列头：周一 ~ 周日（仅到实际使用的最大星期）
//   - 单元格：课程名 + 楼/教室

func (s *timetableService) ExportXLSX(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	courses, err := s.enrolledCourses(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if len(courses) == 0 {
		return nil, "", ErrTimetableEmpty
	}

	// 槽位与星期范围
	minSlot, maxSlot, maxDay := 0, 0, 5
	first := true
	for _, c := range courses {
		for _, m := range c.Meetings {
			if first || m.StartSlot < minSlot {
				minSlot = m.StartSlot
			}
			if first || m.EndSlot > maxSlot {
				maxSlot = m.EndSlot
			}
			first = false
			if m.DayOfWeek > maxDay {
				maxDay = m.DayOfWeek
			}
		}
	}
	if first {
		return nil, "", ErrTimetableEmpty
	}

	// 单元格索引: "day:slot" → 文本
	cellIndex := make(map[string]string)
	for _, c := range courses {
		for _, m := range c.Meetings {
			text := c.Title
			if m.Building != "" {
				text += "\n" + m.Building
				if m.Room != "" {
					text += " " + m.Room
				}
			}
			for slot := m.StartSlot; slot < m.EndSlot; slot++ {
				cellIndex[fmt.Sprintf("%d:%d", m.DayOfWeek, slot)] = text
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "시간표"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	lastCol, _ := excelize.ColumnNumberToName(1 + maxDay)
	f.SetColWidth(sheetName, "B", lastCol, 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	f.SetCellValue(sheetName, "A1", "시간")
	for day := 1; day <= maxDay; day++ {
		col, _ := excelize.ColumnNumberToName(1 + day)
		f.SetCellValue(sheetName, col+"1", timetable.DayName(day))
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	// 数据行
	row := 2
	for slot := minSlot; slot < maxSlot; slot++ {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), timetable.SlotClockWithEpoch(s.epochHour(), slot))
		for day := 1; day <= maxDay; day++ {
			col, _ := excelize.ColumnNumberToName(1 + day)
			if text, ok := cellIndex[fmt.Sprintf("%d:%d", day, slot)]; ok {
				f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), text)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "timetable.xlsx", nil
}

// ExportICS 每个时间段生成一个 VEVENT，定位到 weekStart 所在周
func (s *timetableService) ExportICS(ctx context.Context, userID string, weekStart time.Time) ([]byte, string, error) {
	courses, err := s.enrolledCourses(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if len(courses) == 0 {
		return nil, "", ErrTimetableEmpty
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sugang-mate//timetable//KO")

	monday := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	now := time.Now()

	for _, c := range courses {
		for i, m := range c.Meetings {
			startH, startM := timetable.FromSlotWithEpoch(s.epochHour(), m.StartSlot)
			endH, endM := timetable.FromSlotWithEpoch(s.epochHour(), m.EndSlot)
			day := monday.AddDate(0, 0, m.DayOfWeek-1)

			ev := cal.AddEvent(fmt.Sprintf("%s-%s-%d@sugang-mate", c.CourseID, c.ClassID, i))
			ev.SetCreatedTime(now)
			ev.SetDtStampTime(now)
			ev.SetStartAt(time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, day.Location()))
			ev.SetEndAt(time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, day.Location()))
			ev.SetSummary(c.Title)
			if m.Building != "" {
				loc := m.Building
				if m.Room != "" {
					loc += " " + m.Room
				}
				ev.SetLocation(loc)
			}
		}
	}

	return []byte(cal.Serialize()), "timetable.ics", nil
}
