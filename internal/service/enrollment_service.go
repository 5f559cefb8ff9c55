package service

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/config"
	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/repository"
	"github.com/hy-hyun/prototype/internal/timetable"
	apperrors "github.com/hy-hyun/prototype/pkg/errors"
)

var (
	ErrAlreadyApplied      = errors.New("已报名该课程")
	ErrCourseFull          = errors.New("课程名额已满")
	ErrCreditLimitExceeded = errors.New("超出学分上限")
	ErrScheduleConflict    = errors.New("与已报名课程时间冲突")
	ErrBidRequired         = errors.New("베팅报名必须出价")
	ErrApplicationNotFound = errors.New("报名记录不存在")
	ErrNotCancelable       = errors.New("该报名状态不可取消")
)

// 乐观锁冲突时的占名额重试次数
const enrollRetries = 3

// EnrollmentService 报名业务接口
//
// 两种报名方式：
//   - fcfs（선착순）：先到先得，名额以乐观锁占用；满员时默认立即
//     失败，配置 fcfs_close_on_full=false 则转入候补等待开奖
//   - bid（베팅）：出价入围，名额在开奖时按出价分配；出价即扣点，
//     落选/取消时退还
type EnrollmentService interface {
	Apply(ctx context.Context, userID string, req *dto.ApplyRequest) (*dto.ApplicationInfo, error)
	Cancel(ctx context.Context, userID, applicationID string) error
	ListMine(ctx context.Context, userID string) ([]dto.ApplicationInfo, error)
	// Draw 对单门课程执行베팅开奖：出价降序取剩余名额数，
	// 同价次序由配置种子决定（演示用伪随机抽签，非正式分配器）
	Draw(ctx context.Context, courseRef string) (*dto.DrawResultInfo, error)
}

type enrollmentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{cfg: cfg, repo: repo, logger: logger}
}

func (s *enrollmentService) Apply(ctx context.Context, userID string, req *dto.ApplyRequest) (*dto.ApplicationInfo, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	// 1. 重复报名检查（已取消/落选的记录不拦截）
	if prev, err := s.repo.Application.GetByUserAndCourse(ctx, userID, req.CourseRef); err == nil {
		if prev.Active() {
			return nil, ErrAlreadyApplied
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. 学分上限检查
	activeCredits, err := s.repo.Application.SumActiveCredits(ctx, userID)
	if err != nil {
		s.logger.Error("统计学分失败", zap.Error(err))
		return nil, err
	}
	if activeCredits+course.Credits > user.MaxCredits {
		return nil, ErrCreditLimitExceeded
	}

	// 3. 与已报名课程的硬冲突检查（报名与书签篮不同：冲突直接拒绝）
	active, err := s.repo.Application.ListActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	candidate := toSection(course)
	for i := range active {
		if active[i].Course == nil {
			continue
		}
		if timetable.HasConflict(candidate, toSection(active[i].Course)) {
			return nil, ErrScheduleConflict
		}
	}

	app := &model.Application{
		ID:        uuid.New().String(),
		UserID:    userID,
		CourseRef: req.CourseRef,
		Method:    req.Method,
		BidPoints: req.BidPoints,
	}

	switch req.Method {
	case model.MethodFCFS:
		app.BidPoints = 0
		switch err := s.takeSeat(ctx, course); {
		case err == nil:
			app.Status = model.AppStatusEnrolled
		case errors.Is(err, ErrCourseFull) && !s.cfg.Enrollment.FCFSCloseOnFull:
			// 满员不关闭申请时转入候补（bid=0），名额释放后随开奖分配
			app.Status = model.AppStatusPending
		default:
			return nil, err
		}

	case model.MethodBID:
		if req.BidPoints <= 0 {
			return nil, ErrBidRequired
		}
		// 出价即扣点，落选时退还
		if err := s.repo.User.DeductPoints(ctx, userID, req.BidPoints); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInsufficientPoints
			}
			return nil, err
		}
		app.Status = model.AppStatusPending
	}

	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("创建报名记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("报名成功",
		zap.String("user_id", userID),
		zap.String("course", course.CourseID+"-"+course.ClassID),
		zap.String("method", req.Method),
		zap.String("status", app.Status),
	)

	app.Course = course
	return toApplicationInfo(app), nil
}

// takeSeat 以乐观锁占用一个名额，版本冲突时重读重试
func (s *enrollmentService) takeSeat(ctx context.Context, course *model.Course) error {
	for i := 0; i < enrollRetries; i++ {
		if course.IsFull() {
			return ErrCourseFull
		}
		err := s.repo.Course.IncrementEnrolled(ctx, course.ID, course.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrOptimisticLock) {
			return err
		}
		fresh, err := s.repo.Course.GetByID(ctx, course.ID)
		if err != nil {
			return err
		}
		*course = *fresh
	}
	return ErrCourseFull
}

func (s *enrollmentService) Cancel(ctx context.Context, userID, applicationID string) error {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}
	if app.UserID != userID {
		return ErrApplicationNotFound
	}

	switch app.Status {
	case model.AppStatusEnrolled:
		if err := s.repo.Course.DecrementEnrolled(ctx, app.CourseRef); err != nil {
			s.logger.Error("释放名额失败", zap.Error(err))
			return err
		}
	case model.AppStatusPending:
		if err := s.refundBid(ctx, app); err != nil {
			return err
		}
	default:
		return ErrNotCancelable
	}

	return s.repo.Application.UpdateStatus(ctx, applicationID, model.AppStatusCanceled)
}

func (s *enrollmentService) refundBid(ctx context.Context, app *model.Application) error {
	if app.Method != model.MethodBID || app.BidPoints <= 0 {
		return nil
	}
	user, err := s.repo.User.GetByID(ctx, app.UserID)
	if err != nil {
		return err
	}
	user.Points += app.BidPoints
	return s.repo.User.Update(ctx, user)
}

func (s *enrollmentService) ListMine(ctx context.Context, userID string) ([]dto.ApplicationInfo, error) {
	apps, err := s.repo.Application.ListActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ApplicationInfo, 0, len(apps))
	for i := range apps {
		out = append(out, *toApplicationInfo(&apps[i]))
	}
	return out, nil
}

func (s *enrollmentService) Draw(ctx context.Context, courseRef string) (*dto.DrawResultInfo, error) {
	course, err := s.repo.Course.GetByID(ctx, courseRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	apps, err := s.repo.Application.ListPendingByCourse(ctx, courseRef)
	if err != nil {
		s.logger.Error("查询待开奖申请失败", zap.Error(err))
		return nil, err
	}

	// 同价申请在组内按种子洗牌，保证同一种子下结果可复现
	shuffleTies(apps, s.drawSeed(courseRef))

	remaining := len(apps)
	if course.Capacity > 0 {
		remaining = course.Capacity - course.Enrolled
		if remaining < 0 {
			remaining = 0
		}
	}

	result := &dto.DrawResultInfo{CourseRef: courseRef}
	for i := range apps {
		app := &apps[i]
		if i < remaining {
			if err := s.takeSeat(ctx, course); err != nil {
				if !errors.Is(err, ErrCourseFull) {
					return nil, err
				}
				// 名额在开奖中途被抢光，余下申请全部落选
				remaining = i
			}
		}
		if i < remaining {
			if err := s.repo.Application.UpdateStatus(ctx, app.ID, model.AppStatusEnrolled); err != nil {
				return nil, err
			}
			result.Winners = append(result.Winners, app.ID)
			continue
		}
		if err := s.refundBid(ctx, app); err != nil {
			return nil, err
		}
		if err := s.repo.Application.UpdateStatus(ctx, app.ID, model.AppStatusRejected); err != nil {
			return nil, err
		}
		result.Losers = append(result.Losers, app.ID)
	}

	s.logger.Info("베팅开奖完成",
		zap.String("course_ref", courseRef),
		zap.Int("winners", len(result.Winners)),
		zap.Int("losers", len(result.Losers)),
	)
	return result, nil
}

// drawSeed 课程级种子：全局种子与课程标识混合，课程间互不影响
func (s *enrollmentService) drawSeed(courseRef string) int64 {
	h := fnv.New64a()
	h.Write([]byte(courseRef))
	return s.cfg.Enrollment.BidDrawSeed ^ int64(h.Sum64())
}

// shuffleTies 对出价相同的相邻申请段做种子洗牌
// 输入已按 bid_points 降序排列，段间顺序保持不变
func shuffleTies(apps []model.Application, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	i := 0
	for i < len(apps) {
		j := i + 1
		for j < len(apps) && apps[j].BidPoints == apps[i].BidPoints {
			j++
		}
		group := apps[i:j]
		rng.Shuffle(len(group), func(a, b int) {
			group[a], group[b] = group[b], group[a]
		})
		i = j
	}
}

func toApplicationInfo(app *model.Application) *dto.ApplicationInfo {
	info := &dto.ApplicationInfo{
		ID:        app.ID,
		Method:    app.Method,
		BidPoints: app.BidPoints,
		Status:    app.Status,
		CreatedAt: app.CreatedAt.Format(time.RFC3339),
	}
	if app.Course != nil {
		info.Course = toCourseInfo(app.Course)
	}
	return info
}
