package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/repository"
	"github.com/hy-hyun/prototype/internal/timetable"
)

var (
	ErrAlreadyInCart      = errors.New("该课程已在书签篮中")
	ErrCartItemNotFound   = errors.New("书签篮中无此课程")
	ErrInsufficientPoints = errors.New("베팅 포인트余额不足")
)

// CartService 书签篮业务接口
//
// 时间冲突与课间移动风险只作为警告随响应返回，不阻止加入——
// 学生在凑课表阶段需要先收藏再取舍
type CartService interface {
	Add(ctx context.Context, userID string, req *dto.CartAddRequest) (*dto.CartAddResponse, error)
	Remove(ctx context.Context, userID, courseRef string) error
	List(ctx context.Context, userID string) ([]dto.CartItemInfo, error)
	SetBid(ctx context.Context, userID, courseRef string, bidPoints int) error
}

type cartService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCartService 创建 CartService 实例
func NewCartService(repo *repository.Repository, logger *zap.Logger) CartService {
	return &cartService{repo: repo, logger: logger}
}

func (s *cartService) Add(ctx context.Context, userID string, req *dto.CartAddRequest) (*dto.CartAddResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Cart.Get(ctx, userID, req.CourseRef); err == nil {
		return nil, ErrAlreadyInCart
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 对照书签篮现有课程评估候选课
	existing, err := s.repo.Cart.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询书签篮失败", zap.Error(err))
		return nil, err
	}
	candidate := toSection(course)
	sections := cartSections(existing)
	conflicts := conflictInfos(candidate, sections)
	gaps := toGapInfos(timetable.AnalyzeAddition(candidate, sections))

	item := &model.CartItem{
		UserID:    userID,
		CourseRef: req.CourseRef,
		BidPoints: req.BidPoints,
	}
	if err := s.repo.Cart.Add(ctx, item); err != nil {
		s.logger.Error("加入书签篮失败", zap.Error(err))
		return nil, err
	}

	return &dto.CartAddResponse{
		Item: &dto.CartItemInfo{
			ID:        item.ID,
			Course:    toCourseInfo(course),
			BidPoints: item.BidPoints,
		},
		Conflicts: conflicts,
		Gaps:      gaps,
	}, nil
}

func (s *cartService) Remove(ctx context.Context, userID, courseRef string) error {
	if _, err := s.repo.Cart.Get(ctx, userID, courseRef); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return s.repo.Cart.Remove(ctx, userID, courseRef)
}

func (s *cartService) List(ctx context.Context, userID string) ([]dto.CartItemInfo, error) {
	items, err := s.repo.Cart.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询书签篮失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.CartItemInfo, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.Course == nil {
			continue
		}
		// 每个条目对照其余条目给出警告
		rest := make([]model.CartItem, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)

		candidate := toSection(item.Course)
		sections := cartSections(rest)

		out = append(out, dto.CartItemInfo{
			ID:        item.ID,
			Course:    toCourseInfo(item.Course),
			BidPoints: item.BidPoints,
			Conflicts: conflictInfos(candidate, sections),
			Gaps:      toGapInfos(timetable.AnalyzeAddition(candidate, sections)),
		})
	}
	return out, nil
}

func (s *cartService) SetBid(ctx context.Context, userID, courseRef string, bidPoints int) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if bidPoints > user.Points {
		return ErrInsufficientPoints
	}

	if err := s.repo.Cart.UpdateBid(ctx, userID, courseRef, bidPoints); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

// ── 辅助函数 ──

func cartSections(items []model.CartItem) []timetable.Section {
	sections := make([]timetable.Section, 0, len(items))
	for i := range items {
		if items[i].Course != nil {
			sections = append(sections, toSection(items[i].Course))
		}
	}
	return sections
}

// conflictInfos 候选课与现有课程的硬冲突列表
func conflictInfos(candidate timetable.Section, existing []timetable.Section) []dto.ConflictInfo {
	var out []dto.ConflictInfo
	for _, sec := range existing {
		if timetable.HasConflict(candidate, sec) {
			out = append(out, dto.ConflictInfo{
				CourseID: sec.CourseID,
				ClassID:  sec.ClassID,
				Title:    sec.Title,
			})
		}
	}
	return out
}
