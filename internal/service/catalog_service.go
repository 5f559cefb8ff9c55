package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/repository"
	"github.com/hy-hyun/prototype/pkg/redis"
)

var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrCourseExists   = errors.New("该分班已存在")
)

// CatalogService 课程目录业务接口
type CatalogService interface {
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseInfo, int64, error)
	Get(ctx context.Context, id string) (*dto.CourseInfo, error)
	GetByKey(ctx context.Context, courseID, classID string) (*dto.CourseInfo, error)
	// Import 接入外部目录数据：原始时间段经适配器归一化后入库
	Import(ctx context.Context, req *dto.CourseImportRequest) (*dto.CourseInfo, error)
}

type catalogService struct {
	repo   *repository.Repository
	cache  *redis.Client // 可为 nil（降级直连数据库）
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, cache: cache, logger: logger}
}

// cachedCourseList 目录列表缓存载体
type cachedCourseList struct {
	Items []dto.CourseInfo `json:"items"`
	Total int64            `json:"total"`
}

func listCacheKey(req *dto.CourseListRequest) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s|%d|%d|%d|%d",
		req.Query, req.Department, req.Category, req.Credits, req.DayOfWeek, req.Page, req.PageSize)))
	return "catalog:list:" + hex.EncodeToString(sum[:8])
}

func (s *catalogService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseInfo, int64, error) {
	key := listCacheKey(req)

	if s.cache != nil {
		var cached cachedCourseList
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("读取目录缓存失败，回退数据库", zap.Error(err))
		} else if hit {
			return cached.Items, cached.Total, nil
		}
	}

	courses, total, err := s.repo.Course.List(ctx, repository.CourseFilter{
		Query:      req.Query,
		Department: req.Department,
		Category:   req.Category,
		Credits:    req.Credits,
		DayOfWeek:  req.DayOfWeek,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.CourseInfo, 0, len(courses))
	for i := range courses {
		items = append(items, *toCourseInfo(&courses[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, cachedCourseList{Items: items, Total: total}, redis.TTLMedium); err != nil {
			s.logger.Warn("写入目录缓存失败", zap.Error(err))
		}
	}

	return items, total, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*dto.CourseInfo, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseInfo(course), nil
}

func (s *catalogService) GetByKey(ctx context.Context, courseID, classID string) (*dto.CourseInfo, error) {
	course, err := s.repo.Course.GetByKey(ctx, courseID, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseInfo(course), nil
}

func (s *catalogService) Import(ctx context.Context, req *dto.CourseImportRequest) (*dto.CourseInfo, error) {
	if _, err := s.repo.Course.GetByKey(ctx, req.CourseID, req.ClassID); err == nil {
		return nil, ErrCourseExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	meetings := ParseRawSchedule(req.Schedule, s.logger)
	if len(meetings) == 0 {
		return nil, ErrScheduleUnparsable
	}

	credits := req.Credits
	if credits == 0 {
		credits = 3
	}

	course := &model.Course{
		ID:         uuid.New().String(),
		CourseID:   req.CourseID,
		ClassID:    req.ClassID,
		Title:      req.Title,
		Instructor: req.Instructor,
		Department: req.Department,
		Category:   req.Category,
		Credits:    credits,
		Capacity:   req.Capacity,
		Keywords:   model.StringList(req.Keywords),
		Meetings:   meetings,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	// 目录已变化，整组列表缓存失效
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "catalog:list:*"); err != nil {
			s.logger.Warn("目录缓存失效失败", zap.Error(err))
		}
	}

	return toCourseInfo(course), nil
}
