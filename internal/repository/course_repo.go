package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/internal/model"
	apperrors "github.com/hy-hyun/prototype/pkg/errors"
)

// CourseFilter 课程目录查询条件（全部可选，零值忽略）
type CourseFilter struct {
	Query      string // 模糊匹配课程名 / 학수번호 / 教师
	Department string
	Category   string
	Credits    int
	DayOfWeek  int // 1=周一 … 7=周日，按上课时间过滤
	Page       int
	PageSize   int
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByKey(ctx context.Context, courseID, classID string) (*model.Course, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	// IncrementEnrolled 以乐观锁方式占用一个名额；
	// 已满或版本冲突时返回 apperrors.ErrOptimisticLock
	IncrementEnrolled(ctx context.Context, id string, version int64) error
	DecrementEnrolled(ctx context.Context, id string) error
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) List(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Course{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		db = db.Where("title ILIKE ? OR course_id ILIKE ? OR instructor ILIKE ?", like, like, like)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Credits > 0 {
		db = db.Where("credits = ?", filter.Credits)
	}
	if filter.DayOfWeek > 0 {
		db = db.Where("id IN (?)",
			r.db.Model(&model.CourseMeeting{}).
				Select("course_ref").
				Where("day_of_week = ?", filter.DayOfWeek))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var courses []model.Course
	if err := db.Preload("Meetings").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Order("course_id ASC, class_id ASC").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Meetings").
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByKey(ctx context.Context, courseID, classID string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Meetings").
		Where("course_id = ? AND class_id = ?", courseID, classID).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Meetings").
		Where("id IN ?", ids).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) IncrementEnrolled(ctx context.Context, id string, version int64) error {
	res := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ? AND version = ? AND (capacity = 0 OR enrolled < capacity)", id, version).
		UpdateColumns(map[string]interface{}{
			"enrolled": gorm.Expr("enrolled + 1"),
			"version":  gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *courseRepo) DecrementEnrolled(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ? AND enrolled > 0", id).
		UpdateColumns(map[string]interface{}{
			"enrolled": gorm.Expr("enrolled - 1"),
			"version":  gorm.Expr("version + 1"),
		}).Error
}
