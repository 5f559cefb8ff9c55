package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/internal/model"
)

// ApplicationRepository 报名申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByUserAndCourse(ctx context.Context, userID, courseRef string) (*model.Application, error)
	// ListActiveByUser 返回占用名额或待开奖的申请（pending/enrolled）
	ListActiveByUser(ctx context.Context, userID string) ([]model.Application, error)
	// ListPendingByCourse 按出价降序返回待开奖申请，用于베팅抽签
	ListPendingByCourse(ctx context.Context, courseRef string) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SumActiveCredits(ctx context.Context, userID string) (int, error)
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Preload("Course.Meetings").
		Preload("Course").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByUserAndCourse(ctx context.Context, userID, courseRef string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_ref = ?", userID, courseRef).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Course.Meetings").
		Preload("Course").
		Where("user_id = ? AND status IN ?", userID,
			[]string{model.AppStatusPending, model.AppStatusEnrolled}).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepo) ListPendingByCourse(ctx context.Context, courseRef string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("course_ref = ? AND status = ?", courseRef, model.AppStatusPending).
		Order("bid_points DESC, created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepo) SumActiveCredits(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Select("COALESCE(SUM(courses.credits), 0)").
		Joins("JOIN courses ON courses.id = applications.course_ref").
		Where("applications.user_id = ? AND applications.status IN ?", userID,
			[]string{model.AppStatusPending, model.AppStatusEnrolled}).
		Scan(&total).Error
	return total, err
}
