package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hy-hyun/prototype/internal/model"
)

// CartRepository 书签篮数据访问接口
type CartRepository interface {
	Add(ctx context.Context, item *model.CartItem) error
	Remove(ctx context.Context, userID, courseRef string) error
	Get(ctx context.Context, userID, courseRef string) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]model.CartItem, error)
	UpdateBid(ctx context.Context, userID, courseRef string, bidPoints int) error
}

// cartRepo CartRepository 的 GORM 实现
type cartRepo struct {
	db *gorm.DB
}

// NewCartRepo 创建 CartRepository 实例
func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Add(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) Remove(ctx context.Context, userID, courseRef string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_ref = ?", userID, courseRef).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepo) Get(ctx context.Context, userID, courseRef string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Course.Meetings").
		Preload("Course").
		Where("user_id = ? AND course_ref = ?", userID, courseRef).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) ListByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Course.Meetings").
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepo) UpdateBid(ctx context.Context, userID, courseRef string, bidPoints int) error {
	res := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ? AND course_ref = ?", userID, courseRef).
		UpdateColumn("bid_points", bidPoints)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
