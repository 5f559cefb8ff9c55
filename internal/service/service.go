package service

import (
	"go.uber.org/zap"

	"github.com/hy-hyun/prototype/config"
	"github.com/hy-hyun/prototype/internal/repository"
	"github.com/hy-hyun/prototype/pkg/jwt"
	"github.com/hy-hyun/prototype/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Catalog    CatalogService
	Cart       CartService
	Enrollment EnrollmentService
	Timetable  TimetableService
}

// NewService 创建 Service 聚合
// cache 可为 nil（Redis 不可用时降级为直连数据库）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	timetableSvc := NewTimetableService(cfg, repo, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, logger),
		Catalog:    NewCatalogService(repo, cache, logger),
		Cart:       NewCartService(repo, logger),
		Enrollment: NewEnrollmentService(cfg, repo, logger),
		Timetable:  timetableSvc,
	}
}
