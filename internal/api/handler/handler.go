package handler

import "github.com/hy-hyun/prototype/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Cart       *CartHandler
	Enrollment *EnrollmentHandler
	Timetable  *TimetableHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Cart:       NewCartHandler(svc.Cart),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Timetable:  NewTimetableHandler(svc.Timetable),
	}
}
