package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hy-hyun/prototype/config"
	"github.com/hy-hyun/prototype/internal/api/handler"
	"github.com/hy-hyun/prototype/internal/api/middleware"
	"github.com/hy-hyun/prototype/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// 课程目录（公开浏览）
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Catalog.List)
			courses.GET("/:id", h.Catalog.Get)
			courses.POST("", h.Catalog.Import)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			authorized.GET("/auth/me", h.Auth.Me)

			// 书签篮模块
			cart := authorized.Group("/cart")
			{
				cart.GET("", h.Cart.List)
				cart.POST("", h.Cart.Add)
				cart.DELETE("/:courseRef", h.Cart.Remove)
				cart.PUT("/:courseRef/bid", h.Cart.SetBid)
			}

			// 报名模块
			enrollments := authorized.Group("/enrollments")
			{
				enrollments.GET("", h.Enrollment.ListMine)
				enrollments.POST("", h.Enrollment.Apply)
				enrollments.DELETE("/:id", h.Enrollment.Cancel)
				enrollments.POST("/draw/:courseRef", h.Enrollment.Draw)
			}

			// 时间表模块
			timetable := authorized.Group("/timetable")
			{
				timetable.GET("", h.Timetable.My)
				timetable.POST("/check", h.Timetable.CheckAddition)
				timetable.GET("/export/xlsx", h.Timetable.ExportXLSX)
				timetable.GET("/export/ics", h.Timetable.ExportICS)
			}
		}
	}

	return r
}
