package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gridops/outage-gin/internal/config"
	"gorm.io/gorm"
)

// Controllers 路由所需的控制器集合
type Controllers struct {
	Import    *ImportController
	Request   *RequestController
	Directory *DirectoryController
}

// SetupRoutes 配置路由
func SetupRoutes(db *gorm.DB, cfg *config.Config, ctrl Controllers) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(ErrorHandlerMiddleware())

	// 健康检查
	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// 导入与待提交列表
		imports := v1.Group("/imports")
		{
			// 上传解析开销大, 单独限流
			imports.POST("", RateLimitMiddleware(5, 10), ctrl.Import.Import)
			imports.GET("/pending", ctrl.Import.Pending)
			imports.DELETE("/pending", ctrl.Import.ClearPending)
			imports.DELETE("/pending/:index", ctrl.Import.RemovePending)
			imports.POST("/pending/submit", ctrl.Request.SubmitPending)
		}

		// 申请管理
		requests := v1.Group("/requests")
		{
			requests.GET("", ctrl.Request.List)
			requests.GET("/:id", ctrl.Request.Get)
			requests.POST("/:id/confirm", ctrl.Request.Confirm)
			requests.POST("/:id/cancel", ctrl.Request.Cancel)
			requests.POST("/:id/process", ctrl.Request.Process)
		}

		// 参考数据
		v1.GET("/org-units", ctrl.Directory.ListOrgUnits)
		v1.GET("/org-units/:id/sub-units", ctrl.Directory.ListSubUnits)
		v1.GET("/equipment", ctrl.Directory.SearchEquipment)
	}

	return router
}
