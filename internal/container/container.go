package container

import (
	"fmt"
	"time"

	"github.com/gridops/outage-gin/internal/batch"
	"github.com/gridops/outage-gin/internal/config"
	"github.com/gridops/outage-gin/internal/database"
	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/repository"
	"github.com/gridops/outage-gin/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理数据库、仓储、服务等应用依赖
type Container struct {
	db             *gorm.DB
	logger         *logrus.Logger
	batches        *batch.Manager
	requestRepo    repository.RequestRepository
	directoryRepo  repository.DirectoryRepository
	importService  service.ImportService
	requestService service.RequestService
}

// NewContainer 创建依赖注入容器
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 数据库, 默认重试 3 次, 初始间隔 1 秒, 指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Import.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load import timezone: %w", err)
	}

	requestRepo := repository.NewRequestRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	batches := batch.NewManager()

	limits := importer.Limits{
		MaxFileSize:      cfg.Import.MaxFileSize,
		MaxRowsCSV:       cfg.Import.MaxRowsCSV,
		MaxRowsXLSX:      cfg.Import.MaxRowsXLSX,
		ErrorDetailLimit: cfg.Import.ErrorDetailLimit,
	}

	return &Container{
		db:            db,
		logger:        logger,
		batches:       batches,
		requestRepo:   requestRepo,
		directoryRepo: directoryRepo,
		importService: service.NewImportService(directoryRepo, batches, limits,
			cfg.Import.MinLeadDays, loc, logger),
		requestService: service.NewRequestService(requestRepo, batches, loc, logger),
	}, nil
}

// DB 数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// ImportService 导入服务
func (c *Container) ImportService() service.ImportService {
	return c.importService
}

// RequestService 申请服务
func (c *Container) RequestService() service.RequestService {
	return c.requestService
}

// DirectoryRepository 参考数据仓储
func (c *Container) DirectoryRepository() repository.DirectoryRepository {
	return c.directoryRepo
}

// ApplyImportConfig 将新的导入限制下发到导入服务
func (c *Container) ApplyImportConfig(cfg *config.Config) {
	c.importService.UpdateLimits(importer.Limits{
		MaxFileSize:      cfg.Import.MaxFileSize,
		MaxRowsCSV:       cfg.Import.MaxRowsCSV,
		MaxRowsXLSX:      cfg.Import.MaxRowsXLSX,
		ErrorDetailLimit: cfg.Import.ErrorDetailLimit,
	}, cfg.Import.MinLeadDays)
}

// Close 释放容器持有的资源
func (c *Container) Close() {
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
