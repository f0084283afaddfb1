package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gridops/outage-gin/internal/batch"
	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/metrics"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/sirupsen/logrus"
)

// Caller 调用方身份, 由外部认证层通过请求头传入
type Caller struct {
	UserID    string
	OrgUnitID string
	SubUnitID string
	Role      importer.Role
}

// key 待提交列表的归属键
func (c Caller) key() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.OrgUnitID
}

// ImportService 批量导入服务接口
type ImportService interface {
	// ImportFile 执行一次导入; 待提交列表非空时拒绝并返回 batch.ErrPendingNotEmpty
	ImportFile(ctx context.Context, caller Caller, filename string, size int64, file io.Reader) (*model.ImportResult, error)
	Pending(caller Caller) []model.DraftRequest
	RemovePending(caller Caller, index int) error
	ClearPending(caller Caller)
	// UpdateLimits 热更新导入限制, 对进行中的导入不生效
	UpdateLimits(limits importer.Limits, leadDays int)
}

// importService 导入服务实现
type importService struct {
	dir     importer.Directory
	batches *batch.Manager
	loc     *time.Location
	logger  *logrus.Logger

	mu       sync.RWMutex
	limits   importer.Limits
	leadDays int
}

// NewImportService 创建导入服务
func NewImportService(dir importer.Directory, batches *batch.Manager, limits importer.Limits,
	leadDays int, loc *time.Location, logger *logrus.Logger) ImportService {
	return &importService{
		dir:      dir,
		batches:  batches,
		limits:   limits,
		leadDays: leadDays,
		loc:      loc,
		logger:   logger,
	}
}

// ImportFile 执行一次导入
// 通过校验的草稿立即进入待提交列表; 落库只发生在批量提交时
func (s *importService) ImportFile(ctx context.Context, caller Caller, filename string,
	size int64, file io.Reader) (*model.ImportResult, error) {

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	acc := s.batches.Get(caller.key())
	if acc.Len() > 0 {
		metrics.RecordImport(format, "refused", 0, 0)
		return nil, batch.ErrPendingNotEmpty
	}

	// 特权调用方按文件中的单位列解析, 需要完整单位列表
	var knownUnits []model.OrgUnitModel
	if caller.Role == importer.RoleAdmin {
		units, err := s.dir.ListOrgUnits(ctx)
		if err != nil {
			return nil, err
		}
		knownUnits = units
	}

	layout := importer.RowLayout{
		Privileged:      caller.Role == importer.RoleAdmin,
		CallerUnitID:    caller.OrgUnitID,
		CallerSubUnitID: caller.SubUnitID,
	}
	s.mu.RLock()
	limits := s.limits
	leadDays := s.leadDays
	s.mu.RUnlock()
	dates := &importer.DateChecker{
		MinLeadDays: leadDays,
		Today:       importer.Midnight(time.Now(), s.loc),
	}
	pipeline := importer.NewPipeline(s.dir, dates, limits, s.logger)

	result, drafts, err := pipeline.Run(ctx, file, filename, size, layout, knownUnits)
	if err != nil {
		metrics.RecordImport(format, "failed", 0, 0)
		return nil, err
	}

	if len(drafts) > 0 {
		acc.Append(drafts...)
		metrics.SetPendingBatchSize(caller.key(), acc.Len())
	}

	outcome := "ok"
	switch {
	case result.Partial:
		outcome = "partial"
	case result.Accepted == 0 && len(result.Errors) > 0:
		outcome = "rejected"
	}
	metrics.RecordImport(format, outcome, result.Accepted, result.Rejected())

	return result, nil
}

// Pending 当前待提交列表
func (s *importService) Pending(caller Caller) []model.DraftRequest {
	return s.batches.Get(caller.key()).Items()
}

// RemovePending 按下标移除待提交草稿
func (s *importService) RemovePending(caller Caller, index int) error {
	acc := s.batches.Get(caller.key())
	if err := acc.RemoveAt(index); err != nil {
		return err
	}
	metrics.SetPendingBatchSize(caller.key(), acc.Len())
	return nil
}

// ClearPending 清空待提交列表(操作员确认放弃)
func (s *importService) ClearPending(caller Caller) {
	s.batches.Get(caller.key()).Clear()
	metrics.SetPendingBatchSize(caller.key(), 0)
}

// UpdateLimits 热更新导入限制
func (s *importService) UpdateLimits(limits importer.Limits, leadDays int) {
	s.mu.Lock()
	s.limits = limits
	s.leadDays = leadDays
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{
		"max_file_size": limits.MaxFileSize,
		"max_rows_csv":  limits.MaxRowsCSV,
		"max_rows_xlsx": limits.MaxRowsXLSX,
		"min_lead_days": leadDays,
	}).Info("import limits updated")
}
