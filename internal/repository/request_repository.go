package repository

import (
	"time"

	"github.com/gridops/outage-gin/internal/model"
	"gorm.io/gorm"
)

// RequestRepository 停电申请仓储接口
type RequestRepository interface {
	Save(req *model.OutageRequestModel) error
	// CreateAll 在单个事务内批量创建, 全部成功或全部失败
	CreateAll(reqs []*model.OutageRequestModel) error
	FindByID(id string) (*model.OutageRequestModel, error)
	FindAll() ([]*model.OutageRequestModel, error)
	FindByFilter(filter *RequestFilter) ([]*model.OutageRequestModel, error)
}

// RequestFilter 申请查询过滤器
type RequestFilter struct {
	ApprovalState  *string
	OperationState *string
	OrgUnitID      *string
	DateFrom       *time.Time
	DateTo         *time.Time
}

// requestRepository 申请仓储实现
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建申请仓储
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Save 保存申请
func (r *requestRepository) Save(req *model.OutageRequestModel) error {
	return r.db.Save(req).Error
}

// CreateAll 批量创建申请
// 任一行失败即整体回滚, 不产生部分写入
func (r *requestRepository) CreateAll(reqs []*model.OutageRequestModel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, req := range reqs {
			if err := req.Validate(); err != nil {
				return err
			}
			if err := tx.Create(req).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID 根据 ID 查找申请
func (r *requestRepository) FindByID(id string) (*model.OutageRequestModel, error) {
	var req model.OutageRequestModel
	if err := r.db.Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// FindAll 查找所有申请
func (r *requestRepository) FindAll() ([]*model.OutageRequestModel, error) {
	var reqs []*model.OutageRequestModel
	err := r.db.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

// FindByFilter 根据过滤器查找申请
func (r *requestRepository) FindByFilter(filter *RequestFilter) ([]*model.OutageRequestModel, error) {
	var reqs []*model.OutageRequestModel
	query := r.db.Model(&model.OutageRequestModel{})

	if filter != nil {
		if filter.ApprovalState != nil {
			query = query.Where("approval_state = ?", *filter.ApprovalState)
		}
		if filter.OperationState != nil {
			query = query.Where("operation_state = ?", *filter.OperationState)
		}
		if filter.OrgUnitID != nil {
			query = query.Where("org_unit_id = ?", *filter.OrgUnitID)
		}
		if filter.DateFrom != nil {
			query = query.Where("outage_date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("outage_date <= ?", *filter.DateTo)
		}
	}

	err := query.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}
