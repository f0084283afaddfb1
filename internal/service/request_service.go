package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gridops/outage-gin/internal/batch"
	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/lifecycle"
	"github.com/gridops/outage-gin/internal/metrics"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/gridops/outage-gin/internal/repository"
	"github.com/sirupsen/logrus"
)

// ErrIllegalTransition 非法的状态变更
var ErrIllegalTransition = errors.New("illegal state transition")

// RequestView 带分类结果的申请视图
type RequestView struct {
	model.OutageRequestModel
	Bucket lifecycle.Bucket `json:"bucket"`
	Color  string           `json:"color"`
}

// RequestService 停电申请服务接口
type RequestService interface {
	// SubmitPending 将待提交列表原子落库, 成功后清空列表并返回创建条数
	SubmitPending(ctx context.Context, caller Caller) (int, error)
	List(ctx context.Context, filter *repository.RequestFilter) ([]RequestView, error)
	Get(ctx context.Context, id string) (*RequestView, error)
	ConfirmApproval(ctx context.Context, id, actor string) error
	CancelApproval(ctx context.Context, id, actor string) error
	MarkProcessed(ctx context.Context, id, actor string) error
	CancelOperation(ctx context.Context, id, actor string) error
}

// requestService 申请服务实现
type requestService struct {
	repo    repository.RequestRepository
	batches *batch.Manager
	loc     *time.Location
	logger  *logrus.Logger
}

// NewRequestService 创建申请服务
func NewRequestService(repo repository.RequestRepository, batches *batch.Manager,
	loc *time.Location, logger *logrus.Logger) RequestService {
	return &requestService{repo: repo, batches: batches, loc: loc, logger: logger}
}

// SubmitPending 批量提交待提交列表
// 落库失败时列表保持原样, 操作员可以直接重试
func (s *requestService) SubmitPending(ctx context.Context, caller Caller) (int, error) {
	acc := s.batches.Get(caller.key())
	drafts := acc.Items()
	if len(drafts) == 0 {
		return 0, batch.ErrPendingEmpty
	}

	now := time.Now()
	reqs := make([]*model.OutageRequestModel, 0, len(drafts))
	for _, d := range drafts {
		reqs = append(reqs, &model.OutageRequestModel{
			ID:             uuid.NewString(),
			OutageDate:     d.OutageDate,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			OrgUnitID:      d.OrgUnitID,
			SubUnitID:      d.SubUnitID,
			EquipmentID:    d.EquipmentID,
			Location:       d.Location,
			Area:           d.Area,
			ApprovalState:  model.ApprovalPending,
			OperationState: model.OperationNotStarted,
			CreatedBy:      caller.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if err := s.repo.CreateAll(reqs); err != nil {
		s.logger.WithError(err).WithField("count", len(reqs)).Error("batch submit failed")
		return 0, fmt.Errorf("batch submit failed: %w", err)
	}

	acc.Clear()
	metrics.SetPendingBatchSize(caller.key(), 0)
	metrics.RecordRequestsCreated(len(reqs))
	s.logger.WithField("count", len(reqs)).Info("pending batch submitted")
	return len(reqs), nil
}

// List 查询申请并按展示规则分类和排序
func (s *requestService) List(ctx context.Context, filter *repository.RequestFilter) ([]RequestView, error) {
	found, err := s.repo.FindByFilter(filter)
	if err != nil {
		return nil, err
	}

	reqs := make([]model.OutageRequestModel, 0, len(found))
	for _, r := range found {
		reqs = append(reqs, *r)
	}

	today := importer.Midnight(time.Now(), s.loc)
	sorted := lifecycle.SortRequests(reqs, today)

	views := make([]RequestView, 0, len(sorted))
	for _, r := range sorted {
		bucket := lifecycle.Classify(&r, today)
		views = append(views, RequestView{OutageRequestModel: r, Bucket: bucket, Color: bucket.Color()})
	}
	return views, nil
}

// Get 获取单条申请的分类视图
func (s *requestService) Get(ctx context.Context, id string) (*RequestView, error) {
	req, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	today := importer.Midnight(time.Now(), s.loc)
	bucket := lifecycle.Classify(req, today)
	return &RequestView{OutageRequestModel: *req, Bucket: bucket, Color: bucket.Color()}, nil
}

// ConfirmApproval 批准申请 (仅允许从待审批状态)
func (s *requestService) ConfirmApproval(ctx context.Context, id, actor string) error {
	return s.transition(id, "confirm", func(req *model.OutageRequestModel) error {
		if req.ApprovalState != model.ApprovalPending {
			return fmt.Errorf("%w: approval state is %s", ErrIllegalTransition, req.ApprovalState)
		}
		req.ApprovalState = model.ApprovalConfirmed
		stamp(&req.ApprovalAt, &req.ApprovalBy, actor)
		return nil
	})
}

// CancelApproval 取消申请 (允许从待审批或已批准状态)
func (s *requestService) CancelApproval(ctx context.Context, id, actor string) error {
	return s.transition(id, "cancel_approval", func(req *model.OutageRequestModel) error {
		if req.ApprovalState == model.ApprovalCancelled {
			return fmt.Errorf("%w: already cancelled", ErrIllegalTransition)
		}
		req.ApprovalState = model.ApprovalCancelled
		stamp(&req.ApprovalAt, &req.ApprovalBy, actor)
		return nil
	})
}

// MarkProcessed 登记作业已执行 (要求申请已批准)
func (s *requestService) MarkProcessed(ctx context.Context, id, actor string) error {
	return s.transition(id, "process", func(req *model.OutageRequestModel) error {
		if req.ApprovalState != model.ApprovalConfirmed {
			return fmt.Errorf("%w: request is not confirmed", ErrIllegalTransition)
		}
		if req.OperationState != model.OperationNotStarted {
			return fmt.Errorf("%w: operation state is %s", ErrIllegalTransition, req.OperationState)
		}
		req.OperationState = model.OperationProcessed
		stamp(&req.OperationAt, &req.OperationBy, actor)
		return nil
	})
}

// CancelOperation 登记作业取消
func (s *requestService) CancelOperation(ctx context.Context, id, actor string) error {
	return s.transition(id, "cancel_operation", func(req *model.OutageRequestModel) error {
		if req.OperationState != model.OperationNotStarted {
			return fmt.Errorf("%w: operation state is %s", ErrIllegalTransition, req.OperationState)
		}
		req.OperationState = model.OperationCancelled
		stamp(&req.OperationAt, &req.OperationBy, actor)
		return nil
	})
}

// transition 加载-变更-保存一条申请
func (s *requestService) transition(id, action string, mutate func(*model.OutageRequestModel) error) error {
	req, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := mutate(req); err != nil {
		return err
	}
	req.UpdatedAt = time.Now()
	if err := s.repo.Save(req); err != nil {
		return err
	}
	metrics.RecordTransition(action)
	return nil
}

func stamp(at **time.Time, by *string, actor string) {
	now := time.Now()
	*at = &now
	*by = actor
}
