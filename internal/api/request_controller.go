package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gridops/outage-gin/internal/batch"
	"github.com/gridops/outage-gin/internal/repository"
	"github.com/gridops/outage-gin/internal/service"
	"github.com/gridops/outage-gin/internal/utils"
)

// RequestController 停电申请控制器
type RequestController struct {
	requestService service.RequestService
}

// NewRequestController 创建申请控制器
func NewRequestController(requestService service.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// validateID 验证申请 ID 并在无效时返回错误响应
func (c *RequestController) validateID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateRequestID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request ID", err.Error())
		return false
	}
	return true
}

// SubmitPending 原子提交待提交列表
// @Summary      提交待提交列表
// @Description  将待提交列表一次性落库, 全部成功或全部失败
// @Tags         申请管理
// @Produce      json
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /imports/pending/submit [post]
func (c *RequestController) SubmitPending(ctx *gin.Context) {
	count, err := c.requestService.SubmitPending(ctx.Request.Context(), callerFrom(ctx))
	if err != nil {
		if errors.Is(err, batch.ErrPendingEmpty) {
			Error(ctx, http.StatusBadRequest, "pending list is empty", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to submit pending batch", err.Error())
		return
	}
	Success(ctx, gin.H{"created": count})
}

// List 查询申请列表
// @Summary      查询申请列表
// @Description  按展示规则排序并附带紧急度分类与颜色
// @Tags         申请管理
// @Produce      json
// @Param        approval_state  query string false "审批状态"
// @Param        operation_state query string false "作业状态"
// @Param        org_unit        query string false "单位 ID"
// @Success      200  {object}  Response
// @Router       /requests [get]
func (c *RequestController) List(ctx *gin.Context) {
	filter := &repository.RequestFilter{}
	if v := ctx.Query("approval_state"); v != "" {
		filter.ApprovalState = &v
	}
	if v := ctx.Query("operation_state"); v != "" {
		filter.OperationState = &v
	}
	if v := ctx.Query("org_unit"); v != "" {
		filter.OrgUnitID = &v
	}

	views, err := c.requestService.List(ctx.Request.Context(), filter)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list requests", err.Error())
		return
	}
	Success(ctx, views)
}

// Get 获取申请详情
// @Summary      获取申请详情
// @Tags         申请管理
// @Produce      json
// @Param        id path string true "申请 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id} [get]
func (c *RequestController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateID(ctx, id) {
		return
	}

	view, err := c.requestService.Get(ctx.Request.Context(), id)
	if err != nil {
		Error(ctx, http.StatusNotFound, "request not found", err.Error())
		return
	}
	Success(ctx, view)
}

// transition 执行一次状态变更并统一处理错误
func (c *RequestController) transition(ctx *gin.Context, do func(id, actor string) error) {
	id := ctx.Param("id")
	if !c.validateID(ctx, id) {
		return
	}

	if err := do(id, ctx.GetHeader("X-User")); err != nil {
		if errors.Is(err, service.ErrIllegalTransition) {
			Error(ctx, http.StatusConflict, "illegal state transition", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to update request state", err.Error())
		return
	}
	Success(ctx, nil)
}

// Confirm 批准申请
// @Summary      批准申请
// @Tags         申请管理
// @Produce      json
// @Param        id path string true "申请 ID"
// @Success      200  {object}  Response
// @Router       /requests/{id}/confirm [post]
func (c *RequestController) Confirm(ctx *gin.Context) {
	c.transition(ctx, func(id, actor string) error {
		return c.requestService.ConfirmApproval(ctx.Request.Context(), id, actor)
	})
}

// Cancel 取消申请
// @Summary      取消申请
// @Tags         申请管理
// @Produce      json
// @Param        id path string true "申请 ID"
// @Success      200  {object}  Response
// @Router       /requests/{id}/cancel [post]
func (c *RequestController) Cancel(ctx *gin.Context) {
	c.transition(ctx, func(id, actor string) error {
		return c.requestService.CancelApproval(ctx.Request.Context(), id, actor)
	})
}

// Process 登记作业已执行
// @Summary      登记作业已执行
// @Tags         申请管理
// @Produce      json
// @Param        id path string true "申请 ID"
// @Success      200  {object}  Response
// @Router       /requests/{id}/process [post]
func (c *RequestController) Process(ctx *gin.Context) {
	c.transition(ctx, func(id, actor string) error {
		return c.requestService.MarkProcessed(ctx.Request.Context(), id, actor)
	})
}
