package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gridops/outage-gin/internal/batch"
	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/service"
)

// ImportController 批量导入控制器
type ImportController struct {
	importService service.ImportService
}

// NewImportController 创建导入控制器
func NewImportController(importService service.ImportService) *ImportController {
	return &ImportController{importService: importService}
}

// callerFrom 从请求头读取调用方身份(由外部认证层注入)
func callerFrom(ctx *gin.Context) service.Caller {
	role := importer.RoleUnit
	if ctx.GetHeader("X-Role") == string(importer.RoleAdmin) {
		role = importer.RoleAdmin
	}
	return service.Caller{
		UserID:    ctx.GetHeader("X-User"),
		OrgUnitID: ctx.GetHeader("X-Org-Unit"),
		SubUnitID: ctx.GetHeader("X-Sub-Unit"),
		Role:      role,
	}
}

// Import 上传并导入表格文件
// @Summary      批量导入停电申请
// @Description  上传 CSV/XLSX 文件, 逐行校验后加入待提交列表
// @Tags         导入管理
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "导入文件"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /imports [post]
func (c *ImportController) Import(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		Error(ctx, http.StatusBadRequest, "missing upload file", err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		Error(ctx, http.StatusBadRequest, "unreadable upload file", err.Error())
		return
	}
	defer file.Close()

	result, err := c.importService.ImportFile(ctx.Request.Context(), callerFrom(ctx),
		header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, batch.ErrPendingNotEmpty):
			Error(ctx, http.StatusConflict, "pending-not-empty", "pending batch must be submitted or cleared first")
		case errors.Is(err, importer.ErrUnsupportedFormat),
			errors.Is(err, importer.ErrFileTooLarge),
			errors.Is(err, importer.ErrTooManyRows),
			errors.Is(err, importer.ErrEmptyFile),
			errors.Is(err, importer.ErrUnreadableFile):
			Error(ctx, http.StatusBadRequest, "import rejected", err.Error())
		default:
			Error(ctx, http.StatusInternalServerError, "import failed", err.Error())
		}
		return
	}

	Success(ctx, result)
}

// Pending 查看待提交列表
// @Summary      查看待提交列表
// @Tags         导入管理
// @Produce      json
// @Success      200  {object}  Response
// @Router       /imports/pending [get]
func (c *ImportController) Pending(ctx *gin.Context) {
	Success(ctx, c.importService.Pending(callerFrom(ctx)))
}

// RemovePending 按下标移除待提交草稿
// @Summary      移除待提交草稿
// @Tags         导入管理
// @Produce      json
// @Param        index path int true "列表下标"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /imports/pending/{index} [delete]
func (c *ImportController) RemovePending(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid index", err.Error())
		return
	}
	if err := c.importService.RemovePending(callerFrom(ctx), index); err != nil {
		Error(ctx, http.StatusBadRequest, "failed to remove draft", err.Error())
		return
	}
	Success(ctx, nil)
}

// ClearPending 清空待提交列表
// @Summary      清空待提交列表
// @Tags         导入管理
// @Produce      json
// @Success      200  {object}  Response
// @Router       /imports/pending [delete]
func (c *ImportController) ClearPending(ctx *gin.Context) {
	c.importService.ClearPending(callerFrom(ctx))
	Success(ctx, nil)
}
