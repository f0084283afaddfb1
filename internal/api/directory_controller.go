package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gridops/outage-gin/internal/repository"
)

// DirectoryController 参考数据控制器
type DirectoryController struct {
	dir repository.DirectoryRepository
}

// NewDirectoryController 创建参考数据控制器
func NewDirectoryController(dir repository.DirectoryRepository) *DirectoryController {
	return &DirectoryController{dir: dir}
}

// ListOrgUnits 列出组织单位
// @Summary      列出组织单位
// @Tags         参考数据
// @Produce      json
// @Success      200  {object}  Response
// @Router       /org-units [get]
func (c *DirectoryController) ListOrgUnits(ctx *gin.Context) {
	units, err := c.dir.ListOrgUnits(ctx.Request.Context())
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list org units", err.Error())
		return
	}
	Success(ctx, units)
}

// ListSubUnits 列出指定单位下的子单位
// @Summary      列出子单位
// @Tags         参考数据
// @Produce      json
// @Param        id path string true "单位 ID"
// @Success      200  {object}  Response
// @Router       /org-units/{id}/sub-units [get]
func (c *DirectoryController) ListSubUnits(ctx *gin.Context) {
	subs, err := c.dir.ListSubUnits(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list sub-units", err.Error())
		return
	}
	Success(ctx, subs)
}

// SearchEquipment 按标识子串搜索设备
// @Summary      搜索设备
// @Tags         参考数据
// @Produce      json
// @Param        q query string true "搜索文本"
// @Success      200  {object}  Response
// @Router       /equipment [get]
func (c *DirectoryController) SearchEquipment(ctx *gin.Context) {
	text := ctx.Query("q")
	if text == "" {
		Error(ctx, http.StatusBadRequest, "missing search text", "query parameter q is required")
		return
	}
	items, err := c.dir.SearchEquipment(ctx.Request.Context(), text)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "equipment search failed", err.Error())
		return
	}
	Success(ctx, items)
}
