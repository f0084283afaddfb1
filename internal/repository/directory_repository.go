package repository

import (
	"context"
	"strings"

	"github.com/gridops/outage-gin/internal/model"
	"github.com/gridops/outage-gin/internal/utils"
	"gorm.io/gorm"
)

// 设备搜索返回的最大条数
const equipmentSearchLimit = 20

// DirectoryRepository 组织与设备参考数据仓储
// 实现导入核心的 Directory 接口, 本核心对参考数据只读
type DirectoryRepository interface {
	ListOrgUnits(ctx context.Context) ([]model.OrgUnitModel, error)
	ListSubUnits(ctx context.Context, orgUnitID string) ([]model.SubUnitModel, error)
	SearchEquipment(ctx context.Context, text string) ([]model.EquipmentModel, error)
}

// directoryRepository 目录仓储实现
type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository 创建目录仓储
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

// ListOrgUnits 列出所有组织单位
func (r *directoryRepository) ListOrgUnits(ctx context.Context) ([]model.OrgUnitModel, error) {
	var units []model.OrgUnitModel
	err := r.db.WithContext(ctx).Order("id").Find(&units).Error
	return units, err
}

// ListSubUnits 列出指定单位下的子单位
func (r *directoryRepository) ListSubUnits(ctx context.Context, orgUnitID string) ([]model.SubUnitModel, error) {
	var subs []model.SubUnitModel
	err := r.db.WithContext(ctx).Where("org_unit_id = ?", orgUnitID).Order("id").Find(&subs).Error
	return subs, err
}

// SearchEquipment 按标识的大小写不敏感子串搜索设备, 最多返回前 N 条
func (r *directoryRepository) SearchEquipment(ctx context.Context, text string) ([]model.EquipmentModel, error) {
	var items []model.EquipmentModel
	pattern := "%" + utils.EscapeLike(strings.ToLower(strings.TrimSpace(text))) + "%"
	// 显式 ESCAPE, sqlite 默认不识别反斜杠转义
	err := r.db.WithContext(ctx).
		Where(`LOWER(id) LIKE ? ESCAPE '\'`, pattern).
		Order("id").
		Limit(equipmentSearchLimit).
		Find(&items).Error
	return items, err
}
