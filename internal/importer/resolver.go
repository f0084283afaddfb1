package importer

import (
	"context"
	"strings"

	"github.com/gridops/outage-gin/internal/model"
	"github.com/sirupsen/logrus"
)

// Directory 组织与设备参考数据查询接口
// 由外部协作方(目录仓储)实现, 导入核心只读不写
type Directory interface {
	ListOrgUnits(ctx context.Context) ([]model.OrgUnitModel, error)
	ListSubUnits(ctx context.Context, orgUnitID string) ([]model.SubUnitModel, error)
	SearchEquipment(ctx context.Context, text string) ([]model.EquipmentModel, error)
}

// EquipmentStatus 设备查询结果状态
type EquipmentStatus int

const (
	EquipmentFound             EquipmentStatus = iota // 命中, Location 可用于回填
	EquipmentNotFound                                 // 查询成功但无匹配, 硬错误
	EquipmentLookupUnavailable                        // 查询本身失败, 仅软告警
)

// EquipmentResult 设备查询的标记结果
// 传输失败与零命中语义不同, 用标记类型而非布尔值区分
type EquipmentResult struct {
	Status   EquipmentStatus
	Location string
}

// Resolver 名称解析器
// 子单位列表按单位 ID 缓存, 缓存生命周期为一次导入运行
type Resolver struct {
	dir    Directory
	units  []model.OrgUnitModel
	subs   map[string][]model.SubUnitModel
	logger *logrus.Logger
}

// NewResolver 创建解析器
// units 为调用方提供的已知单位列表, 决定单位名匹配的遍历顺序
func NewResolver(dir Directory, units []model.OrgUnitModel, logger *logrus.Logger) *Resolver {
	return &Resolver{
		dir:    dir,
		units:  units,
		subs:   make(map[string][]model.SubUnitModel),
		logger: logger,
	}
}

// ResolveOrgUnit 将自由文本单位名解析为单位 ID
// 匹配规则: 大小写不敏感的双向包含, 按列表顺序取首个命中
func (r *Resolver) ResolveOrgUnit(name string) (string, bool) {
	for _, u := range r.units {
		if containsEither(u.Name, name) {
			return u.ID, true
		}
	}
	return "", false
}

// ResolveSubUnit 在已解析的单位下解析子单位名
// 子单位列表每个单位每次运行只拉取一次, 之后命中缓存
func (r *Resolver) ResolveSubUnit(ctx context.Context, orgUnitID, name string) (string, bool) {
	subs, ok := r.subs[orgUnitID]
	if !ok {
		fetched, err := r.dir.ListSubUnits(ctx, orgUnitID)
		if err != nil {
			r.logger.WithError(err).WithField("org_unit", orgUnitID).
				Warn("sub-unit lookup failed")
			return "", false
		}
		r.subs[orgUnitID] = fetched
		subs = fetched
	}
	for _, s := range subs {
		if containsEither(s.ShortName, name) {
			return s.ID, true
		}
	}
	return "", false
}

// LookupEquipment 校验设备标识
// 查询失败不阻断行(软告警), 查询成功但零命中为硬错误
func (r *Resolver) LookupEquipment(ctx context.Context, id string) EquipmentResult {
	items, err := r.dir.SearchEquipment(ctx, id)
	if err != nil {
		r.logger.WithError(err).WithField("equipment", id).
			Warn("equipment lookup unavailable")
		return EquipmentResult{Status: EquipmentLookupUnavailable}
	}
	if len(items) == 0 {
		return EquipmentResult{Status: EquipmentNotFound}
	}
	return EquipmentResult{Status: EquipmentFound, Location: items[0].Location}
}

// containsEither 双向包含: 任一方包含另一方即视为匹配
func containsEither(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
