package importer

import (
	"context"
	"strings"
	"time"

	"github.com/gridops/outage-gin/internal/model"
)

// Role 导入调用方角色
type Role string

const (
	RoleAdmin Role = "admin" // 特权: 可在文件中指定单位/子单位
	RoleUnit  Role = "unit"  // 普通: 行固定归属调用方自己的单位
)

// RowLayout 行布局配置
// 特权调用方的文件多出单位/子单位两列, 通过显式配置而非运行时数列推断
type RowLayout struct {
	Privileged      bool
	CallerUnitID    string // 非特权时强制使用的单位 ID
	CallerSubUnitID string // 非特权时强制使用的子单位 ID
}

// width 布局的总列数
func (l RowLayout) width() int {
	if l.Privileged {
		return 8
	}
	return 6
}

// RowValidator 单行校验器
// 汇总所有独立失败, 不短路; 错误行号由调用方传入
type RowValidator struct {
	layout   RowLayout
	dates    *DateChecker
	resolver *Resolver
}

// NewRowValidator 创建行校验器
func NewRowValidator(layout RowLayout, dates *DateChecker, resolver *Resolver) *RowValidator {
	return &RowValidator{layout: layout, dates: dates, resolver: resolver}
}

// Validate 校验一行并在通过时产出草稿
// 全空行返回 (nil, nil), 由管道静默跳过
func (v *RowValidator) Validate(ctx context.Context, line int, fields []string) (*model.DraftRequest, []model.ValidationError) {
	row := padRow(fields, v.layout.width())
	if blankRow(row) {
		return nil, nil
	}

	var errs []model.ValidationError
	add := func(field, message, value string) {
		errs = append(errs, model.ValidationError{Line: line, Field: field, Message: message, Value: value})
	}

	// 日期
	rawDate := row[0]
	var outageDate time.Time
	dateOK := false
	if rawDate == "" {
		add(FieldOutageDate, "outage date is required", rawDate)
	} else if outageDate, dateOK = ParseDate(rawDate); !dateOK {
		add(FieldOutageDate, "unrecognized date format", rawDate)
	} else {
		for _, e := range v.dates.CheckDate(outageDate, rawDate) {
			e.Line = line
			errs = append(errs, e)
		}
	}

	// 起止时间
	start := NormalizeClock(row[1])
	if start == "" {
		add(FieldStartTime, "missing or unparseable start time", row[1])
	}
	end := NormalizeClock(row[2])
	if end == "" {
		add(FieldEndTime, "missing or unparseable end time", row[2])
	}
	if start != "" && end != "" {
		for _, e := range v.dates.CheckWindow(start, end) {
			e.Line = line
			errs = append(errs, e)
		}
	}

	// 单位/子单位
	orgUnitID := v.layout.CallerUnitID
	subUnitID := v.layout.CallerSubUnitID
	equipCol := 3
	if v.layout.Privileged {
		equipCol = 5
		unitName := row[3]
		if unitName == "" {
			add(FieldOrgUnit, "org unit is required", unitName)
		} else {
			var ok bool
			if orgUnitID, ok = v.resolver.ResolveOrgUnit(unitName); !ok {
				add(FieldOrgUnit, "org unit not found", unitName)
			}
		}
		if subName := row[4]; subName != "" && orgUnitID != "" {
			var ok bool
			if subUnitID, ok = v.resolver.ResolveSubUnit(ctx, orgUnitID, subName); !ok {
				add(FieldSubUnit, "sub-unit not found", subName)
			}
		}
	}

	// 设备
	equipID := row[equipCol]
	location := row[equipCol+1]
	area := row[equipCol+2]
	if equipID == "" {
		add(FieldEquipmentID, "equipment ID is required", equipID)
	} else {
		switch res := v.resolver.LookupEquipment(ctx, equipID); res.Status {
		case EquipmentNotFound:
			add(FieldEquipmentID, "equipment not found", equipID)
		case EquipmentFound:
			if location == "" {
				location = res.Location
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &model.DraftRequest{
		OutageDate:  outageDate,
		StartTime:   start,
		EndTime:     end,
		OrgUnitID:   orgUnitID,
		SubUnitID:   subUnitID,
		EquipmentID: equipID,
		Location:    location,
		Area:        area,
	}, nil
}

// padRow 右侧补空到布局宽度, 各字段去除首尾空白
func padRow(fields []string, width int) []string {
	row := make([]string, width)
	for i := 0; i < width && i < len(fields); i++ {
		row[i] = strings.TrimSpace(fields[i])
	}
	return row
}

// blankRow 判定全空行
func blankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
