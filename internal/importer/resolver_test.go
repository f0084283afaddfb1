package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory 测试用参考数据源
type fakeDirectory struct {
	units     []model.OrgUnitModel
	subs      map[string][]model.SubUnitModel
	equipment []model.EquipmentModel
	subCalls  int
	equipErr  error
	subErr    error
}

func (f *fakeDirectory) ListOrgUnits(ctx context.Context) ([]model.OrgUnitModel, error) {
	return f.units, nil
}

func (f *fakeDirectory) ListSubUnits(ctx context.Context, orgUnitID string) ([]model.SubUnitModel, error) {
	f.subCalls++
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.subs[orgUnitID], nil
}

func (f *fakeDirectory) SearchEquipment(ctx context.Context, text string) ([]model.EquipmentModel, error) {
	if f.equipErr != nil {
		return nil, f.equipErr
	}
	var out []model.EquipmentModel
	for _, e := range f.equipment {
		if strings.Contains(strings.ToLower(e.ID), strings.ToLower(text)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func regionUnits() []model.OrgUnitModel {
	return []model.OrgUnitModel{
		{ID: "N1", Name: "Northern Region 1"},
		{ID: "N2", Name: "Northern Region 2"},
		{ID: "C1", Name: "Central Metro"},
	}
}

// TestResolveOrgUnit 测试单位名解析
func TestResolveOrgUnit(t *testing.T) {
	r := importer.NewResolver(&fakeDirectory{}, regionUnits(), testLogger())

	// 输入是登记名的子串
	id, ok := r.ResolveOrgUnit("central")
	require.True(t, ok)
	assert.Equal(t, "C1", id)

	// 登记名是输入的子串 (双向包含)
	id, ok = r.ResolveOrgUnit("The Central Metro Office")
	require.True(t, ok)
	assert.Equal(t, "C1", id)

	// 多个命中时取列表顺序的首个
	id, ok = r.ResolveOrgUnit("Northern Region")
	require.True(t, ok)
	assert.Equal(t, "N1", id)

	_, ok = r.ResolveOrgUnit("Southern")
	assert.False(t, ok)
	_, ok = r.ResolveOrgUnit("")
	assert.False(t, ok)
}

// TestResolveSubUnit 测试子单位解析与每次运行的缓存
func TestResolveSubUnit(t *testing.T) {
	dir := &fakeDirectory{
		subs: map[string][]model.SubUnitModel{
			"N1": {
				{ID: "N1-A", ShortName: "Chiang Mai", OrgUnitID: "N1"},
				{ID: "N1-B", ShortName: "Lampang", OrgUnitID: "N1"},
			},
		},
	}
	r := importer.NewResolver(dir, regionUnits(), testLogger())

	id, ok := r.ResolveSubUnit(context.Background(), "N1", "lampang")
	require.True(t, ok)
	assert.Equal(t, "N1-B", id)

	// 同一单位再次解析命中缓存, 不再调用外部查询
	_, ok = r.ResolveSubUnit(context.Background(), "N1", "chiang")
	require.True(t, ok)
	assert.Equal(t, 1, dir.subCalls)

	_, ok = r.ResolveSubUnit(context.Background(), "N1", "phuket")
	assert.False(t, ok)
}

// TestResolveSubUnitLookupFailure 测试子单位查询失败
func TestResolveSubUnitLookupFailure(t *testing.T) {
	dir := &fakeDirectory{subErr: errors.New("connection refused")}
	r := importer.NewResolver(dir, regionUnits(), testLogger())

	_, ok := r.ResolveSubUnit(context.Background(), "N1", "lampang")
	assert.False(t, ok)
}

// TestLookupEquipment 测试设备查询的三种结果
func TestLookupEquipment(t *testing.T) {
	dir := &fakeDirectory{
		equipment: []model.EquipmentModel{{ID: "TX001", Location: "Substation A"}},
	}
	r := importer.NewResolver(dir, nil, testLogger())

	res := r.LookupEquipment(context.Background(), "TX001")
	assert.Equal(t, importer.EquipmentFound, res.Status)
	assert.Equal(t, "Substation A", res.Location)

	res = r.LookupEquipment(context.Background(), "TX999")
	assert.Equal(t, importer.EquipmentNotFound, res.Status)

	// 传输失败是软告警, 与零命中不同
	dir.equipErr = errors.New("timeout")
	res = r.LookupEquipment(context.Background(), "TX001")
	assert.Equal(t, importer.EquipmentLookupUnavailable, res.Status)
}
