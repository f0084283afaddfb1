package repository_test

import (
	"context"
	"testing"

	"github.com/gridops/outage-gin/internal/model"
	"github.com/gridops/outage-gin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDirectory(t *testing.T) repository.DirectoryRepository {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&model.OrgUnitModel{ID: "N1", Name: "Northern Region 1"}).Error)
	require.NoError(t, db.Create(&model.OrgUnitModel{ID: "C1", Name: "Central Metro"}).Error)
	require.NoError(t, db.Create(&model.SubUnitModel{ID: "N1-A", ShortName: "Chiang Mai", OrgUnitID: "N1"}).Error)
	require.NoError(t, db.Create(&model.SubUnitModel{ID: "C1-A", ShortName: "Bang Rak", OrgUnitID: "C1"}).Error)
	require.NoError(t, db.Create(&model.EquipmentModel{ID: "TX001", Location: "Substation A"}).Error)
	require.NoError(t, db.Create(&model.EquipmentModel{ID: "TX002", Location: "Substation B"}).Error)
	require.NoError(t, db.Create(&model.EquipmentModel{ID: "GEN100", Location: "Plant C"}).Error)

	return repository.NewDirectoryRepository(db)
}

// TestDirectoryRepository_ListOrgUnits 测试列出组织单位
func TestDirectoryRepository_ListOrgUnits(t *testing.T) {
	repo := seedDirectory(t)

	units, err := repo.ListOrgUnits(context.Background())
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

// TestDirectoryRepository_ListSubUnits 测试按单位列出子单位
func TestDirectoryRepository_ListSubUnits(t *testing.T) {
	repo := seedDirectory(t)

	subs, err := repo.ListSubUnits(context.Background(), "N1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Chiang Mai", subs[0].ShortName)

	subs, err = repo.ListSubUnits(context.Background(), "X9")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

// TestDirectoryRepository_SearchEquipment 测试设备子串搜索
func TestDirectoryRepository_SearchEquipment(t *testing.T) {
	repo := seedDirectory(t)

	// 大小写不敏感子串
	items, err := repo.SearchEquipment(context.Background(), "tx0")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.SearchEquipment(context.Background(), "TX001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Substation A", items[0].Location)

	items, err = repo.SearchEquipment(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, items)
}
