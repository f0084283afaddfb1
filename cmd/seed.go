/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gridops/outage-gin/internal/config"
	"github.com/gridops/outage-gin/internal/database"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data into the directory tables",
	Long: `Load organizational units, sub-units and equipment reference data
from CSV fixtures into the directory tables.

The fixture directory must contain org_units.csv (id,name),
sub_units.csv (id,short_name,org_unit_id) and equipment.csv (id,location).
Each file has a header row which is skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dir, _ := cmd.Flags().GetString("dir")

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		if err := seedDirectory(db, dir); err != nil {
			return err
		}

		log.Println("Reference data loaded successfully!")
		return nil
	},
}

// seedDirectory 在单个事务内载入全部参考数据
func seedDirectory(db *gorm.DB, dir string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		units, err := readFixture(filepath.Join(dir, "org_units.csv"), 2)
		if err != nil {
			return err
		}
		for _, rec := range units {
			if err := tx.Save(&model.OrgUnitModel{ID: rec[0], Name: rec[1]}).Error; err != nil {
				return err
			}
		}

		subs, err := readFixture(filepath.Join(dir, "sub_units.csv"), 3)
		if err != nil {
			return err
		}
		for _, rec := range subs {
			if err := tx.Save(&model.SubUnitModel{ID: rec[0], ShortName: rec[1], OrgUnitID: rec[2]}).Error; err != nil {
				return err
			}
		}

		equipment, err := readFixture(filepath.Join(dir, "equipment.csv"), 2)
		if err != nil {
			return err
		}
		for _, rec := range equipment {
			if err := tx.Save(&model.EquipmentModel{ID: rec[0], Location: rec[1]}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// readFixture 读取 CSV 数据行(跳过表头), 校验最小列数
func readFixture(path string, minFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	for i, rec := range rows[1:] {
		if len(rec) < minFields {
			return nil, fmt.Errorf("fixture %s line %d: expected %d fields", path, i+2, minFields)
		}
	}
	return rows[1:], nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path")
	seedCmd.Flags().String("dir", "fixtures", "Fixture directory containing reference data CSV files")
}
