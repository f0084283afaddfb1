package model

// OrgUnitModel 组织单位参考数据
type OrgUnitModel struct {
	ID   string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

// TableName 指定表名
func (OrgUnitModel) TableName() string {
	return "org_units"
}

// SubUnitModel 子单位参考数据
type SubUnitModel struct {
	ID        string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ShortName string `gorm:"type:varchar(255);not null" json:"short_name"`
	OrgUnitID string `gorm:"type:varchar(64);not null;index" json:"org_unit_id"`
}

// TableName 指定表名
func (SubUnitModel) TableName() string {
	return "sub_units"
}

// EquipmentModel 设备(变压器)参考数据
type EquipmentModel struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Location string `gorm:"type:varchar(255)" json:"location"`
}

// TableName 指定表名
func (EquipmentModel) TableName() string {
	return "equipment"
}
