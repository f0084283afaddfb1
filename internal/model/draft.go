package model

import "time"

// DraftRequest 待提交的停电申请草稿
// 导入通过校验后进入待提交列表, 在批量提交前不落库
type DraftRequest struct {
	OutageDate  time.Time `json:"outage_date"`
	StartTime   string    `json:"start_time"` // HH:MM
	EndTime     string    `json:"end_time"`   // HH:MM
	OrgUnitID   string    `json:"org_unit_id"`
	SubUnitID   string    `json:"sub_unit_id"`
	EquipmentID string    `json:"equipment_id"`
	Location    string    `json:"location"`
	Area        string    `json:"area"`
}
