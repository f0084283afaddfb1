package model

import (
	"errors"
	"time"
)

// 审批状态
const (
	ApprovalPending   = "pending"   // 待审批
	ApprovalConfirmed = "confirmed" // 已批准
	ApprovalCancelled = "cancelled" // 已取消
)

// 作业状态
const (
	OperationNotStarted = "not_started" // 未执行
	OperationProcessed  = "processed"   // 已执行
	OperationCancelled  = "cancelled"   // 已取消
)

// OutageRequestModel 停电申请数据模型
type OutageRequestModel struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OutageDate     time.Time  `gorm:"type:date;not null;index" json:"outage_date"`
	StartTime      string     `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	EndTime        string     `gorm:"type:varchar(5);not null" json:"end_time"`   // HH:MM
	OrgUnitID      string     `gorm:"type:varchar(64);not null;index" json:"org_unit_id"`
	SubUnitID      string     `gorm:"type:varchar(64);index" json:"sub_unit_id"`
	EquipmentID    string     `gorm:"type:varchar(64);not null;index" json:"equipment_id"`
	Location       string     `gorm:"type:varchar(255)" json:"location"`
	Area           string     `gorm:"type:text" json:"area"` // 受影响区域描述
	ApprovalState  string     `gorm:"type:varchar(32);not null;index" json:"approval_state"`
	OperationState string     `gorm:"type:varchar(32);not null;index" json:"operation_state"`
	ApprovalAt     *time.Time `gorm:"index" json:"approval_at,omitempty"` // 审批状态变更时间
	ApprovalBy     string     `gorm:"type:varchar(64)" json:"approval_by,omitempty"`
	OperationAt    *time.Time `gorm:"index" json:"operation_at,omitempty"` // 作业状态变更时间
	OperationBy    string     `gorm:"type:varchar(64)" json:"operation_by,omitempty"`
	CreatedBy      string     `gorm:"type:varchar(64);index" json:"created_by"`
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (OutageRequestModel) TableName() string {
	return "outage_requests"
}

// Validate 验证申请模型
func (m *OutageRequestModel) Validate() error {
	if m.ID == "" {
		return errors.New("request ID is required")
	}
	if m.OutageDate.IsZero() {
		return errors.New("outage date is required")
	}
	if m.StartTime == "" || m.EndTime == "" {
		return errors.New("outage window is required")
	}
	if m.OrgUnitID == "" {
		return errors.New("org unit ID is required")
	}
	if m.EquipmentID == "" {
		return errors.New("equipment ID is required")
	}
	if m.ApprovalState == "" || m.OperationState == "" {
		return errors.New("request state is required")
	}
	return nil
}
