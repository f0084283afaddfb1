package lifecycle

import (
	"time"

	"github.com/gridops/outage-gin/internal/model"
)

// Bucket 紧急度分类
type Bucket string

const (
	BucketCompleted Bucket = "completed" // 已批准且已执行
	BucketOverdue   Bucket = "overdue"   // 已批准未执行且日期已过
	BucketUrgent    Bucket = "urgent"    // 0-5 天
	BucketElevated  Bucket = "elevated"  // 6-7 天
	BucketNormal    Bucket = "normal"    // 8-15 天
	BucketFuture    Bucket = "future"    // >15 天
	BucketDefault   Bucket = "default"   // 其余情形(含待审批/已取消)
)

// 分类到展示颜色的固定映射
var bucketColors = map[Bucket]string{
	BucketCompleted: "#2196f3",
	BucketOverdue:   "#b71c1c",
	BucketUrgent:    "#f44336",
	BucketElevated:  "#ff9800",
	BucketNormal:    "#ffeb3b",
	BucketFuture:    "#4caf50",
	BucketDefault:   "#ffffff",
}

// Color 分类对应的展示颜色
func (b Bucket) Color() string {
	return bucketColors[b]
}

// DaysUntil 距停电日的整天数, 过期为负
func DaysUntil(outage, today time.Time) int {
	return int(outage.Sub(today).Hours() / 24)
}

// Classify 由当前状态对与停电日期计算紧急度分类
// Completed/Overdue 优先于按天数的分类; today 须为参考时区的当日零点
func Classify(req *model.OutageRequestModel, today time.Time) Bucket {
	confirmed := req.ApprovalState == model.ApprovalConfirmed
	notStarted := req.OperationState == model.OperationNotStarted

	if confirmed && req.OperationState == model.OperationProcessed {
		return BucketCompleted
	}
	if confirmed && notStarted && req.OutageDate.Before(today) {
		return BucketOverdue
	}
	if confirmed && notStarted {
		switch days := DaysUntil(req.OutageDate, today); {
		case days <= 5:
			return BucketUrgent
		case days <= 7:
			return BucketElevated
		case days <= 15:
			return BucketNormal
		default:
			return BucketFuture
		}
	}
	return BucketDefault
}
