package lifecycle_test

import (
	"testing"
	"time"

	"github.com/gridops/outage-gin/internal/lifecycle"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func request(approval, operation string, daysOut int) *model.OutageRequestModel {
	return &model.OutageRequestModel{
		ID:             "req-001",
		ApprovalState:  approval,
		OperationState: operation,
		OutageDate:     today.AddDate(0, 0, daysOut),
	}
}

// TestClassifyBuckets 测试紧急度分类
func TestClassifyBuckets(t *testing.T) {
	cases := []struct {
		name string
		req  *model.OutageRequestModel
		want lifecycle.Bucket
	}{
		{"completed", request(model.ApprovalConfirmed, model.OperationProcessed, 3), lifecycle.BucketCompleted},
		{"completed past", request(model.ApprovalConfirmed, model.OperationProcessed, -3), lifecycle.BucketCompleted},
		{"overdue", request(model.ApprovalConfirmed, model.OperationNotStarted, -1), lifecycle.BucketOverdue},
		{"urgent today", request(model.ApprovalConfirmed, model.OperationNotStarted, 0), lifecycle.BucketUrgent},
		{"urgent five days", request(model.ApprovalConfirmed, model.OperationNotStarted, 5), lifecycle.BucketUrgent},
		{"elevated six days", request(model.ApprovalConfirmed, model.OperationNotStarted, 6), lifecycle.BucketElevated},
		{"elevated seven days", request(model.ApprovalConfirmed, model.OperationNotStarted, 7), lifecycle.BucketElevated},
		{"normal eight days", request(model.ApprovalConfirmed, model.OperationNotStarted, 8), lifecycle.BucketNormal},
		{"normal fifteen days", request(model.ApprovalConfirmed, model.OperationNotStarted, 15), lifecycle.BucketNormal},
		{"future", request(model.ApprovalConfirmed, model.OperationNotStarted, 16), lifecycle.BucketFuture},
		{"pending approval", request(model.ApprovalPending, model.OperationNotStarted, 3), lifecycle.BucketDefault},
		{"cancelled approval", request(model.ApprovalCancelled, model.OperationNotStarted, 3), lifecycle.BucketDefault},
		{"cancelled operation", request(model.ApprovalConfirmed, model.OperationCancelled, 3), lifecycle.BucketDefault},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lifecycle.Classify(tc.req, today))
		})
	}
}

// TestBucketColors 测试分类到颜色的固定映射
func TestBucketColors(t *testing.T) {
	assert.Equal(t, "#2196f3", lifecycle.BucketCompleted.Color())
	assert.Equal(t, "#b71c1c", lifecycle.BucketOverdue.Color())
	assert.Equal(t, "#f44336", lifecycle.BucketUrgent.Color())
	assert.Equal(t, "#ff9800", lifecycle.BucketElevated.Color())
	assert.Equal(t, "#ffeb3b", lifecycle.BucketNormal.Color())
	assert.Equal(t, "#4caf50", lifecycle.BucketFuture.Color())
	assert.Equal(t, "#ffffff", lifecycle.BucketDefault.Color())
}

// TestDaysUntil 测试剩余天数计算
func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, lifecycle.DaysUntil(today, today))
	assert.Equal(t, 5, lifecycle.DaysUntil(today.AddDate(0, 0, 5), today))
	assert.Equal(t, -2, lifecycle.DaysUntil(today.AddDate(0, 0, -2), today))
}
