package lifecycle

import (
	"sort"
	"time"

	"github.com/gridops/outage-gin/internal/model"
)

// 排序分组, 数值小者靠前
const (
	groupConfirmedUpcoming = iota // 已批准且日期未到: 日期升序, 开始时间升序
	groupConfirmedPast            // 已批准且日期已过: 日期降序, 开始时间降序
	groupOther                    // 未批准未完成: 创建时间降序
	groupCompleted                // 已完成: 排在最后, 创建时间降序
)

// SortRequests 为列表展示生成确定性的全序
// 纯函数: 返回排序后的副本, 幂等可重入; today 须为参考时区的当日零点
func SortRequests(reqs []model.OutageRequestModel, today time.Time) []model.OutageRequestModel {
	sorted := make([]model.OutageRequestModel, len(reqs))
	copy(sorted, reqs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return requestLess(&sorted[i], &sorted[j], today)
	})
	return sorted
}

func sortGroup(r *model.OutageRequestModel, today time.Time) int {
	if r.ApprovalState == model.ApprovalConfirmed && r.OperationState == model.OperationProcessed {
		return groupCompleted
	}
	if r.ApprovalState != model.ApprovalConfirmed {
		return groupOther
	}
	if r.OutageDate.Before(today) {
		return groupConfirmedPast
	}
	return groupConfirmedUpcoming
}

func requestLess(a, b *model.OutageRequestModel, today time.Time) bool {
	ga, gb := sortGroup(a, today), sortGroup(b, today)
	if ga != gb {
		return ga < gb
	}

	switch ga {
	case groupConfirmedUpcoming:
		if !a.OutageDate.Equal(b.OutageDate) {
			return a.OutageDate.Before(b.OutageDate)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
	case groupConfirmedPast:
		if !a.OutageDate.Equal(b.OutageDate) {
			return a.OutageDate.After(b.OutageDate)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime > b.StartTime
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	// 稳定的次级键, 保证相同创建时间下顺序确定
	return a.ID < b.ID
}

// SortDrafts 待提交列表的排序: 日期升序, 开始时间升序
// 与展示排序对已批准未到期组的规则一致, 限定到日期+时间
func SortDrafts(drafts []model.DraftRequest) {
	sort.SliceStable(drafts, func(i, j int) bool {
		if !drafts[i].OutageDate.Equal(drafts[j].OutageDate) {
			return drafts[i].OutageDate.Before(drafts[j].OutageDate)
		}
		return drafts[i].StartTime < drafts[j].StartTime
	})
}
