package batch

import (
	"errors"
	"sync"

	"github.com/gridops/outage-gin/internal/lifecycle"
	"github.com/gridops/outage-gin/internal/model"
)

var (
	// ErrPendingNotEmpty 待提交列表非空且未确认清空
	ErrPendingNotEmpty = errors.New("pending-not-empty")
	// ErrPendingEmpty 待提交列表为空
	ErrPendingEmpty = errors.New("pending list is empty")
	// ErrIndexOutOfRange 删除下标越界
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Accumulator 待提交草稿列表
// 每次成功追加后整体重排, 列表始终按计划顺序展示
type Accumulator struct {
	mu    sync.RWMutex
	items []model.DraftRequest
}

// Append 追加草稿并重排
func (a *Accumulator) Append(drafts ...model.DraftRequest) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = append(a.items, drafts...)
	lifecycle.SortDrafts(a.items)
}

// Items 返回列表副本
func (a *Accumulator) Items() []model.DraftRequest {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.DraftRequest, len(a.items))
	copy(out, a.items)
	return out
}

// Len 当前条数
func (a *Accumulator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// RemoveAt 按下标删除; 删除最后一项后列表为空且可继续使用
func (a *Accumulator) RemoveAt(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if index < 0 || index >= len(a.items) {
		return ErrIndexOutOfRange
	}
	a.items = append(a.items[:index], a.items[index+1:]...)
	return nil
}

// Clear 清空列表
func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = nil
}
