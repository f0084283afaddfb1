package batch

import "sync"

// Manager 按调用方键维护各自的待提交列表
// 单个列表由单一会话写入, 注册表本身需要加锁
type Manager struct {
	mu    sync.Mutex
	byKey map[string]*Accumulator
}

// NewManager 创建管理器
func NewManager() *Manager {
	return &Manager{byKey: make(map[string]*Accumulator)}
}

// Get 获取调用方的待提交列表, 不存在时创建
func (m *Manager) Get(key string) *Accumulator {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.byKey[key]
	if !ok {
		acc = &Accumulator{}
		m.byKey[key] = acc
	}
	return acc
}
