package content

import "sync/atomic"

// Store 持有当前生效的内容目录，监听器替换、处理器读取。
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore 创建持有 catalog 的 Store。
func NewStore(catalog *Catalog) *Store {
	s := &Store{}
	s.current.Store(catalog)
	return s
}

// Load 返回当前目录，不会为 nil。
func (s *Store) Load() *Catalog {
	if c := s.current.Load(); c != nil {
		return c
	}
	return &Catalog{}
}

// Replace 原子替换为新目录。
func (s *Store) Replace(catalog *Catalog) {
	s.current.Store(catalog)
}
