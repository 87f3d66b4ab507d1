package export

import (
	"github.com/peartree/landing/internal/content"
)

// CatalogSource 发布已加载目录中的全部页面。
type CatalogSource struct {
	Catalog *content.Catalog
}

func (s CatalogSource) Practice() content.Practice { return s.Catalog.Practice }

func (s CatalogSource) Pages() ([]*content.Page, error) { return s.Catalog.Pages, nil }

// PublishedPages 由页面服务实现。
type PublishedPages interface {
	Published() ([]*content.Page, error)
}

// StoreSource 发布数据库中标记为已发布的页面，诊所信息取自当前目录。
type StoreSource struct {
	Store     *content.Store
	Published PublishedPages
}

func (s StoreSource) Practice() content.Practice { return s.Store.Load().Practice }

func (s StoreSource) Pages() ([]*content.Page, error) { return s.Published.Published() }
