package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 为 NewAPI 需要注入的依赖。
type Options struct {
	DB         *gorm.DB
	Renderer   *render.Renderer
	Catalog    *content.Store
	Logger     *zap.Logger
	BaseURL    string
	BookingURL string
}

// API 汇总 HTTP 处理器共享的依赖。
type API struct {
	db         *gorm.DB
	pages      *service.PageService
	analytics  analyticsProvider
	system     *service.SystemSettingService
	renderer   *render.Renderer
	catalog    *content.Store
	logger     *zap.Logger
	baseURL    string
	bookingURL string
	now        func() time.Time
}

const siteSettingsContextKey = "__site_settings"

// NewAPI 使用共享服务构建处理器集合。
func NewAPI(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = content.NewStore(nil)
	}

	return &API{
		db:         opts.DB,
		pages:      service.NewPageService(opts.DB),
		analytics:  service.NewAnalyticsService(opts.DB),
		system:     service.NewSystemSettingService(opts.DB),
		renderer:   opts.Renderer,
		catalog:    catalog,
		logger:     logger,
		baseURL:    opts.BaseURL,
		bookingURL: opts.BookingURL,
		now:        time.Now,
	}
}

// Pages 向 HTTP 层以外的调用方暴露页面服务。
func (a *API) Pages() *service.PageService {
	return a.pages
}

// siteSettings 每个请求只加载一次后台配置的站点名称与页脚。
func (a *API) siteSettings(c *gin.Context) render.Site {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if site, ok := cached.(render.Site); ok {
			return site
		}
	}

	var site render.Site
	if a.system != nil {
		settings, err := a.system.GetSettings()
		if err != nil {
			c.Error(err)
		}
		site = render.Site{Name: settings.SiteName, Footer: settings.FooterText}
	}

	c.Set(siteSettingsContextKey, site)
	return site
}

func (a *API) practice() content.Practice {
	return a.catalog.Load().Practice
}
