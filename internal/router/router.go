package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/NYTimes/gziphandler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/handler"
	"github.com/peartree/landing/internal/logging"
	"github.com/peartree/landing/internal/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionName          = "peartree_session"
	defaultSessionSecret = "peartree-dev-secret"
	sessionMaxAge        = 7 * 24 * 60 * 60
)

// Options 汇总构建路由所需的依赖。
type Options struct {
	DB            *gorm.DB
	SessionSecret string
	Renderer      *render.Renderer
	Catalog       *content.Store
	Static        fs.FS
	Logger        *zap.Logger
	BaseURL       string
	BookingURL    string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) (*gin.Engine, *handler.API) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gdb := opts.DB
	if gdb == nil {
		gdb = db.DB
	}

	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())

	// 配置会话中间件
	secret := strings.TrimSpace(opts.SessionSecret)
	if secret == "" {
		logger.Warn("SESSION_SECRET is not set, using the development secret")
		secret = defaultSessionSecret
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/admin",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.HTMLRender = opts.Renderer

	// 静态文件服务
	if opts.Static != nil {
		r.StaticFS("/static", http.FS(opts.Static))
	}

	api := handler.NewAPI(handler.Options{
		DB:         gdb,
		Renderer:   opts.Renderer,
		Catalog:    opts.Catalog,
		Logger:     logger,
		BaseURL:    opts.BaseURL,
		BookingURL: opts.BookingURL,
	})

	r.GET("/", api.ShowIndex)
	r.GET("/healthz", api.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/robots.txt", api.Robots)
	r.GET("/book", api.ShowBook)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/pages", api.ListPages)
				apiGroup.PUT("/pages/*slug", api.UpdatePagePublished)
				apiGroup.POST("/import", api.ImportCatalog)
				apiGroup.GET("/audit", api.AuditPages)
				apiGroup.GET("/settings", api.GetSystemSettings)
				apiGroup.PUT("/settings", api.UpdateSystemSettings)
			}
		}
	}

	// 其余路径按落地页 slug 解析
	r.NoRoute(api.ShowLanding)

	return r, api
}

// Handler 为引擎加上 gzip 压缩。
func Handler(engine *gin.Engine) http.Handler {
	return gziphandler.GzipHandler(engine)
}
