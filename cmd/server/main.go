package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peartree/landing/internal/config"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/export"
	"github.com/peartree/landing/internal/logging"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/internal/router"
	"github.com/peartree/landing/internal/service"
	"github.com/peartree/landing/web"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	if cfg.SuperRootUserName != "" && cfg.SuperRootPassword != "" {
		created, err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword)
		if err != nil {
			logger.Fatal("failed to ensure admin user", zap.Error(err))
		}
		if created {
			logger.Info("admin user created", zap.String("username", cfg.SuperRootUserName))
		}
	}

	// 加载内容并同步到数据库
	catalog, err := content.LoadCatalog(web.ContentFrom(cfg.ContentDir))
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}
	if issues := content.Validate(catalog); len(issues) > 0 {
		for _, issue := range issues {
			logger.Error("content issue", zap.String("issue", issue.String()))
		}
		logger.Fatal("content failed validation", zap.Int("issues", len(issues)))
	}
	store := content.NewStore(catalog)

	pages := service.NewPageService(db.DB)
	result, err := pages.Import(catalog)
	if err != nil {
		logger.Fatal("failed to import content", zap.Error(err))
	}
	logger.Info("content imported",
		zap.Int("pages", len(catalog.Pages)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("retired", result.Retired))

	static := web.StaticFrom(cfg.StaticDir)
	renderer, err := render.New(render.Options{
		Templates: web.Templates(),
		Static:    static,
		BaseURL:   cfg.SiteBaseURL,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	// 设置 Gin 路由
	engine, _ := router.SetupRouter(router.Options{
		DB:            db.DB,
		SessionSecret: cfg.SessionSecret,
		Renderer:      renderer,
		Catalog:       store,
		Static:        static,
		Logger:        logger,
		BaseURL:       cfg.SiteBaseURL,
		BookingURL:    cfg.BookingURL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ContentDir != "" {
		watcher, err := content.NewWatcher(cfg.ContentDir, logger, func(next *content.Catalog) error {
			if _, err := pages.Import(next); err != nil {
				return err
			}
			store.Replace(next)
			return nil
		})
		if err != nil {
			logger.Fatal("failed to watch content", zap.String("dir", cfg.ContentDir), zap.Error(err))
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("content watcher stopped", zap.Error(err))
			}
		}()
		logger.Info("watching content", zap.String("dir", cfg.ContentDir))
	}

	var scheduler *export.Scheduler
	if cfg.ExportSchedule != "" {
		settings := service.NewSystemSettingService(db.DB)
		exporter, err := export.New(export.Options{
			Renderer: renderer,
			Source:   export.StoreSource{Store: store, Published: pages},
			Static:   static,
			BaseURL:  cfg.SiteBaseURL,
			Site: func() render.Site {
				current, err := settings.GetSettings()
				if err != nil {
					logger.Warn("load site settings for export", zap.Error(err))
				}
				return render.Site{Name: current.SiteName, Footer: current.FooterText}
			},
			Logger: logger,
		})
		if err != nil {
			logger.Fatal("failed to build exporter", zap.Error(err))
		}
		outDir, err := filepath.Abs(cfg.ExportDir)
		if err != nil {
			logger.Fatal("invalid export dir", zap.Error(err))
		}
		scheduler, err = export.NewScheduler(cfg.ExportSchedule, exporter, outDir, logger)
		if err != nil {
			logger.Fatal("invalid export schedule", zap.String("schedule", cfg.ExportSchedule), zap.Error(err))
		}
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
