package main

import (
	"fmt"
	"io/fs"

	"github.com/peartree/landing/internal/config"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/logging"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app 保存所有子命令共享的全局参数。
type app struct {
	contentDir string
	staticDir  string
	database   string
	baseURL    string
	logLevel   string

	logger *zap.Logger
}

func newRootCmd(cfg config.AppConfig) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "sitegen",
		Short:         "Build and check the Pear Tree Dental landing pages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.contentDir, "content", cfg.ContentDir, "content directory (default: embedded content)")
	flags.StringVar(&a.staticDir, "static", cfg.StaticDir, "static asset directory (default: embedded assets)")
	flags.StringVar(&a.database, "db", cfg.DatabasePath, "sqlite database path")
	flags.StringVar(&a.baseURL, "base-url", cfg.SiteBaseURL, "absolute site URL used for canonical links and the sitemap")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newBuildCmd(a),
		newValidateCmd(a),
		newAuditCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newInitUserCmd(a),
	)
	return root
}

func (a *app) contentFS() fs.FS {
	return web.ContentFrom(a.contentDir)
}

func (a *app) staticFS() fs.FS {
	return web.StaticFrom(a.staticDir)
}

// loadCatalog 加载目录，存在校验问题时返回错误。
func (a *app) loadCatalog() (*content.Catalog, error) {
	catalog, err := content.LoadCatalog(a.contentFS())
	if err != nil {
		return nil, err
	}
	if issues := content.Validate(catalog); len(issues) > 0 {
		for _, issue := range issues {
			a.logger.Error("content issue", zap.String("issue", issue.String()))
		}
		return nil, fmt.Errorf("content has %d validation issues, run sitegen validate", len(issues))
	}
	return catalog, nil
}

func (a *app) renderer() (*render.Renderer, error) {
	return render.New(render.Options{
		Templates: web.Templates(),
		Static:    a.staticFS(),
		BaseURL:   a.baseURL,
		Logger:    a.logger,
	})
}

func (a *app) openDB() error {
	if db.DB != nil {
		return nil
	}
	return db.Init(a.database)
}
