package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string `env:"LISTEN_ADDR"`
	Port              string `env:"PORT" envDefault:"8080"`
	DatabasePath      string `env:"DATABASE_PATH" envDefault:"peartree.db"`
	SessionSecret     string `env:"SESSION_SECRET" envDefault:"peartree-dev-secret"`
	GinMode           string `env:"GIN_MODE" envDefault:"release"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	SiteBaseURL       string `env:"SITE_BASE_URL" envDefault:"https://www.peartreedental.co.uk"`
	ContentDir        string `env:"CONTENT_DIR"`
	StaticDir         string `env:"STATIC_DIR"`
	ExportDir         string `env:"EXPORT_DIR" envDefault:"dist"`
	ExportSchedule    string `env:"EXPORT_SCHEDULE"`
	BookingURL        string `env:"BOOKING_URL"`
	SuperRootUserName string `env:"SUPER_ROOT_USER_NAME"`
	SuperRootPassword string `env:"SUPER_ROOT_PASSWORD"`
}

// Load 读取 .env（若存在）与环境变量，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = "8080"
	}

	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}

	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	c.ContentDir = strings.TrimSpace(c.ContentDir)
	c.StaticDir = strings.TrimSpace(c.StaticDir)
	c.ExportSchedule = strings.TrimSpace(c.ExportSchedule)
	c.BookingURL = strings.TrimSpace(c.BookingURL)
	c.SuperRootUserName = strings.TrimSpace(c.SuperRootUserName)
	c.SuperRootPassword = strings.TrimSpace(c.SuperRootPassword)
}
