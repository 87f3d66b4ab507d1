package service

import (
	"fmt"
	"strings"

	"github.com/peartree/landing/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxFooterLength = 500

// SystemSettings 描述后台可配置的站点信息。SiteName 为空时页面使用诊所名称。
type SystemSettings struct {
	SiteName   string `json:"siteName"`
	FooterText string `json:"footerText"`
}

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	SiteName   string `json:"siteName"`
	FooterText string `json:"footerText"`
}

// SystemSettingService 提供系统设置的读取与更新能力。
type SystemSettingService struct {
	db *gorm.DB
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyFooterText,
}

// GetSettings 读取系统设置，未设置的项保持为空。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	var result SystemSettings

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			result.SiteName = strings.TrimSpace(record.Value)
		case db.SettingKeyFooterText:
			result.FooterText = strings.TrimSpace(record.Value)
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，页脚文字超长时截断。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	sanitized := SystemSettings{
		SiteName:   strings.TrimSpace(input.SiteName),
		FooterText: strings.TrimSpace(input.FooterText),
	}
	if runes := []rune(sanitized.FooterText); len(runes) > maxFooterLength {
		sanitized.FooterText = string(runes[:maxFooterLength])
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeySiteName, sanitized.SiteName); err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyFooterText, sanitized.FooterText)
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
