package db

import "gorm.io/gorm"

// LandingPage 保存导入后的落地页，Document 为实例化后的 YAML 文档。
// Retired 表示该页已从内容目录中移除，导入时被自动下线；再次出现时会自动恢复上线。
type LandingPage struct {
	gorm.Model
	Slug      string `gorm:"size:255;uniqueIndex;not null"`
	Kind      string `gorm:"size:32;index;not null"`
	Town      string `gorm:"size:100"`
	Service   string `gorm:"size:100"`
	Title     string `gorm:"not null"`
	Published bool   `gorm:"index"`
	Retired   bool
	Document  string `gorm:"type:text;not null"`
	Checksum  string `gorm:"size:64"`
}

// TableName 指定自定义表名。
func (LandingPage) TableName() string {
	return "landing_pages"
}
