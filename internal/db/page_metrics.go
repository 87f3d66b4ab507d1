package db

import "time"

// PageStatistic 汇总落地页维度的浏览数据。
type PageStatistic struct {
	ID             uint   `gorm:"primaryKey"`
	LandingPageID  uint   `gorm:"uniqueIndex"`
	PageViews      uint64 `gorm:"default:0"`
	UniqueVisitors uint64 `gorm:"default:0"`
	LastViewedAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (PageStatistic) TableName() string {
	return "page_statistics"
}

// PageVisit 记录访客层面的浏览历史，用于 UV/PV 去重。
type PageVisit struct {
	ID            uint   `gorm:"primaryKey"`
	LandingPageID uint   `gorm:"uniqueIndex:idx_page_visitor"`
	VisitorID     string `gorm:"size:64;uniqueIndex:idx_page_visitor"`
	LastViewedAt  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName 指定自定义表名。
func (PageVisit) TableName() string {
	return "page_visits"
}

// SiteHourlySnapshot 按小时汇总整站落地页的 PV/UV，供后台趋势图使用。
type SiteHourlySnapshot struct {
	ID             uint      `gorm:"primaryKey"`
	Hour           time.Time `gorm:"uniqueIndex"`
	PageViews      uint64    `gorm:"default:0"`
	UniqueVisitors uint64    `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (SiteHourlySnapshot) TableName() string {
	return "site_hourly_snapshots"
}

// SiteHourlyVisitor 记录某小时内出现过的访客，用于整站 UV 去重。
type SiteHourlyVisitor struct {
	ID        uint      `gorm:"primaryKey"`
	Hour      time.Time `gorm:"uniqueIndex:idx_hour_visitor"`
	VisitorID string    `gorm:"size:64;uniqueIndex:idx_hour_visitor"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (SiteHourlyVisitor) TableName() string {
	return "site_hourly_visitors"
}
