package service

import (
	"errors"
	"time"

	"github.com/peartree/landing/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidPageView 表示缺少访客或页面标识。
var ErrInvalidPageView = errors.New("invalid visitor or page id")

// AnalyticsService 负责处理落地页浏览相关的统计逻辑。
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// RecordPageView 记录访客对落地页的浏览：每次调用累加 PV，同一访客只计一次 UV。
// 同时更新所在小时的整站快照，返回该页最新的统计数据。
func (s *AnalyticsService) RecordPageView(pageID uint, visitorID string, now time.Time) (*db.PageStatistic, error) {
	if visitorID == "" || pageID == 0 {
		return nil, ErrInvalidPageView
	}

	var stats db.PageStatistic

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		visit := db.PageVisit{
			LandingPageID: pageID,
			VisitorID:     visitorID,
			LastViewedAt:  now,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "landing_page_id"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&visit)
		if insert.Error != nil {
			return insert.Error
		}

		isNewVisitor := insert.RowsAffected == 1
		if !isNewVisitor {
			if err := tx.Model(&db.PageVisit{}).
				Where("landing_page_id = ? AND visitor_id = ?", pageID, visitorID).
				Update("last_viewed_at", now).Error; err != nil {
				return err
			}
		}

		statsResult := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("landing_page_id = ?", pageID).
			First(&stats)

		switch {
		case errors.Is(statsResult.Error, gorm.ErrRecordNotFound):
			stats = db.PageStatistic{LandingPageID: pageID}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		case statsResult.Error != nil:
			return statsResult.Error
		}

		stats.PageViews++
		if isNewVisitor {
			stats.UniqueVisitors++
		}
		stats.LastViewedAt = now

		if err := tx.Save(&stats).Error; err != nil {
			return err
		}

		return recordHourly(tx, visitorID, now)
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

func recordHourly(tx *gorm.DB, visitorID string, now time.Time) error {
	hour := now.UTC().Truncate(time.Hour)

	visitor := db.SiteHourlyVisitor{Hour: hour, VisitorID: visitorID}
	insert := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hour"}, {Name: "visitor_id"}},
		DoNothing: true,
	}).Create(&visitor)
	if insert.Error != nil {
		return insert.Error
	}

	var uv uint64
	if insert.RowsAffected == 1 {
		uv = 1
	}

	snapshot := db.SiteHourlySnapshot{Hour: hour, PageViews: 1, UniqueVisitors: uv}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hour"}},
		DoUpdates: clause.Assignments(map[string]any{
			"page_views":      gorm.Expr("page_views + ?", 1),
			"unique_visitors": gorm.Expr("unique_visitors + ?", uv),
			"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&snapshot).Error
}

// PageStatsMap 返回指定落地页的统计数据，未被浏览过的页面不会出现在结果中。
func (s *AnalyticsService) PageStatsMap(pageIDs []uint) (map[uint]*db.PageStatistic, error) {
	result := make(map[uint]*db.PageStatistic, len(pageIDs))
	if len(pageIDs) == 0 {
		return result, nil
	}

	var stats []db.PageStatistic
	if err := s.db.Where("landing_page_id IN ?", pageIDs).Find(&stats).Error; err != nil {
		return nil, err
	}

	for i := range stats {
		stat := stats[i]
		result[stat.LandingPageID] = &stat
	}

	return result, nil
}

// SiteOverview 聚合站点层面的 UV/PV 数据及热门落地页。
type SiteOverview struct {
	TotalPageViews      uint64
	TotalUniqueVisitors uint64
	PageCount           int64
	PublishedCount      int64
	TopPages            []TopPageStat
}

// TopPageStat 描述热门落地页的统计信息。
type TopPageStat struct {
	LandingPageID  uint
	Slug           string
	Title          string
	Kind           string
	PageViews      uint64
	UniqueVisitors uint64
}

// Overview 汇总全站 UV/PV。
func (s *AnalyticsService) Overview(limit int) (SiteOverview, error) {
	if limit <= 0 {
		limit = 5
	}

	var overview SiteOverview

	// 总 PV
	var totals struct {
		PageViews uint64
	}
	if err := s.db.Model(&db.PageStatistic{}).
		Select("COALESCE(SUM(page_views), 0) AS page_views").
		Scan(&totals).Error; err != nil {
		return overview, err
	}
	overview.TotalPageViews = totals.PageViews

	// 全站 UV 以访客去重，而不是各页 UV 之和
	var uniqueVisitors int64
	if err := s.db.Model(&db.PageVisit{}).Distinct("visitor_id").Count(&uniqueVisitors).Error; err != nil {
		return overview, err
	}
	overview.TotalUniqueVisitors = uint64(uniqueVisitors)

	if err := s.db.Model(&db.LandingPage{}).Count(&overview.PageCount).Error; err != nil {
		return overview, err
	}
	if err := s.db.Model(&db.LandingPage{}).Where("published = ?", true).Count(&overview.PublishedCount).Error; err != nil {
		return overview, err
	}

	var topPages []TopPageStat
	if err := s.db.Table("page_statistics ps").
		Select("ps.landing_page_id, lp.slug, lp.title, lp.kind, ps.page_views, ps.unique_visitors").
		Joins("JOIN landing_pages lp ON lp.id = ps.landing_page_id AND lp.deleted_at IS NULL").
		Order("ps.page_views DESC, lp.slug ASC").
		Limit(limit).
		Scan(&topPages).Error; err != nil {
		return overview, err
	}

	overview.TopPages = topPages
	return overview, nil
}

// HourlyTrafficPoint 是趋势图中的一个小时。
type HourlyTrafficPoint struct {
	Hour           time.Time
	PageViews      uint64
	UniqueVisitors uint64
}

// HourlyTrafficTrend 返回截至 now 所在小时的最近 hours 个小时，没有数据的小时补零。
func (s *AnalyticsService) HourlyTrafficTrend(now time.Time, hours int) ([]HourlyTrafficPoint, error) {
	if hours <= 0 {
		hours = 24
	}

	end := now.UTC().Truncate(time.Hour)
	start := end.Add(-time.Duration(hours-1) * time.Hour)

	var snapshots []db.SiteHourlySnapshot
	if err := s.db.Where("hour >= ?", start).Order("hour ASC").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	byHour := make(map[int64]db.SiteHourlySnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byHour[snapshot.Hour.UTC().Unix()] = snapshot
	}

	points := make([]HourlyTrafficPoint, 0, hours)
	for hour := start; !hour.After(end); hour = hour.Add(time.Hour) {
		point := HourlyTrafficPoint{Hour: hour}
		if snapshot, ok := byHour[hour.Unix()]; ok {
			point.PageViews = snapshot.PageViews
			point.UniqueVisitors = snapshot.UniqueVisitors
		}
		points = append(points, point)
	}
	return points, nil
}
