package main

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/web"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func setupDemoSeedTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := db.Open(sqlite.Open("file:demo-seed?mode=memory&cache=shared"), logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
		db.DB = nil
	}
}

func TestCreateDemoTrafficMatchesSnapshots(t *testing.T) {
	cleanup := setupDemoSeedTestDB(t)
	defer cleanup()

	catalog, err := content.LoadCatalog(web.Content())
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	if err := importDemoPages(catalog); err != nil {
		t.Fatalf("failed to import pages: %v", err)
	}

	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	total, err := createDemoTraffic(now, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("failed to seed traffic: %v", err)
	}
	if total == 0 {
		t.Fatalf("expected some page views to be generated")
	}

	var pageViews, hourlyViews int64
	if err := db.DB.Model(&db.PageStatistic{}).Select("COALESCE(SUM(page_views), 0)").Scan(&pageViews).Error; err != nil {
		t.Fatalf("failed to sum page views: %v", err)
	}
	if err := db.DB.Model(&db.SiteHourlySnapshot{}).Select("COALESCE(SUM(page_views), 0)").Scan(&hourlyViews).Error; err != nil {
		t.Fatalf("failed to sum hourly views: %v", err)
	}
	if pageViews != int64(total) || hourlyViews != int64(total) {
		t.Fatalf("expected %d views everywhere, got pages=%d hourly=%d", total, pageViews, hourlyViews)
	}

	var visits, uniqueVisitors int64
	if err := db.DB.Model(&db.PageVisit{}).Count(&visits).Error; err != nil {
		t.Fatalf("failed to count visits: %v", err)
	}
	if err := db.DB.Model(&db.PageStatistic{}).Select("COALESCE(SUM(unique_visitors), 0)").Scan(&uniqueVisitors).Error; err != nil {
		t.Fatalf("failed to sum unique visitors: %v", err)
	}
	if visits != uniqueVisitors || visits > int64(total) {
		t.Fatalf("expected one unique visitor per page visit, got visits=%d uv=%d views=%d", visits, uniqueVisitors, total)
	}

	var outside int64
	cutoff := now.Truncate(time.Hour).Add(-time.Duration(demoHours-1) * time.Hour)
	if err := db.DB.Model(&db.SiteHourlySnapshot{}).Where("hour < ?", cutoff).Count(&outside).Error; err != nil {
		t.Fatalf("failed to count snapshots: %v", err)
	}
	if outside != 0 {
		t.Fatalf("expected traffic only within the last %d hours, found %d older snapshots", demoHours, outside)
	}
}
