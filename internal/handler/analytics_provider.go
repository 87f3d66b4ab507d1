package handler

import (
	"time"

	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/service"
)

type analyticsProvider interface {
	Overview(limit int) (service.SiteOverview, error)
	HourlyTrafficTrend(now time.Time, hours int) ([]service.HourlyTrafficPoint, error)
	PageStatsMap(pageIDs []uint) (map[uint]*db.PageStatistic, error)
	RecordPageView(pageID uint, visitorID string, now time.Time) (*db.PageStatistic, error)
}
