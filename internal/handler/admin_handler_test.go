package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	pagerender "github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/internal/service"
	"github.com/peartree/landing/web"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	lastName string
	lastData interface{}
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.lastName = name
	r.lastData = data
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type analyticsStub struct {
	trendCalled  bool
	trendHours   int
	overviewUsed int
	recorded     []uint
}

func (a *analyticsStub) Overview(limit int) (service.SiteOverview, error) {
	a.overviewUsed = limit
	return service.SiteOverview{
		PageCount:      2,
		TotalPageViews: 7,
		TopPages: []service.TopPageStat{
			{Slug: "alternatives/carlton", Title: "Dentist near Carlton", Kind: "alternative", PageViews: 5, UniqueVisitors: 2},
		},
	}, nil
}

func (a *analyticsStub) HourlyTrafficTrend(_ time.Time, hours int) ([]service.HourlyTrafficPoint, error) {
	a.trendCalled = true
	a.trendHours = hours
	return nil, nil
}

func (a *analyticsStub) PageStatsMap(ids []uint) (map[uint]*db.PageStatistic, error) {
	result := make(map[uint]*db.PageStatistic, len(ids))
	for _, id := range ids {
		result[id] = &db.PageStatistic{LandingPageID: id, PageViews: 3, UniqueVisitors: 1}
	}
	return result, nil
}

func (a *analyticsStub) RecordPageView(pageID uint, _ string, _ time.Time) (*db.PageStatistic, error) {
	a.recorded = append(a.recorded, pageID)
	return &db.PageStatistic{}, nil
}

func setupAdminHandlerTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:admin-handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func newStubAPI(t *testing.T, gdb *gorm.DB, analytics analyticsProvider) *API {
	t.Helper()

	renderer, err := pagerender.New(pagerender.Options{Templates: web.Templates(), Static: web.Static()})
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	catalog, err := content.LoadCatalog(web.Content())
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	pages := service.NewPageService(gdb)
	if _, err := pages.Import(catalog); err != nil {
		t.Fatalf("failed to import catalog: %v", err)
	}

	return &API{
		db:        gdb,
		pages:     pages,
		system:    service.NewSystemSettingService(gdb),
		analytics: analytics,
		renderer:  renderer,
		catalog:   content.NewStore(catalog),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
}

func TestShowDashboardUsesDayTrend(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupAdminHandlerTestDB(t)
	t.Cleanup(cleanup)

	stubAnalytics := &analyticsStub{}
	api := newStubAPI(t, gdb, stubAnalytics)
	htmlRender := &stubHTMLRender{}

	router := gin.New()
	router.HTMLRender = htmlRender
	router.Use(sessions.Sessions("peartree_session", cookie.NewStore([]byte("test-secret"))))
	router.GET("/admin/dashboard", api.ShowDashboard)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if !stubAnalytics.trendCalled || stubAnalytics.trendHours != dashboardTrendHours {
		t.Fatalf("expected HourlyTrafficTrend hours=%d, got called=%v hours=%d", dashboardTrendHours, stubAnalytics.trendCalled, stubAnalytics.trendHours)
	}
	if stubAnalytics.overviewUsed != dashboardTopPages {
		t.Fatalf("expected overview limit %d, got %d", dashboardTopPages, stubAnalytics.overviewUsed)
	}

	if htmlRender.lastName != pagerender.TemplateDashboard {
		t.Fatalf("expected dashboard template, got %q", htmlRender.lastName)
	}
	view, ok := htmlRender.lastData.(dashboardView)
	if !ok {
		t.Fatalf("unexpected view type %T", htmlRender.lastData)
	}
	if len(view.Pages) == 0 || view.Pages[0].PageViews != 3 {
		t.Fatalf("expected page rows with stats, got %+v", view.Pages)
	}
	if view.Robots != "noindex, nofollow" {
		t.Fatalf("admin pages must not be indexed, robots=%q", view.Robots)
	}
}

func TestShowDashboardRendersTopPages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupAdminHandlerTestDB(t)
	t.Cleanup(cleanup)

	api := newStubAPI(t, gdb, &analyticsStub{})

	router := gin.New()
	router.HTMLRender = api.renderer
	router.Use(sessions.Sessions("peartree_session", cookie.NewStore([]byte("test-secret"))))
	router.GET("/admin/dashboard", api.ShowDashboard)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Top pages") {
		t.Fatalf("expected top pages section, got %s", body)
	}
	if !strings.Contains(body, `<td><a href="/alternatives/carlton">Dentist near Carlton</a></td><td>5</td><td>2</td>`) {
		t.Fatalf("expected carlton top page row, got %s", body)
	}
}

func TestShowLandingRecordsViewAndSetsVisitorCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupAdminHandlerTestDB(t)
	t.Cleanup(cleanup)

	stubAnalytics := &analyticsStub{}
	api := newStubAPI(t, gdb, stubAnalytics)
	htmlRender := &stubHTMLRender{}

	router := gin.New()
	router.HTMLRender = htmlRender
	router.NoRoute(api.ShowLanding)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/alternatives/carlton/", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	if len(stubAnalytics.recorded) != 1 {
		t.Fatalf("expected one recorded view, got %d", len(stubAnalytics.recorded))
	}
	if htmlRender.lastName != pagerender.TemplateLanding {
		t.Fatalf("expected landing template, got %q", htmlRender.lastName)
	}

	var visitor *http.Cookie
	for _, c := range recorder.Result().Cookies() {
		if c.Name == visitorCookieName {
			visitor = c
		}
	}
	if visitor == nil || visitor.Value == "" || !visitor.HttpOnly {
		t.Fatalf("expected http-only visitor cookie, got %+v", visitor)
	}

	// 已有合法访客 ID 时不再下发新 Cookie
	recorder = httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/alternatives/carlton", nil)
	request.AddCookie(visitor)
	router.ServeHTTP(recorder, request)
	if len(recorder.Result().Cookies()) != 0 {
		t.Fatalf("expected visitor cookie to be reused")
	}
}

func TestShowLandingRejectsNonGET(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupAdminHandlerTestDB(t)
	t.Cleanup(cleanup)

	stubAnalytics := &analyticsStub{}
	api := newStubAPI(t, gdb, stubAnalytics)

	router := gin.New()
	router.HTMLRender = &stubHTMLRender{}
	router.NoRoute(api.ShowLanding)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/alternatives/carlton", nil))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for POST, got %d", recorder.Code)
	}
	if len(stubAnalytics.recorded) != 0 {
		t.Fatalf("no view should be recorded for POST")
	}
}

func TestShowLandingHeadSkipsAnalytics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupAdminHandlerTestDB(t)
	t.Cleanup(cleanup)

	stubAnalytics := &analyticsStub{}
	api := newStubAPI(t, gdb, stubAnalytics)

	router := gin.New()
	router.HTMLRender = &stubHTMLRender{}
	router.NoRoute(api.ShowLanding)

	counter := landingPageViews.WithLabelValues("alternative", "alternatives/gedling")
	before := testutil.ToFloat64(counter)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodHead, "/alternatives/gedling", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for HEAD, got %d", recorder.Code)
	}
	if len(stubAnalytics.recorded) != 0 {
		t.Fatalf("HEAD must not record a page view, got %d", len(stubAnalytics.recorded))
	}
	if got := testutil.ToFloat64(counter); got != before {
		t.Fatalf("HEAD must not bump the view counter, went from %v to %v", before, got)
	}
	if len(recorder.Result().Cookies()) != 0 {
		t.Fatalf("HEAD must not issue a visitor cookie")
	}
}
