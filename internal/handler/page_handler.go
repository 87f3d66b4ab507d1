package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/peartree/landing/internal/audit"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/service"
	"go.uber.org/zap"
)

type pageRow struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Kind           string `json:"kind"`
	Town           string `json:"town,omitempty"`
	Service        string `json:"service,omitempty"`
	Published      bool   `json:"published"`
	Retired        bool   `json:"retired"`
	PageViews      uint64 `json:"pageViews"`
	UniqueVisitors uint64 `json:"uniqueVisitors"`
}

type publishPayload struct {
	Published *bool `json:"published"`
}

type auditReport struct {
	Slug     string          `json:"slug"`
	Findings []audit.Finding `json:"findings"`
}

func newPageRow(record db.LandingPage, stats *db.PageStatistic) pageRow {
	row := pageRow{
		Slug:      record.Slug,
		Title:     record.Title,
		Kind:      record.Kind,
		Town:      record.Town,
		Service:   record.Service,
		Published: record.Published,
		Retired:   record.Retired,
	}
	if stats != nil {
		row.PageViews = stats.PageViews
		row.UniqueVisitors = stats.UniqueVisitors
	}
	return row
}

func (a *API) pageRows(filter service.PageFilter) ([]pageRow, error) {
	records, err := a.pages.List(filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	stats, err := a.analytics.PageStatsMap(ids)
	if err != nil {
		return nil, err
	}

	rows := make([]pageRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, newPageRow(record, stats[record.ID]))
	}
	return rows, nil
}

// ListPages 返回已入库页面及其访问统计，?kind= 可按类型筛选。
func (a *API) ListPages(c *gin.Context) {
	var filter service.PageFilter
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		kind, err := content.ParseKind(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "unknown page kind")
			return
		}
		filter.Kind = kind
	}
	filter.PublishedOnly = c.Query("published") == "true"

	rows, err := a.pageRows(filter)
	if err != nil {
		a.logger.Error("list pages", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": rows})
}

// UpdatePagePublished 发布或隐藏单个页面。
func (a *API) UpdatePagePublished(c *gin.Context) {
	slug := slugParam(c, "slug")
	if slug == "" {
		respondError(c, http.StatusBadRequest, "slug is required")
		return
	}

	var payload publishPayload
	if !bindJSON(c, &payload, "invalid payload") {
		return
	}
	if payload.Published == nil {
		respondError(c, http.StatusBadRequest, "published is required")
		return
	}

	record, err := a.pages.SetPublished(slug, *payload.Published)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		a.logger.Error("update page", zap.String("slug", slug), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update page")
		return
	}

	a.logger.Info("page visibility changed", zap.String("slug", slug), zap.Bool("published", record.Published))
	c.JSON(http.StatusOK, gin.H{"page": newPageRow(*record, nil)})
}

// ImportCatalog 将当前内容目录重新导入数据库。
func (a *API) ImportCatalog(c *gin.Context) {
	result, err := a.pages.Import(a.catalog.Load())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCatalog) {
			respondError(c, http.StatusConflict, "no content loaded")
			return
		}
		a.logger.Error("import catalog", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "import failed")
		return
	}

	a.logger.Info("catalog imported",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("retired", result.Retired))
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// AuditPages 渲染所有已发布页面并返回检查结果。
func (a *API) AuditPages(c *gin.Context) {
	pages, err := a.pages.Published()
	if err != nil {
		a.logger.Error("load published pages", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load pages")
		return
	}

	practice := a.practice()
	site := a.siteSettings(c)
	reports := make([]auditReport, 0, len(pages))
	failing := 0
	for _, page := range pages {
		var buf bytes.Buffer
		findings := []audit.Finding{}
		if err := a.renderer.RenderLanding(&buf, page, practice, site); err != nil {
			findings = append(findings, audit.Finding{Rule: audit.RuleParse, Message: err.Error()})
		} else if found := audit.Audit(buf.Bytes(), page, practice); len(found) > 0 {
			findings = found
		}
		if len(findings) > 0 {
			failing++
		}
		reports = append(reports, auditReport{Slug: page.Slug, Findings: findings})
	}

	c.JSON(http.StatusOK, gin.H{"pages": reports, "failing": failing})
}
