package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/export"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/internal/service"
	"go.uber.org/zap"
)

const (
	visitorCookieName   = "pt_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// ShowIndex 按类型分组展示所有已发布落地页。
func (a *API) ShowIndex(c *gin.Context) {
	pages, err := a.pages.Published()
	if err != nil {
		a.logger.Error("load published pages", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	catalog, err := content.NewCatalog(a.practice(), pages)
	if err != nil {
		a.logger.Error("build index catalog", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, render.TemplateIndex, a.renderer.Index(catalog, a.siteSettings(c)))
}

// ShowLanding 将未匹配的 GET 路径解析为落地页 slug。
func (a *API) ShowLanding(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		a.renderNotFound(c)
		return
	}

	slug := strings.Trim(c.Request.URL.Path, "/")
	if slug == "" {
		a.renderNotFound(c)
		return
	}

	record, page, err := a.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c)
			return
		}
		a.logger.Error("load landing page", zap.String("slug", slug), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if !record.Published {
		a.renderNotFound(c)
		return
	}

	view, err := a.renderer.Landing(page, a.practice(), a.siteSettings(c))
	if err != nil {
		a.logger.Error("build landing view", zap.String("slug", slug), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	// HEAD 多为监控探测，不计入 PV/UV
	if c.Request.Method == http.MethodGet {
		visitorID := a.ensureVisitorID(c)
		if a.analytics != nil {
			if _, recordErr := a.analytics.RecordPageView(record.ID, visitorID, a.now().UTC()); recordErr != nil {
				c.Error(recordErr) // 不中断渲染，但记录错误
			}
		}
		landingPageViews.WithLabelValues(string(page.Kind), page.Slug).Inc()
	}

	c.HTML(http.StatusOK, render.TemplateLanding, view)
}

// ShowBook 跳转到在线预约系统，未配置时展示电话预约页面。
func (a *API) ShowBook(c *gin.Context) {
	if target := strings.TrimSpace(a.bookingURL); target != "" {
		c.Redirect(http.StatusFound, target)
		return
	}

	doc := a.renderer.Document(a.practice(), a.siteSettings(c), "Book an appointment", "/book")
	c.HTML(http.StatusOK, render.TemplateBook, doc)
}

// Sitemap 列出首页与所有已发布落地页。
func (a *API) Sitemap(c *gin.Context) {
	pages, err := a.pages.Published()
	if err != nil {
		a.logger.Error("load published pages", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	body, err := export.Sitemap(a.baseURL, pages)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots 输出 robots.txt。
func (a *API) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", export.Robots(a.baseURL))
}

func (a *API) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, render.TemplateNotFound, a.renderer.NotFound(a.practice(), a.siteSettings(c)))
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil {
		if _, parseErr := uuid.Parse(id); parseErr == nil {
			return id
		}
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}
