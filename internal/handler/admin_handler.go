package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/internal/service"
	"go.uber.org/zap"
)

const (
	dashboardTopPages   = 10
	dashboardTrendHours = 24
)

type loginView struct {
	render.Document
	Error string
}

type dashboardView struct {
	render.Document
	Username string
	Overview service.SiteOverview
	Pages    []pageRow
	Trend    []service.HourlyTrafficPoint
	Error    string
}

func (a *API) adminDocument(c *gin.Context, title, path string) render.Document {
	doc := a.renderer.Document(a.practice(), a.siteSettings(c), title, path)
	doc.Robots = "noindex, nofollow"
	return doc
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, render.TemplateLogin, loginView{Document: a.adminDocument(c, "Admin login", "/admin/login")})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := db.Authenticate(a.db, username, password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "Incorrect username or password"
		if !errors.Is(err, db.ErrInvalidCredentials) {
			a.logger.Error("admin login", zap.Error(err))
			status = http.StatusInternalServerError
			message = "Login is unavailable, please try again"
		}
		c.HTML(status, render.TemplateLogin, loginView{
			Document: a.adminDocument(c, "Admin login", "/admin/login"),
			Error:    message,
		})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, render.TemplateLogin, loginView{
			Document: a.adminDocument(c, "Admin login", "/admin/login"),
			Error:    "Could not start a session",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板：页面列表、PV/UV 汇总与最近 24 小时趋势。
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	username, _ := session.Get("username").(string)

	view := dashboardView{
		Document: a.adminDocument(c, "Dashboard", "/admin/dashboard"),
		Username: username,
	}

	if overview, err := a.analytics.Overview(dashboardTopPages); err != nil {
		c.Error(err)
		view.Error = "Statistics are unavailable right now"
	} else {
		view.Overview = overview
	}

	if trend, err := a.analytics.HourlyTrafficTrend(a.now(), dashboardTrendHours); err != nil {
		c.Error(err)
	} else {
		view.Trend = trend
	}

	rows, err := a.pageRows(service.PageFilter{})
	if err != nil {
		c.Error(err)
		view.Error = "Pages could not be loaded"
	}
	view.Pages = rows

	c.HTML(http.StatusOK, render.TemplateDashboard, view)
}

// AuthRequired 是一个简单的认证中间件，API 请求返回 401，页面请求跳转登录。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			if isAPIRequest(c) {
				respondError(c, http.StatusUnauthorized, "login required")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
