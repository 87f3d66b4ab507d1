package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var landingPageViews = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "landing_page_views_total",
	Help: "Landing page views served, by page kind and slug.",
}, []string{"kind", "slug"})
