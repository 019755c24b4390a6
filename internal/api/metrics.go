// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"strconv"
	"time"

	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's own registry. Only labels and counts are
// recorded, nothing derived from a password beyond its score label.
type Metrics struct {
	registry         *prometheus.Registry
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	analyses         *prometheus.CounterVec
	degraded         prometheus.Counter
	analysisDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwdmeter_analyses_total",
				Help: "Passwords analysed, by strength label",
			},
			[]string{"label"},
		),
		degraded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pwdmeter_analyses_degraded_total",
				Help: "Analyses scored by the fallback scorer",
			},
		),
		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pwdmeter_analysis_duration_seconds",
				Help:    "Time spent analysing a password",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.analyses,
		m.degraded,
		m.analysisDuration,
	)

	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveAnalysis(res strength.Result, elapsed time.Duration) {
	m.analyses.WithLabelValues(res.Label).Inc()
	if res.Degraded {
		m.degraded.Inc()
	}
	m.analysisDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
