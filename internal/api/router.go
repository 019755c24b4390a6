// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templates embed.FS

type Options struct {
	// RateLimit is the number of analysis requests per second for all callers. 0 disables it.
	RateLimit float64
	RateBurst int
}

// NewRouter builds the gin engine serving the page, the JSON API, metrics and health check.
func NewRouter(analyzer *strength.Analyzer, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(logger.SetLogger(logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
		return zerolog.New(gin.DefaultWriter).With().Timestamp().Str(ContextRequestID, c.GetString(ContextRequestID)).Logger()
	})))
	router.Use(NoStore())

	metrics := NewMetrics()
	router.Use(metrics.Middleware())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	limiter := NewRateLimiter(opts.RateLimit, opts.RateBurst)

	page := router.Group("/", limiter.RateLimit())
	RegisterPage(page, analyzer, metrics)

	v1 := router.Group("/v1", limiter.RateLimit())
	RegisterAnalyzeApi(v1, analyzer, metrics)

	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
