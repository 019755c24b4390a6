// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/gin-gonic/gin"
)

type analyzeApi struct {
	analyzer *strength.Analyzer
	metrics  *Metrics
}

func (a *analyzeApi) analyze(password string) strength.Result {
	start := time.Now()
	res := a.analyzer.Analyze(password)
	a.metrics.ObserveAnalysis(res, time.Since(start))
	return res
}

func (a *analyzeApi) analyzePassword(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The binding error can quote the request body, so it is not returned.
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object with a password field"})
		return
	}

	c.JSON(http.StatusOK, newAnalyzeResponse(a.analyze(req.Password)))
}

func (a *analyzeApi) showPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(nil))
}

func (a *analyzeApi) submitPage(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", newPage(nil))
		return
	}

	res := a.analyze(req.Password)
	c.HTML(http.StatusOK, "index.html", newPage(&res))
}

// RegisterAnalyzeApi adds the JSON API to the group.
func RegisterAnalyzeApi(group *gin.RouterGroup, analyzer *strength.Analyzer, metrics *Metrics) {
	a := &analyzeApi{analyzer: analyzer, metrics: metrics}

	group.POST("/analyze", a.analyzePassword)
}

// RegisterPage adds the HTML form to the group.
func RegisterPage(group *gin.RouterGroup, analyzer *strength.Analyzer, metrics *Metrics) {
	a := &analyzeApi{analyzer: analyzer, metrics: metrics}

	group.GET("/", a.showPage)
	group.POST("/", a.submitPage)
}
