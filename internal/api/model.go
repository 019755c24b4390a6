// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/alvinbaena/pwd-meter/pkg/strength"
)

type analyzeRequest struct {
	// An empty password is a valid request, it gets the empty analysis.
	Password string `json:"password" form:"password"`
}

type analyzeResponse struct {
	strength.Result
	Meter int `json:"meter"`
}

func newAnalyzeResponse(res strength.Result) analyzeResponse {
	return analyzeResponse{Result: res, Meter: res.Meter()}
}

// page is the data of the HTML page. Result is nil until a password is submitted.
type page struct {
	Result       *strength.Result
	Meter        int
	Requirements []strength.Requirement
}

func newPage(res *strength.Result) page {
	p := page{Result: res}
	if res == nil {
		return p
	}

	p.Meter = res.Meter()
	for _, name := range strength.RequirementNames {
		p.Requirements = append(p.Requirements, res.Requirements[name])
	}
	return p
}
