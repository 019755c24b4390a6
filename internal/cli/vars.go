// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// root
	policyFile string
	// root
	attacker string
	// analyze, audit
	jsonOutput bool
	// analyze
	interactive bool
	// analyze
	userInputs []string
	// audit
	inputFile string
	// audit
	inputURL string
	// audit
	threads int
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	host string
	// serve
	port uint16
	// serve
	rateLimit float64
	// serve
	rateBurst int
	// serve
	maxConns int
)
