// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"
)

// MaxCrackTime is returned for entropies too large to represent. Treat it as infinite.
const MaxCrackTime = math.MaxFloat64

// uncrackable is the point from which a crack time is displayed as effectively uncrackable.
const uncrackable = 1e21

// CrackTime estimates the average seconds needed to brute force a password of
// the given entropy: half the keyspace at the configured guessing speed.
func CrackTime(password string, entropy int, cfg Config) float64 {
	if password == "" || entropy < 0 {
		return 0
	}

	gps := cfg.guessesPerSecond()

	switch {
	case entropy > 1023:
		return MaxCrackTime
	case entropy > 160:
		// 2^entropy overflows float64 long before 1024, stay in the log domain.
		log2Seconds := float64(entropy) - math.Log2(gps) - 1
		return math.Pow(2, math.Min(log2Seconds, 1023))
	default:
		return math.Pow(2, float64(entropy)) / (2 * gps)
	}
}

type timeUnit struct {
	seconds  float64
	singular string
	plural   string
}

// Largest unit first.
var timeUnits = []timeUnit{
	{100 * 365 * 86400, "century", "centuries"},
	{365 * 86400, "year", "years"},
	{30 * 86400, "month", "months"},
	{86400, "day", "days"},
	{3600, "hour", "hours"},
	{60, "minute", "minutes"},
	{1, "second", "seconds"},
}

// FormatCrackTime renders a crack time in seconds using the largest unit the
// time reaches.
func FormatCrackTime(seconds float64) string {
	switch {
	case math.IsNaN(seconds):
		return "Unknown"
	case math.IsInf(seconds, 1) || seconds >= uncrackable:
		return "Centuries (effectively uncrackable)"
	case seconds < 1:
		return "Instantly"
	}

	for _, unit := range timeUnits {
		if seconds >= unit.seconds {
			n := math.Round(seconds / unit.seconds)
			if n == 1 {
				return fmt.Sprintf("1 %s", unit.singular)
			}
			return fmt.Sprintf("%.0f %s", n, unit.plural)
		}
	}

	return "Instantly"
}
