// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package audit

import (
	"math"

	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/jfcg/sorty/v2"
)

// Report aggregates the results of an audit. It keeps counters and entropies
// only, never the passwords.
type Report struct {
	Total           uint64
	Scores          [5]uint64
	Unrated         uint64
	Degraded        uint64
	Requirements    map[strength.RequirementName]uint64
	AllRequirements uint64
	fastest         float64
	entropies       []uint64
	sorted          bool
}

func newReport(capacity int) *Report {
	return &Report{
		Requirements: make(map[strength.RequirementName]uint64, len(strength.RequirementNames)),
		fastest:      math.Inf(1),
		entropies:    make([]uint64, 0, capacity),
	}
}

func (r *Report) add(res strength.Result) {
	r.Total++
	if res.Score >= 0 && res.Score < len(r.Scores) {
		r.Scores[res.Score]++
	} else {
		r.Unrated++
	}
	if res.Degraded {
		r.Degraded++
	}

	for _, name := range strength.RequirementNames {
		if res.Requirements.Met(name) {
			r.Requirements[name]++
		}
	}
	if res.Requirements.All() {
		r.AllRequirements++
	}

	r.fastest = math.Min(r.fastest, res.CrackTimeSeconds)
	r.entropies = append(r.entropies, uint64(max(res.Entropy, 0)))
	r.sorted = false
}

func (r *Report) merge(o *Report) {
	r.Total += o.Total
	for i := range r.Scores {
		r.Scores[i] += o.Scores[i]
	}
	r.Unrated += o.Unrated
	r.Degraded += o.Degraded
	for name, count := range o.Requirements {
		r.Requirements[name] += count
	}
	r.AllRequirements += o.AllRequirements
	r.fastest = math.Min(r.fastest, o.fastest)
	r.entropies = append(r.entropies, o.entropies...)
	r.sorted = false
}

// Percentile returns the entropy at or below which p percent of the audited
// passwords fall, using the nearest rank.
func (r *Report) Percentile(p float64) uint64 {
	if len(r.entropies) == 0 {
		return 0
	}
	if !r.sorted {
		sorty.SortSlice(r.entropies)
		r.sorted = true
	}

	p = math.Max(0, math.Min(100, p))
	rank := int(math.Ceil(p/100*float64(len(r.entropies)))) - 1
	return r.entropies[max(rank, 0)]
}

// WeakestCrackTime is the display crack time of the fastest password to crack.
func (r *Report) WeakestCrackTime() string {
	if r.Total == 0 {
		return strength.FormatCrackTime(math.NaN())
	}
	return strength.FormatCrackTime(r.fastest)
}

type EntropySummary struct {
	Min    uint64 `json:"min"`
	P25    uint64 `json:"p25"`
	Median uint64 `json:"median"`
	P75    uint64 `json:"p75"`
	Max    uint64 `json:"max"`
}

// Summary is the printable form of a report.
type Summary struct {
	Total            uint64                              `json:"total"`
	Scores           map[string]uint64                   `json:"scores"`
	Degraded         uint64                              `json:"degraded"`
	Requirements     map[strength.RequirementName]uint64 `json:"requirements"`
	AllRequirements  uint64                              `json:"allRequirements"`
	Entropy          EntropySummary                      `json:"entropy"`
	WeakestCrackTime string                              `json:"weakestCrackTime"`
}

func (r *Report) Summary() Summary {
	scores := make(map[string]uint64, len(r.Scores)+1)
	for score, count := range r.Scores {
		scores[strength.Label(score)] = count
	}
	if r.Unrated > 0 {
		scores[strength.Label(-1)] = r.Unrated
	}

	reqs := make(map[strength.RequirementName]uint64, len(strength.RequirementNames))
	for _, name := range strength.RequirementNames {
		reqs[name] = r.Requirements[name]
	}

	return Summary{
		Total:           r.Total,
		Scores:          scores,
		Degraded:        r.Degraded,
		Requirements:    reqs,
		AllRequirements: r.AllRequirements,
		Entropy: EntropySummary{
			Min:    r.Percentile(0),
			P25:    r.Percentile(25),
			Median: r.Percentile(50),
			P75:    r.Percentile(75),
			Max:    r.Percentile(100),
		},
		WeakestCrackTime: r.WeakestCrackTime(),
	}
}
