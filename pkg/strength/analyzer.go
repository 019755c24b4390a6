// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"github.com/rs/zerolog/log"
)

var scoreLabels = [...]string{"Very Weak", "Weak", "Moderate", "Strong", "Very Strong"}

// Result is everything the engine reports about a password. It holds no
// part of the password itself.
type Result struct {
	Score            int          `json:"score"`
	Label            string       `json:"label"`
	Entropy          int          `json:"entropy"`
	EntropyRating    string       `json:"entropyRating"`
	CrackTime        string       `json:"crackTime"`
	CrackTimeSeconds float64      `json:"crackTimeSeconds"`
	CrackTimeContext string       `json:"crackTimeContext"`
	Requirements     Requirements `json:"requirements"`
	Feedback         string       `json:"feedback"`
	// Degraded is set when the coarse scorer was unavailable and the local fallback was used.
	Degraded bool `json:"degraded"`
}

// Meter is the strength meter fill, 0 to 100.
func (r Result) Meter() int {
	return max(0, min(100, r.Score*100/4))
}

// Label names a coarse score.
func Label(score int) string {
	if score < 0 || score >= len(scoreLabels) {
		return "Not rated"
	}
	return scoreLabels[score]
}

// EntropyRating places an entropy on the same five steps as the score.
func EntropyRating(entropy int) string {
	switch {
	case entropy >= 80:
		return scoreLabels[4]
	case entropy >= 60:
		return scoreLabels[3]
	case entropy >= 40:
		return scoreLabels[2]
	case entropy >= 20:
		return scoreLabels[1]
	default:
		return scoreLabels[0]
	}
}

// Analyzer runs the whole pipeline. It only reads its fields, so a single
// Analyzer can be shared between goroutines.
type Analyzer struct {
	cfg      Config
	scorer   Scorer
	fallback Scorer
}

// NewAnalyzer builds an analyzer. A nil scorer means the coarse scorer is
// unavailable and every result is produced in degraded mode.
func NewAnalyzer(cfg Config, scorer Scorer) *Analyzer {
	return &Analyzer{cfg: cfg, scorer: scorer, fallback: FallbackScorer{}}
}

func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze evaluates the password. It never fails: a stage that breaks
// yields its safe default instead.
func (a *Analyzer) Analyze(password string) Result {
	cfg := a.cfg

	if password == "" {
		return Result{
			Score:            0,
			Label:            Label(0),
			EntropyRating:    EntropyRating(0),
			CrackTime:        FormatCrackTime(0),
			CrackTimeContext: cfg.AttackerContext,
			Requirements:     failedRequirements(cfg),
			Feedback:         EmptyFeedback,
		}
	}

	score, degraded := a.score(password)

	entropy := safely("entropy", 0, func() int {
		return Entropy(password, Profile(password), cfg)
	})
	seconds := safely("crack time", 0, func() float64 {
		return CrackTime(password, entropy, cfg)
	})
	crackTime := safely("format crack time", "Unknown", func() string {
		return FormatCrackTime(seconds)
	})
	reqs := safely("requirements", failedRequirements(cfg), func() Requirements {
		return CheckRequirements(password, cfg)
	})
	feedback := safely("feedback", EmptyFeedback, func() string {
		return Feedback(password, score, entropy, reqs, cfg)
	})
	if degraded {
		feedback += " " + DegradedNote
	}

	return Result{
		Score:            score,
		Label:            Label(score),
		Entropy:          entropy,
		EntropyRating:    EntropyRating(entropy),
		CrackTime:        crackTime,
		CrackTimeSeconds: seconds,
		CrackTimeContext: cfg.AttackerContext,
		Requirements:     reqs,
		Feedback:         feedback,
		Degraded:         degraded,
	}
}

func (a *Analyzer) score(password string) (int, bool) {
	score, ok, err := scoreSafely(a.scorer, password)
	if ok {
		return score, false
	}
	log.Debug().Err(err).Msg("coarse scorer unavailable, using fallback scorer")

	score, ok, _ = scoreSafely(a.fallback, password)
	if !ok {
		score = 0
	}
	return score, true
}

// safely runs one pipeline stage, turning a panic into the stage default.
func safely[T any](stage string, def T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("stage", stage).Interface("panic", r).Msg("password analysis stage failed")
			out = def
		}
	}()

	return fn()
}
