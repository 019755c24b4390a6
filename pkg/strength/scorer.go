// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

// Scorer rates a password on the coarse 0 (very weak) to 4 (very strong) scale.
type Scorer interface {
	Score(password string) int
}

// ScorerFunc adapts a plain function to a Scorer.
type ScorerFunc func(password string) int

func (f ScorerFunc) Score(password string) int {
	return f(password)
}

// ZxcvbnScorer uses the zxcvbn pattern and dictionary matcher. UserInputs are
// extra words (user name, site name) treated as known to the attacker.
type ZxcvbnScorer struct {
	UserInputs []string
}

func (z ZxcvbnScorer) Score(password string) int {
	return zxcvbn.PasswordStrength(password, z.UserInputs).Score
}

// FallbackScorer is a local approximation used when no real scorer is available.
type FallbackScorer struct{}

func (FallbackScorer) Score(password string) int {
	classes := Profile(password)
	n := length(password)

	score := 0
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}
	if classes.Upper && classes.Lower {
		score++
	}
	if classes.Digit && classes.Symbol {
		score++
	}
	return min(score, 4)
}

// scoreSafely runs the scorer, reporting false when it panics or answers out of range.
func scoreSafely(s Scorer, password string) (score int, ok bool, err error) {
	if s == nil {
		return 0, false, fmt.Errorf("no scorer configured")
	}

	defer func() {
		if r := recover(); r != nil {
			score, ok, err = 0, false, fmt.Errorf("scorer panic: %v", r)
		}
	}()

	score = s.Score(password)
	if score < 0 || score > 4 {
		return 0, false, fmt.Errorf("scorer returned %d, outside 0-4", score)
	}
	return score, true, nil
}
