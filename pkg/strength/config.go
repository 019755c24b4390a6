// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PoolSizes is the number of symbols each character class adds to the guessing pool.
type PoolSizes struct {
	Lower    int `yaml:"lower" validate:"gte=0"`
	Upper    int `yaml:"upper" validate:"gte=0"`
	Digit    int `yaml:"digit" validate:"gte=0"`
	Symbol   int `yaml:"symbol" validate:"gte=0"`
	NonASCII int `yaml:"non_ascii" validate:"gte=0"`
}

// Attacker is a named guessing speed used to turn entropy into a crack time.
type Attacker struct {
	Name             string
	GuessesPerSecond float64
	Context          string
}

// Known attacker models. OfflineFast is the one the estimate defaults to.
var (
	Online        = Attacker{"online", 10, "Online attack against a rate limited service"}
	OfflineSlow   = Attacker{"offline_slow", 1_000, "Offline attack against a slow hash"}
	OfflineBcrypt = Attacker{"offline_bcrypt", 100_000, "Offline attack against bcrypt"}
	OfflineFast   = Attacker{"offline_fast", 1_000_000, "Using standard desktop computer"}
	OfflineGPU    = Attacker{"offline_gpu", 10_000_000_000, "Offline attack with a GPU cluster"}
)

var attackers = map[string]Attacker{
	Online.Name:        Online,
	OfflineSlow.Name:   OfflineSlow,
	OfflineBcrypt.Name: OfflineBcrypt,
	OfflineFast.Name:   OfflineFast,
	OfflineGPU.Name:    OfflineGPU,
}

// AttackerByName looks up one of the known attacker models.
func AttackerByName(name string) (Attacker, error) {
	if a, ok := attackers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}

	return Attacker{}, fmt.Errorf("unknown attacker model %q, valid models are: %s", name, strings.Join(AttackerNames(), ", "))
}

// AttackerNames returns the known attacker model names, sorted.
func AttackerNames() []string {
	names := make([]string, 0, len(attackers))
	for name := range attackers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config holds every constant the engine depends on. The zero value is not
// usable, start from DefaultConfig.
type Config struct {
	Pools PoolSizes `yaml:"pools"`
	// RepeatWeight is the share of a repeated run that is not counted towards the length.
	RepeatWeight float64 `yaml:"repeat_weight" validate:"gte=0"`
	// SequenceWeight is the share of a sequential match that is not counted towards the length.
	SequenceWeight float64 `yaml:"sequence_weight" validate:"gte=0"`
	// GuessesPerSecond is the attacker speed.
	GuessesPerSecond float64 `yaml:"guesses_per_second" validate:"gt=0"`
	// AttackerContext describes the attacker speed for display.
	AttackerContext string `yaml:"attacker_context"`
	// MinLength is the length requirement of the policy.
	MinLength int `yaml:"min_length" validate:"gt=0"`
	// ShortLength is the length below which a weak password is told to get longer.
	ShortLength int `yaml:"short_length" validate:"gte=0"`
}

// DefaultConfig returns the stock policy: a 12 character minimum and an offline fast-hash attacker.
func DefaultConfig() Config {
	return Config{
		Pools: PoolSizes{
			Lower:    26,
			Upper:    26,
			Digit:    10,
			Symbol:   33,
			NonASCII: 100,
		},
		RepeatWeight:     0.5,
		SequenceWeight:   0.3,
		GuessesPerSecond: OfflineFast.GuessesPerSecond,
		AttackerContext:  OfflineFast.Context,
		MinLength:        12,
		ShortLength:      10,
	}
}

// WithAttacker returns a copy of the config using the attacker's guessing speed.
func (c Config) WithAttacker(a Attacker) Config {
	c.GuessesPerSecond = a.GuessesPerSecond
	c.AttackerContext = a.Context
	return c
}

func (c Config) guessesPerSecond() float64 {
	if math.IsNaN(c.GuessesPerSecond) || c.GuessesPerSecond <= 0 {
		return OfflineFast.GuessesPerSecond
	}
	return c.GuessesPerSecond
}

func (c Config) minLength() int {
	if c.MinLength <= 0 {
		return 12
	}
	return c.MinLength
}
