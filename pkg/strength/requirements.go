// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "fmt"

type RequirementName string

const (
	RequireLength    RequirementName = "length"
	RequireUppercase RequirementName = "uppercase"
	RequireLowercase RequirementName = "lowercase"
	RequireNumbers   RequirementName = "numbers"
	RequireSymbols   RequirementName = "symbols"
)

// RequirementNames lists the policy in display order.
var RequirementNames = []RequirementName{
	RequireLength,
	RequireUppercase,
	RequireLowercase,
	RequireNumbers,
	RequireSymbols,
}

type Requirement struct {
	Valid bool   `json:"valid"`
	Text  string `json:"text,omitempty"`
}

// Requirements maps every policy requirement to its result. A missing entry reads as not met.
type Requirements map[RequirementName]Requirement

// CheckRequirements evaluates the fixed policy. It does not look at entropy.
func CheckRequirements(password string, cfg Config) Requirements {
	classes := Profile(password)
	minLength := cfg.minLength()

	return Requirements{
		RequireLength:    {Valid: password != "" && length(password) >= minLength, Text: fmt.Sprintf("At least %d characters", minLength)},
		RequireUppercase: {Valid: classes.Upper, Text: "Uppercase letters (A-Z)"},
		RequireLowercase: {Valid: classes.Lower, Text: "Lowercase letters (a-z)"},
		RequireNumbers:   {Valid: classes.Digit, Text: "Numbers (0-9)"},
		RequireSymbols:   {Valid: classes.Symbol, Text: "Special characters (!@#$%)"},
	}
}

func (r Requirements) Met(name RequirementName) bool {
	return r[name].Valid
}

// All reports whether every requirement of the policy is met.
func (r Requirements) All() bool {
	for _, name := range RequirementNames {
		if !r.Met(name) {
			return false
		}
	}
	return true
}

// failedRequirements is the safe default when the checker cannot run.
func failedRequirements(cfg Config) Requirements {
	return CheckRequirements("", cfg)
}
