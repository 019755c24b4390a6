// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// policyFile is the on-disk shape of a policy. Any field left out keeps its default.
type policyFile struct {
	Attacker string `yaml:"attacker"`
	Config   `yaml:",inline"`
}

// LoadPolicy reads a YAML policy file on top of DefaultConfig.
//
//	attacker: offline_gpu
//	min_length: 14
//	pools:
//	  symbol: 33
func LoadPolicy(fileName string) (Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	return ReadPolicy(file)
}

// ReadPolicy is LoadPolicy for an already open source.
func ReadPolicy(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	policy := policyFile{Config: DefaultConfig()}
	if len(bytes.TrimSpace(data)) > 0 {
		if err = yaml.Unmarshal(data, &policy); err != nil {
			return Config{}, fmt.Errorf("invalid policy: %w", err)
		}
	}

	cfg := policy.Config
	if policy.Attacker != "" {
		attacker, err := AttackerByName(policy.Attacker)
		if err != nil {
			return Config{}, err
		}
		// An explicit speed in the file wins over the named model.
		speed := cfg.GuessesPerSecond
		cfg = cfg.WithAttacker(attacker)
		if speed != DefaultConfig().GuessesPerSecond {
			cfg.GuessesPerSecond = speed
		}
	}

	if err = validator.New().Struct(&cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return Config{}, fmt.Errorf("invalid policy: %s must be %s %s", ve[0].Field(), ve[0].Tag(), ve[0].Param())
		}
		return Config{}, err
	}

	return cfg, nil
}
