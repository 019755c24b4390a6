// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdmeter [COMMAND] [OPTIONS]",
		Short: "Measure the strength of a password",
		Long: "Analyse passwords locally: strength score, entropy, estimated time to crack, " +
			"policy requirements and recommendations. Passwords are never stored or logged.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "YAML policy file overriding the default analysis settings")
	rootCmd.PersistentFlags().StringVar(&attacker, "attacker", "",
		fmt.Sprintf("Attacker model used for the crack time estimate %v", strength.AttackerNames()))
}

func Execute() error {
	return rootCmd.Execute()
}

// newAnalyzer builds the analyzer from the policy file and attacker model, in that order.
func newAnalyzer(policyFile, attacker string, inputs []string) (*strength.Analyzer, error) {
	cfg := strength.DefaultConfig()
	if policyFile != "" {
		var err error
		if cfg, err = strength.LoadPolicy(policyFile); err != nil {
			return nil, fmt.Errorf("error loading policy %s: %w", policyFile, err)
		}
		log.Debug().Msgf("using policy file %s", policyFile)
	}

	if attacker != "" {
		a, err := strength.AttackerByName(attacker)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithAttacker(a)
	}
	log.Debug().Msgf("crack time estimated at %.0f guesses/s (%s)", cfg.GuessesPerSecond, cfg.AttackerContext)

	return strength.NewAnalyzer(cfg, strength.ZxcvbnScorer{UserInputs: inputs}), nil
}
