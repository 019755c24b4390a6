// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alvinbaena/pwd-meter/internal/util"
	"github.com/alvinbaena/pwd-meter/pkg/audit"
	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rough average line length of a wordlist, used to estimate its line count.
const avgLineBytes = 8

var (
	auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "Analyse every password of a wordlist and print aggregate statistics",
		Long: "Analyse every line of a wordlist, read from a file or downloaded from a URL. " +
			"Only totals are reported, no password of the list is printed or kept.",
		Args: func(cmd *cobra.Command, args []string) error {
			if (inputFile == "") == (inputURL == "") {
				return errors.New("exactly one of --in-file or --url is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return auditCommand(cmd)
		},
	}
)

func init() {
	auditCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Wordlist file, one password per line")
	auditCmd.Flags().StringVar(&inputURL, "url", "", "Wordlist URL, one password per line")
	auditCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of workers. Defaults to the number of CPUs")
	auditCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")

	rootCmd.AddCommand(auditCmd)
}

func auditCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	analyzer, err := newAnalyzer(policyFile, attacker, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location := inputFile
	if inputURL != "" {
		location = inputURL
	}

	src, err := audit.Open(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing %s", src.Name)
		}
	}()

	// One entropy value is kept per line for the percentiles.
	if src.Size > 0 {
		if err = util.CheckRam(uint64(src.Size)/avgLineBytes, 8); err != nil {
			return err
		}
	}

	report, err := audit.NewAuditor(analyzer, threads).Process(ctx, src)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msgf("Audit cancelled")
			return nil
		}
		return err
	}

	return printSummary(cmd.OutOrStdout(), report.Summary())
}

func printSummary(out io.Writer, s audit.Summary) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	p := message.NewPrinter(language.English)
	percent := func(n uint64) float64 {
		if s.Total == 0 {
			return 0
		}
		return float64(n*100) / float64(s.Total)
	}

	log.Info().Msgf("Passwords analysed: %s", p.Sprintf("%d", s.Total))
	for score := 0; score <= 4; score++ {
		label := strength.Label(score)
		log.Info().Msgf("  %-12s %s (%.2f%%)", label, p.Sprintf("%d", s.Scores[label]), percent(s.Scores[label]))
	}
	if s.Degraded > 0 {
		log.Warn().Msgf("%s passwords were scored by the fallback scorer", p.Sprintf("%d", s.Degraded))
	}

	log.Info().Msgf("Requirements met:")
	for _, name := range strength.RequirementNames {
		log.Info().Msgf("  %-12s %s (%.2f%%)", name, p.Sprintf("%d", s.Requirements[name]), percent(s.Requirements[name]))
	}
	log.Info().Msgf("  %-12s %s (%.2f%%)", "all", p.Sprintf("%d", s.AllRequirements), percent(s.AllRequirements))

	log.Info().Msgf("Entropy bits: min %d, p25 %d, median %d, p75 %d, max %d",
		s.Entropy.Min, s.Entropy.P25, s.Entropy.Median, s.Entropy.P75, s.Entropy.Max)
	log.Info().Msgf("Weakest password cracked in: %s", s.WeakestCrackTime)
	return nil
}
