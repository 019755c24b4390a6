// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/alvinbaena/pwd-meter/internal/util"
	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzeCmd = &cobra.Command{
		Use:   "analyze [PASSWORD]",
		Short: "Analyse a password given as argument, on stdin or in an interactive prompt",
		Long: "Analyse a password. Without an argument the first line of stdin is read. " +
			"Passing the password as an argument leaves it in the shell history, prefer --interactive.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeCommand(cmd, args)
		},
	}
)

func init() {
	analyzeCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode with a masked prompt")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().StringSliceVar(&userInputs, "user-input", nil,
		"Words known to an attacker (user name, site name) that weaken a password containing them")

	rootCmd.AddCommand(analyzeCmd)
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	analyzer, err := newAnalyzer(policyFile, attacker, userInputs)
	if err != nil {
		return err
	}

	if interactive {
		prompt := promptui.Prompt{
			Label: "Password",
			Mask:  '*',
		}

		log.Info().Msgf("Running interactive session. ^C to exit")
		if err = runInteractiveSession(prompt, analyzer, cmd.OutOrStdout()); err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				log.Info().Msgf("Goodbye")
			} else {
				log.Error().Err(err).Msgf("Error during interactive session")
			}
			// No return to avoid the default cobra error message
			return nil
		}
		return nil
	}

	var password string
	if len(args) > 0 {
		password = args[0]
	} else {
		if password, err = readPassword(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	return printResult(cmd.OutOrStdout(), analyzer.Analyze(password))
}

func runInteractiveSession(prompt promptui.Prompt, analyzer *strength.Analyzer, out io.Writer) error {
	for {
		result, err := prompt.Run()
		if err != nil {
			return err
		}

		if err = printResult(out, analyzer.Analyze(result)); err != nil {
			log.Error().Err(err).Msg("Error printing result")
		}
	}
}

// readPassword reads the first line of in, without its line terminator.
func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printResult(out io.Writer, res strength.Result) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	log.Info().Msgf("Strength: %s (%d/4, meter %d%%)", res.Label, res.Score, res.Meter())
	log.Info().Msgf("Entropy: %d bits (%s)", res.Entropy, res.EntropyRating)
	log.Info().Msgf("Time to crack: %s. %s", res.CrackTime, res.CrackTimeContext)
	for _, name := range strength.RequirementNames {
		req := res.Requirements[name]
		if req.Valid {
			log.Info().Msgf("  [x] %s", req.Text)
		} else {
			log.Info().Msgf("  [ ] %s", req.Text)
		}
	}
	log.Info().Msg(res.Feedback)
	return nil
}
