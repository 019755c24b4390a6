// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alvinbaena/pwd-meter/internal/config"
	"github.com/alvinbaena/pwd-meter/pkg/audit"
	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		jsonOutput, interactive, policyFile, attacker = false, false, "", ""
		inputFile, inputURL, userInputs = "", "", nil
	})
}

func TestReadPassword(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"secret", "secret"},
		{"secret\n", "secret"},
		{"secret\r\nsecond line\n", "secret"},
		{" spaced out \n", " spaced out "},
	}

	for _, tc := range cases {
		got, err := readPassword(strings.NewReader(tc.in))
		if err != nil {
			t.Errorf("readPassword(%q) should not fail: %s", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("readPassword(%q): %q, want: %q", tc.in, got, tc.want)
		}
	}
}

func TestNewAnalyzer(t *testing.T) {
	analyzer, err := newAnalyzer("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, strength.DefaultConfig(), analyzer.Config())

	policy := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(policy, []byte("attacker: online\nmin_length: 16\n"), 0o600))

	// The attacker flag wins over the policy file.
	analyzer, err = newAnalyzer(policy, "offline_gpu", nil)
	require.NoError(t, err)
	assert.Equal(t, 16, analyzer.Config().MinLength)
	assert.Equal(t, strength.OfflineGPU.GuessesPerSecond, analyzer.Config().GuessesPerSecond)

	_, err = newAnalyzer("", "abacus", nil)
	assert.Error(t, err)

	_, err = newAnalyzer(filepath.Join(t.TempDir(), "missing.yaml"), "", nil)
	assert.Error(t, err)
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("password\n"))
	rootCmd.SetArgs([]string{"analyze", "--json"})
	require.NoError(t, rootCmd.Execute())

	var res strength.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 38, res.Entropy)
	assert.False(t, res.Requirements.Met(strength.RequireLength))
}

func TestAuditCommand_JSON(t *testing.T) {
	resetFlags(t)

	list := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(list, []byte("password\nSh0rt!\nCorrectHorseBattery9!\n"), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"audit", "--json", "-i", list, "--threads", "2"})
	require.NoError(t, rootCmd.Execute())

	var summary audit.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, uint64(3), summary.Total)
	assert.Equal(t, uint64(1), summary.AllRequirements)
	assert.NotContains(t, out.String(), "Sh0rt!")
}

func TestAuditCommand_Source(t *testing.T) {
	resetFlags(t)

	rootCmd.SetArgs([]string{"audit"})
	assert.Error(t, rootCmd.Execute())
}

func TestServerTLSConfig(t *testing.T) {
	_, err := serverTLSConfig(config.Config{Host: "127.0.0.1"})
	assert.Error(t, err)

	tlsConfig, err := serverTLSConfig(config.Config{Host: "127.0.0.1", SelfTLS: true})
	require.NoError(t, err)
	assert.Len(t, tlsConfig.Certificates, 1)

	_, err = serverTLSConfig(config.Config{TLSCert: "missing.pem", TLSKey: "missing.key"})
	assert.Error(t, err)
}
