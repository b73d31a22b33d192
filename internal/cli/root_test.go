package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simtrader/internal/config"
	apperrors "simtrader/internal/errors"
)

// templateConfig writes the default template so commands never read the
// machine's own config directory.
func templateConfig(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, config.WriteTemplate(&buf))
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootRunsSession(t *testing.T) {
	cfg := templateConfig(t)

	for _, args := range [][]string{
		{"--config", cfg},
		{"--config", cfg, "play"},
		{"--config", cfg, "play", "--seed", "7"},
	} {
		out, _, err := execute(t, "neo\n500\n1\n7\n", args...)
		require.NoError(t, err, args)
		assert.Contains(t, out, "Welcome to Stock Trading Platform!")
		assert.Contains(t, out, "$175.50")
		assert.Contains(t, out, "Thank you for using Stock Trading Platform!")
	}
}

func TestPlayEndOfInputExitsCleanly(t *testing.T) {
	_, _, err := execute(t, "neo\n", "--config", templateConfig(t), "play")
	assert.NoError(t, err)
}

func TestPlaySeedIsDeterministic(t *testing.T) {
	cfg := templateConfig(t)
	script := "s\n100\n6\n6\n1\n7\n"

	first, _, err := execute(t, script, "--config", cfg, "play", "--seed", "99")
	require.NoError(t, err)
	second, _, err := execute(t, script, "--config", cfg, "play", "--seed", "99")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDebugLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "trinity\n50\n7\n", "--config", templateConfig(t), "--debug")
	require.NoError(t, err)
	assert.NotContains(t, out, "Session state")
	assert.Contains(t, errOut, "Session state")
}

func TestInvalidConfigFailsBeforeSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[market]\nvolatility_percent = 0\n"), 0644))

	out, _, err := execute(t, "x\n1\n7\n", "--config", path, "play")
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
	assert.NotContains(t, out, "Welcome")

	_, _, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestMarketCommand(t *testing.T) {
	cfg := templateConfig(t)

	out, _, err := execute(t, "", "--config", cfg, "market")
	require.NoError(t, err)
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "Microsoft")
	assert.Contains(t, out, "$380.75")

	out, _, err = execute(t, "", "--config", cfg, "market", "--json")
	require.NoError(t, err)
	var listings []listingView
	require.NoError(t, json.Unmarshal([]byte(out), &listings))
	require.Len(t, listings, 5)
	assert.Equal(t, listingView{Symbol: "AAPL", Name: "Apple Inc.", Price: "175.50"}, listings[0])
	assert.Equal(t, "AMZN", listings[4].Symbol)
}

func TestVersionCommand(t *testing.T) {
	cfg := templateConfig(t)

	out, _, err := execute(t, "", "--config", cfg, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "simtrader v"+Version)

	out, _, err = execute(t, "", "--config", cfg, "version", "--json")
	require.NoError(t, err)
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, Version, v["version"])
}

func TestConfigCommands(t *testing.T) {
	cfg := templateConfig(t)

	out, _, err := execute(t, "", "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Volatility:  5.00%")
	assert.Contains(t, out, "Seed:        random")
	assert.Contains(t, out, "Currency:    USD")

	out, _, err = execute(t, "", "--config", cfg, "config", "show", "--json")
	require.NoError(t, err)
	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Len(t, shown.Market.Stocks, 5)

	out, _, err = execute(t, "", "--config", cfg, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigDir()+"\n", out)

	out, _, err = execute(t, "", "--config", cfg, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, _, err = execute(t, "", "--config", cfg, "config", "template")
	require.NoError(t, err)
	assert.Contains(t, out, "[market]")
	assert.Contains(t, out, "volatility_percent = 5.0")
}

func TestConfigValidateReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ncurrency = \"JPY\"\n"), 0644))

	out, _, err := execute(t, "", "--config", path, "config", "validate")
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
	assert.Contains(t, out, "Configuration validation failed")

	out, _, err = execute(t, "", "--config", path, "config", "validate", "--json")
	assert.Error(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, false, result["valid"])
}

func TestExamplesCommand(t *testing.T) {
	out, _, err := execute(t, "", "--config", templateConfig(t), "examples")
	require.NoError(t, err)
	assert.Contains(t, out, "Play a Session")
	assert.Contains(t, out, "simtrader play --seed 42 Repeatable price moves")
}
