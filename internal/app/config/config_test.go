package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HTTP_ADDR", "PRICING_XLSX", "PRICING_DATABASE_URL", "WAIVED_CITY", "PDF_FONT_DIR", "LOG_LEVEL"} {
		// Registered with t.Setenv so the cleanup restores it, then removed so
		// .env files are allowed to fill it.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "Planilha de preços.xlsx", cfg.PricingXLSX)
	assert.Empty(t, cfg.PricingDatabaseURL)
	assert.Equal(t, "Parelhas", cfg.WaivedCity)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("WAIVED_CITY", "Caicó")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "Caicó", cfg.WaivedCity)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	content := []byte("PRICING_XLSX=precos.xlsx\nexport PDF_FONT_DIR=/usr/share/fonts/dejavu\nHTTP_ADDR=:7000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), content, 0o600))
	t.Setenv("HTTP_ADDR", ":9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "precos.xlsx", cfg.PricingXLSX)
	assert.Equal(t, "/usr/share/fonts/dejavu", cfg.PDFFontDir)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestLoad_BadLogLevel(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

// chdir is a Go 1.21-compatible stand-in for testing.T.Chdir (Go 1.24+):
// it changes the working directory and restores it when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
