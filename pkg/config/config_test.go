package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port        int     `env:"TEST_CFG_PORT" envDefault:"8080"`
	CatalogPath string  `env:"TEST_CFG_CATALOG_PATH" envDefault:"data/catalog.json"`
	DiamondRate float64 `env:"TEST_CFG_DIAMOND_RATE" envDefault:"50000"`
	WatchFile   bool    `env:"TEST_CFG_WATCH" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/catalog.json", cfg.CatalogPath)
	assert.Equal(t, 50000.0, cfg.DiamondRate)
	assert.False(t, cfg.WatchFile)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_CATALOG_PATH", "/srv/catalog.yaml")
	t.Setenv("TEST_CFG_DIAMOND_RATE", "62500.5")
	t.Setenv("TEST_CFG_WATCH", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 62500.5, cfg.DiamondRate)
	assert.True(t, cfg.WatchFile)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type requiredConfig struct {
	StripeKey string `env:"TEST_CFG_STRIPE_KEY,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	require.Error(t, Load(&cfg))
}

// --- LoadDotenv ---

func TestLoadDotenv_SetsUnsetVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_DOTENV_ONLY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEST_CFG_DOTENV_ONLY") })

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "from-file", os.Getenv("TEST_CFG_DOTENV_ONLY"))
}

func TestLoadDotenv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_PORT=1111\n"), 0o600))
	t.Setenv("TEST_CFG_PORT", "2222")

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "2222", os.Getenv("TEST_CFG_PORT"))
}

func TestLoadDotenv_MissingFileSkipped(t *testing.T) {
	assert.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "absent.env")))
}
