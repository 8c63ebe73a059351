package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := loadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Host)

	require.NoError(t, saveConfigTo(path, &Config{Host: "https://planner.example.com"}))

	cfg, err = loadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://planner.example.com", cfg.Host)
}

func TestConfigInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0644))

	_, err := loadConfigFrom(path)
	assert.Error(t, err)
}

func TestApiHostEnvOverride(t *testing.T) {
	t.Setenv("PLANNER_API_HOST", "http://10.0.0.5:9000")
	assert.Equal(t, "http://10.0.0.5:9000", ApiHost())
}
