package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "6060", cfg.Admin.Port)
	assert.True(t, cfg.Admin.Enabled)
	assert.Equal(t, "./uploads", cfg.Data.UploadDir)
	assert.EqualValues(t, 50*1024*1024, cfg.Data.MaxUploadSize)
	assert.Equal(t, 10*time.Second, cfg.Image.FetchTimeout)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ADMIN_ENABLED", "false")
	t.Setenv("MAX_UPLOAD_SIZE", "1048576")
	t.Setenv("IMAGE_FETCH_TIMEOUT", "2s")
	t.Setenv("CATALOG_FILE", "/data/catalog.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.Admin.Enabled)
	assert.EqualValues(t, 1048576, cfg.Data.MaxUploadSize)
	assert.Equal(t, 2*time.Second, cfg.Image.FetchTimeout)
	assert.Equal(t, "/data/catalog.xlsx", cfg.Data.CatalogFile)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "not-a-number")
	t.Setenv("IMAGE_FETCH_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.EqualValues(t, 50*1024*1024, cfg.Data.MaxUploadSize)
	assert.Equal(t, 10*time.Second, cfg.Image.FetchTimeout)
}
