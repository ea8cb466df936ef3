package viper_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/bfscrawl"
	bfsviper "github.com/fwojciec/bfscrawl/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProperties = `# crawler settings
OUTPUT_FILE=out/crawl.txt
MAX_URLS_TO_VISIT=50
MAX_URLS_TO_EXTRACT=500
SEED_URL=http://www.example.com/
HTTP_CONNECTION_TIMEOUT=3000
ALLOWED_DOMAINS=example.com,example.org
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads properties file", func(t *testing.T) {
		cfg, err := bfsviper.Load(writeFile(t, "crawler.properties", sampleProperties))
		require.NoError(t, err)

		assert.Equal(t, "out/crawl.txt", cfg.OutputFile)
		assert.Equal(t, 50, cfg.MaxURLsToVisit)
		assert.Equal(t, 500, cfg.MaxURLsToExtract)
		assert.Equal(t, "http://www.example.com/", cfg.SeedURL)
		assert.Equal(t, 3000, cfg.HTTPConnectionTimeout)
		assert.Equal(t, []string{"example.com", "example.org"}, cfg.Domains())
		require.NoError(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := bfsviper.Load(writeFile(t, "crawler.properties", sampleProperties))
		require.NoError(t, err)

		assert.Equal(t, bfscrawl.DefaultUserAgent, cfg.UserAgent)
		assert.Equal(t, bfscrawl.MatchSubstring, cfg.ExclusionMatching)
		assert.Equal(t, 1, cfg.Concurrency)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.OutputDB)
	})

	t.Run("accepts misspelled visit key", func(t *testing.T) {
		cfg, err := bfsviper.Load(writeFile(t, "crawler.properties", "MAX_URLS_TO_VIST=7\n"))
		require.NoError(t, err)

		assert.Equal(t, 7, cfg.MaxURLsToVisit)
	})

	t.Run("correct visit key wins over misspelled one", func(t *testing.T) {
		cfg, err := bfsviper.Load(writeFile(t, "crawler.properties", "MAX_URLS_TO_VIST=7\nMAX_URLS_TO_VISIT=9\n"))
		require.NoError(t, err)

		assert.Equal(t, 9, cfg.MaxURLsToVisit)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("BFSCRAWL_MAX_URLS_TO_VISIT", "3")
		t.Setenv("BFSCRAWL_ALLOWED_DOMAINS", "example.net")
		t.Setenv("BFSCRAWL_CONCURRENCY", "4")

		cfg, err := bfsviper.Load(writeFile(t, "crawler.properties", sampleProperties))
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.MaxURLsToVisit)
		assert.Equal(t, []string{"example.net"}, cfg.Domains())
		assert.Equal(t, 4, cfg.Concurrency)
	})

	t.Run("reads yaml by extension", func(t *testing.T) {
		cfg, err := bfsviper.Load(writeFile(t, "crawler.yaml", "seed_url: http://example.com/\nallowed_domains:\n  - example.com\nconcurrency: 2\n"))
		require.NoError(t, err)

		assert.Equal(t, "http://example.com/", cfg.SeedURL)
		assert.Equal(t, []string{"example.com"}, cfg.Domains())
		assert.Equal(t, 2, cfg.Concurrency)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := bfsviper.Load(filepath.Join(t.TempDir(), "missing.properties"))

		require.Error(t, err)
		assert.Equal(t, bfscrawl.EINVALID, bfscrawl.ErrorCode(err))
	})

	t.Run("loads without a file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BFSCRAWL_SEED_URL", "http://example.com/")

		cfg, err := bfsviper.Load("")
		require.NoError(t, err)

		assert.Equal(t, "http://example.com/", cfg.SeedURL)
		assert.Equal(t, 10000, cfg.HTTPConnectionTimeout)
	})

	t.Run("falls back to default path", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "resources"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, bfsviper.DefaultConfigPath), []byte(sampleProperties), 0644))
		t.Chdir(dir)

		cfg, err := bfsviper.Load("")
		require.NoError(t, err)

		assert.Equal(t, "http://www.example.com/", cfg.SeedURL)
	})
}
