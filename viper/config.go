// Package viper loads crawler configuration from a properties file and the
// environment.
package viper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bfscrawl"
	"github.com/spf13/viper"
)

// DefaultConfigPath is read when no config file is given and it exists.
const DefaultConfigPath = "resources/crawler.properties"

// EnvPrefix prefixes environment overrides, e.g. BFSCRAWL_SEED_URL.
const EnvPrefix = "BFSCRAWL"

// legacyMaxVisitKey is a misspelling accepted for max_urls_to_visit.
const legacyMaxVisitKey = "max_urls_to_vist"

// Load builds a Config from defaults, the file at path and the environment,
// in increasing order of precedence. An empty path falls back to
// DefaultConfigPath when that file exists. Files ending in .properties are
// read as KEY=VALUE lines; other extensions use viper's usual formats.
//
// The result is not validated; callers apply overrides first.
func Load(path string) (*bfscrawl.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".properties", "":
			v.SetConfigType("env")
		}
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, bfscrawl.Errorf(bfscrawl.EINVALID, "config file not found: %s", path)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if v.InConfig(legacyMaxVisitKey) && !v.InConfig("max_urls_to_visit") {
		v.SetDefault("max_urls_to_visit", v.Get(legacyMaxVisitKey))
	}

	var cfg bfscrawl.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_file", "")
	v.SetDefault("max_urls_to_visit", 0)
	v.SetDefault("max_urls_to_extract", 0)
	v.SetDefault("seed_url", "")
	v.SetDefault("http_connection_timeout", 10000)
	v.SetDefault("allowed_domains", []string{})
	v.SetDefault("user_agent", bfscrawl.DefaultUserAgent)
	v.SetDefault("exclusion_matching", bfscrawl.MatchSubstring)
	v.SetDefault("concurrency", 1)
	v.SetDefault("output_db", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
}
