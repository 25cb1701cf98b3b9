// Package config loads nojs-views settings from defaults, an optional config
// file, NOJS_VIEWS_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "nojs-views"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "nojs-views"
	// EnvPrefix prefixes environment overrides, e.g. NOJS_VIEWS_INPUT.
	EnvPrefix = "NOJS_VIEWS"
)

// Config holds the resolved input and output locations of a run. Output
// sub-directories are absolute or relative to the working directory.
type Config struct {
	Input       string
	Output      string
	Views       string
	Components  string
	Meta        string
	Layout      string
	Controllers string
	Public      string
	Verbose     bool
}

// DefaultConfig returns the defaults; sub-directories are relative to Output.
func DefaultConfig() Config {
	return Config{
		Input:       ".",
		Output:      "build",
		Views:       "src/views",
		Components:  "src/components",
		Meta:        "src/meta",
		Layout:      "src/layout",
		Controllers: "src/controllers",
		Public:      "public",
	}
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("input", d.Input)
	v.SetDefault("output", d.Output)
	v.SetDefault("views", d.Views)
	v.SetDefault("components", d.Components)
	v.SetDefault("meta", d.Meta)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("controllers", d.Controllers)
	v.SetDefault("public", d.Public)
	v.SetDefault("verbose", d.Verbose)
}

// Load reads configuration into v and resolves it. When configFile is empty
// a nojs-views.{yaml,toml,json} in the working directory is used if present.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Config{
		Input:       v.GetString("input"),
		Output:      v.GetString("output"),
		Views:       v.GetString("views"),
		Components:  v.GetString("components"),
		Meta:        v.GetString("meta"),
		Layout:      v.GetString("layout"),
		Controllers: v.GetString("controllers"),
		Public:      v.GetString("public"),
		Verbose:     v.GetBool("verbose"),
	}
	if cfg.Input == "" {
		return Config{}, errors.New("input directory must not be empty")
	}
	return cfg.resolve(), nil
}

// resolve anchors relative output sub-directories under Output.
func (c Config) resolve() Config {
	under := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(c.Output, p)
	}
	c.Views = under(c.Views)
	c.Components = under(c.Components)
	c.Meta = under(c.Meta)
	c.Layout = under(c.Layout)
	c.Controllers = under(c.Controllers)
	c.Public = under(c.Public)
	return c
}
