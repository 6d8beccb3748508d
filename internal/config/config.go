package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	fileName  = "rgen"
	fileType  = "yaml"
	envPrefix = "RGEN"
)

// Keys understood in rgen.yaml and as RGEN_* environment variables.
const (
	KeyTemplatesDir   = "templates.dir"
	KeyInstallCommand = "install.command"
	KeyViteConfig     = "vite.config"
	KeyDevPort        = "dev.port"
	KeyPreviewPort    = "preview.port"
	KeyMinify         = "build.minify"
	KeyAssetsDir      = "build.assets"
)

// Default ports used when neither the config nor vite.config.js set one.
const (
	DefaultDevPort     = 3001
	DefaultPreviewPort = 3201
)

// Config holds the resolved settings for one invocation.
type Config struct {
	// TemplatesDir replaces the bundled templates when set.
	TemplatesDir   string
	InstallCommand string
	ViteConfig     string
	// DevPort and PreviewPort are 0 unless set explicitly.
	DevPort     int
	PreviewPort int
	Minify      bool
	AssetsDir   string
	// File is the config file that was read, empty if none.
	File string
}

// Load reads configuration from, highest first: RGEN_* environment
// variables, the config file, defaults. configFile overrides the lookup of
// rgen.yaml in dir; a missing rgen.yaml is not an error, a missing
// configFile is.
func Load(dir, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyInstallCommand, "npm install")
	v.SetDefault(KeyViteConfig, "vite.config.js")
	v.SetDefault(KeyMinify, true)
	v.SetDefault(KeyAssetsDir, "dist/assets")
	v.SetDefault(KeyTemplatesDir, "")
	v.SetDefault(KeyDevPort, 0)
	v.SetDefault(KeyPreviewPort, 0)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType(fileType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		TemplatesDir:   v.GetString(KeyTemplatesDir),
		InstallCommand: v.GetString(KeyInstallCommand),
		ViteConfig:     v.GetString(KeyViteConfig),
		DevPort:        v.GetInt(KeyDevPort),
		PreviewPort:    v.GetInt(KeyPreviewPort),
		Minify:         v.GetBool(KeyMinify),
		AssetsDir:      v.GetString(KeyAssetsDir),
		File:           v.ConfigFileUsed(),
	}

	if cfg.DevPort < 0 || cfg.PreviewPort < 0 {
		return nil, fmt.Errorf("invalid port in config: dev=%d preview=%d", cfg.DevPort, cfg.PreviewPort)
	}

	return cfg, nil
}
