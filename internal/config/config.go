package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/gnomegl/gitcards/internal/card"
	"github.com/gnomegl/gitcards/internal/github"
	"github.com/gnomegl/gitcards/internal/utils"
	"github.com/urfave/cli/v2"
)

const (
	DefaultAddr         = ":8080"
	DefaultCacheSeconds = 3600
)

type AppConfig struct {
	Server ServerConfig `toml:"server"`
	GitHub GitHubConfig `toml:"github"`
	Card   CardConfig   `toml:"card"`

	Debug bool `toml:"-"`
	// ShowProgress draws pagination spinners on stderr.
	ShowProgress bool `toml:"-"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	CacheSeconds int    `toml:"cache_seconds"`
	Metrics      bool   `toml:"metrics"`
	// Timezone picks the calendar day used as "today" for streaks.
	Timezone string `toml:"timezone"`
}

type GitHubConfig struct {
	Token             string  `toml:"token"`
	TokenFile         string  `toml:"token_file"`
	ProxyFile         string  `toml:"proxy_file"`
	Username          string  `toml:"username"`
	APIURL            string  `toml:"api_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	MaxPages          int     `toml:"max_pages"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

type CardConfig struct {
	Theme string `toml:"theme"`
}

func DefaultConfig() *AppConfig {
	gh := github.DefaultConfig()
	return &AppConfig{
		Server: ServerConfig{
			Addr:         DefaultAddr,
			CacheSeconds: DefaultCacheSeconds,
			Metrics:      true,
			Timezone:     "UTC",
		},
		GitHub: GitHubConfig{
			APIURL:            gh.APIURL,
			RequestsPerSecond: gh.RequestsPerSecond,
			MaxPages:          gh.MaxPages,
			TimeoutSeconds:    int(gh.Timeout / time.Second),
		},
		Card: CardConfig{
			Theme: card.DefaultTheme,
		},
	}
}

// DefaultPath is config.toml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gitcards", "config.toml")
}

// Load decodes path over the defaults. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.Server.CacheSeconds < 0 {
		return fmt.Errorf("server.cache_seconds must not be negative")
	}
	if c.GitHub.RequestsPerSecond < 0 {
		return fmt.Errorf("github.requests_per_second must not be negative")
	}
	if c.GitHub.MaxPages < 0 {
		return fmt.Errorf("github.max_pages must not be negative")
	}
	if c.Card.Theme != "" && !card.HasTheme(c.Card.Theme) {
		return fmt.Errorf("unknown theme %q", c.Card.Theme)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ParseConfig layers flags and environment over the config file over the
// defaults. A token saved by a previous run is used when none is given.
func ParseConfig(c *cli.Context) (*AppConfig, error) {
	path := c.String("config")
	if path == "" {
		path = DefaultPath()
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := c.String("token"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := c.String("user"); v != "" {
		cfg.GitHub.Username = v
	}
	if v := c.String("token-file"); v != "" {
		cfg.GitHub.TokenFile = v
	}
	if v := c.String("proxy-file"); v != "" {
		cfg.GitHub.ProxyFile = v
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("theme") {
		cfg.Card.Theme = c.String("theme")
	}
	cfg.Debug = c.Bool("debug")

	if cfg.GitHub.Token == "" && cfg.GitHub.TokenFile == "" {
		cfg.GitHub.Token = github.LoadSavedToken()
	}

	return cfg, cfg.Validate()
}

// Tokens merges the single token with any read from the token file.
func (c *AppConfig) Tokens() ([]string, error) {
	var tokens []string
	if t := strings.TrimSpace(c.GitHub.Token); t != "" {
		tokens = append(tokens, t)
	}
	if c.GitHub.TokenFile != "" {
		more, err := github.ReadTokenFile(c.GitHub.TokenFile)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, more...)
	}
	return tokens, nil
}

func (c *AppConfig) Proxies() ([]string, error) {
	if c.GitHub.ProxyFile == "" {
		return nil, nil
	}
	return github.ReadProxyFile(c.GitHub.ProxyFile)
}

func (c *AppConfig) ClientConfig() github.Config {
	cfg := github.DefaultConfig()
	if c.GitHub.APIURL != "" {
		cfg.APIURL = c.GitHub.APIURL
	}
	cfg.RequestsPerSecond = c.GitHub.RequestsPerSecond
	cfg.MaxPages = c.GitHub.MaxPages
	if c.GitHub.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.GitHub.TimeoutSeconds) * time.Second
	}
	cfg.UserAgent = "gitcards/" + utils.GetVersion()
	cfg.ShowProgress = c.ShowProgress
	return cfg
}

func (c *AppConfig) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}
