// Package config provides typed configuration loading for the lunch bot.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure for the bot.
type Config struct {
	IRC         IRCConfig          `yaml:"irc"`
	Fetch       FetchConfig        `yaml:"fetch"`
	Limits      LimitsConfig       `yaml:"limits"`
	Debug       bool               `yaml:"debug"`
	Restaurants []RestaurantConfig `yaml:"restaurants"`
}

// IRCConfig contains connection settings. The bot nickname is fixed and
// deliberately not configurable.
type IRCConfig struct {
	Server  string `yaml:"server"`
	Port    int    `yaml:"port"`
	Channel string `yaml:"channel"`
	SSL     bool   `yaml:"ssl"`
}

// Addr returns the dialable server address.
func (c *IRCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

// FetchConfig contains web-fetch settings.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}

// LimitsConfig contains abuse-protection limits.
type LimitsConfig struct {
	// CommandsPerMinute caps how many commands a single nick may issue
	// within one minute. Commands over the limit are silently dropped.
	CommandsPerMinute int `yaml:"commands_per_minute"`
}

// RestaurantConfig describes one restaurant and its fallback sources.
type RestaurantConfig struct {
	Name    string         `yaml:"name"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one place a restaurant's menu may be published.
type SourceConfig struct {
	URL string `yaml:"url"`
	// Strategy is one of "date", "weekday" or "week_url". For "week_url"
	// the URL is a template with one %d verb for the ISO week number and
	// no page is fetched at all.
	Strategy string `yaml:"strategy"`
}

var validStrategies = map[string]bool{
	"date":     true,
	"weekday":  true,
	"week_url": true,
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration used when no config file is
// given: stock connection settings and the stock restaurant table.
func Default() *Config {
	cfg := &Config{Restaurants: DefaultRestaurants()}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultRestaurants is the built-in restaurant table.
func DefaultRestaurants() []RestaurantConfig {
	return []RestaurantConfig{
		{
			Name: "Luomumamas",
			Sources: []SourceConfig{
				{URL: "http://www.sisdeli.fi/weegee-lounas.php", Strategy: "date"},
				{URL: "http://weegee.fi/fi-FI/Palvelut/Ravintola_ja_catering_/SIS_DeliCafn_lounaslista(21617)", Strategy: "date"},
			},
		},
		{
			Name: "Sumo",
			Sources: []SourceConfig{
				{URL: "http://www.ravintolasumo.fi/lounas.html", Strategy: "weekday"},
			},
		},
		{
			Name: "Ukkohauki",
			Sources: []SourceConfig{
				{URL: "http://www.ravintolaukkohauki.fi/index.php?page=1008&lang=1", Strategy: "date"},
			},
		},
		{
			Name: "Keilaranta",
			Sources: []SourceConfig{
				{URL: "http://www.ravintolakeilaranta.fi/pages/lounaslista.php", Strategy: "weekday"},
			},
		},
		{
			Name: "Blue Peter",
			Sources: []SourceConfig{
				{URL: "http://www.bluepeter.fi/images/lounasvko%d.pdf", Strategy: "week_url"},
			},
		},
	}
}

// expandEnvVars expands ${VAR} and ${VAR:default} patterns in the config.
func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		envVar := parts[1]
		defaultVal := ""
		if len(parts) > 2 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(envVar); val != "" {
			return val
		}
		return defaultVal
	})
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.IRC.Server == "" {
		c.IRC.Server = "irc.gnome.org"
	}
	if c.IRC.Port == 0 {
		c.IRC.Port = 6667
	}
	if c.IRC.Channel == "" {
		c.IRC.Channel = "#lunchbottest"
	}

	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 20
	}

	if c.Limits.CommandsPerMinute == 0 {
		c.Limits.CommandsPerMinute = 4
	}
}

// validate checks that required fields are set and consistent.
func (c *Config) validate() error {
	if !strings.HasPrefix(c.IRC.Channel, "#") {
		return fmt.Errorf("irc.channel must start with '#'")
	}
	if c.IRC.Port < 1 || c.IRC.Port > 65535 {
		return fmt.Errorf("irc.port must be between 1 and 65535")
	}
	for i, r := range c.Restaurants {
		if r.Name == "" {
			return fmt.Errorf("restaurants[%d].name is required", i)
		}
		if len(r.Sources) == 0 {
			return fmt.Errorf("restaurant %q has no sources", r.Name)
		}
		for j, s := range r.Sources {
			if s.URL == "" {
				return fmt.Errorf("restaurant %q source %d has no url", r.Name, j)
			}
			if !validStrategies[strings.ToLower(s.Strategy)] {
				return fmt.Errorf("restaurant %q source %d has unknown strategy %q", r.Name, j, s.Strategy)
			}
		}
	}
	return nil
}
