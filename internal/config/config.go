package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/notexe/remind/internal/storage"
)

// Notification provider names.
const (
	ProviderRelay    = "relay"
	ProviderTemplate = "template"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Config struct {
	Storage  StorageConfig  `koanf:"storage"`
	Features FeaturesConfig `koanf:"features"`
	Notify   NotifyConfig   `koanf:"notify"`
	Relay    RelayConfig    `koanf:"relay"`
	UI       UIConfig       `koanf:"ui"`
}

type StorageConfig struct {
	Backend string      `koanf:"backend"` // sqlite or redis
	Path    string      `koanf:"path"`    // sqlite database file
	Redis   RedisConfig `koanf:"redis"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// FeaturesConfig toggles the optional subsystems. All of them default on;
// a disabled feature is skipped everywhere rather than forked into a
// separate code path.
type FeaturesConfig struct {
	Tagging      bool `koanf:"tagging"`
	History      bool `koanf:"history"`
	Recurrence   bool `koanf:"recurrence"`
	Notification bool `koanf:"notification"`
}

type NotifyConfig struct {
	Provider string         `koanf:"provider"` // relay or template
	RelayURL string         `koanf:"relay_url"`
	FromName string         `koanf:"from_name"`
	Template TemplateConfig `koanf:"template"`
}

// TemplateConfig identifies the hosted template-email service
// (service/template identifier pair plus the account's public key).
type TemplateConfig struct {
	Endpoint   string `koanf:"endpoint"`
	ServiceID  string `koanf:"service_id"`
	TemplateID string `koanf:"template_id"`
	UserID     string `koanf:"user_id"`
}

type RelayConfig struct {
	ListenAddr string     `koanf:"listen_addr"`
	SMTP       SMTPConfig `koanf:"smtp"`
}

type SMTPConfig struct {
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	Username    string `koanf:"username"`
	Password    string `koanf:"password"`
	From        string `koanf:"from"`
	PreviewBase string `koanf:"preview_base"`
}

type UIConfig struct {
	Theme         string `koanf:"theme"` // light or dark
	ColoredOutput bool   `koanf:"colored_output"`
}

// Load reads configuration: defaults, then the YAML file at configPath
// (if it exists), then REMIND_-prefixed environment variables
// (REMIND_STORAGE_BACKEND=redis overrides storage.backend).
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("REMIND_", ".", envKeyToPath), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite backend")
		}
	case storage.BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s (supported: %s, %s)",
			c.Storage.Backend, storage.BackendSQLite, storage.BackendRedis)
	}

	switch c.Notify.Provider {
	case ProviderRelay:
		if c.Notify.RelayURL == "" {
			return fmt.Errorf("notify.relay_url is required for the relay provider")
		}
	case ProviderTemplate:
		if c.Notify.Template.ServiceID == "" || c.Notify.Template.TemplateID == "" {
			return fmt.Errorf("notify.template.service_id and template_id are required for the template provider")
		}
	default:
		return fmt.Errorf("unknown notify provider: %s (supported: %s, %s)",
			c.Notify.Provider, ProviderRelay, ProviderTemplate)
	}

	switch c.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("unknown theme: %s (supported: %s, %s)", c.UI.Theme, ThemeLight, ThemeDark)
	}

	return nil
}

// StorageOptions maps the storage section onto the storage package
// options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:  c.Storage.Backend,
		Path:     c.Storage.Path,
		Addr:     c.Storage.Redis.Addr,
		Password: c.Storage.Redis.Password,
		DB:       c.Storage.Redis.DB,
	}
}

// envKeyToPath turns REMIND_STORAGE_REDIS_ADDR into storage.redis.addr.
// Underscore-joined leaf names (relay_url, listen_addr, ...) cannot be
// distinguished from nesting, so known compounds are patched afterwards.
func envKeyToPath(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "REMIND_"))
	s = strings.ReplaceAll(s, "_", ".")
	for dotted, flat := range compoundKeys {
		s = strings.ReplaceAll(s, dotted, flat)
	}
	return s
}

var compoundKeys = map[string]string{
	"relay.url":      "relay_url",
	"from.name":      "from_name",
	"service.id":     "service_id",
	"template.id":    "template_id",
	"user.id":        "user_id",
	"listen.addr":    "listen_addr",
	"preview.base":   "preview_base",
	"colored.output": "colored_output",
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
