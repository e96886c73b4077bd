// Package config loads pdaboat settings from an optional YAML file overlaid by PDABOAT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// EnvPrefix prefixes every environment override, e.g. PDABOAT_STORE_BACKEND.
const EnvPrefix = "PDABOAT_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	DefaultTemplate string `mapstructure:"default_template" yaml:"default_template"`
	Mode            string `mapstructure:"mode" yaml:"mode"`
	Pace            Pace   `mapstructure:"pace" yaml:"pace"`
	QuizPolicy      string `mapstructure:"quiz_policy" yaml:"quiz_policy"`
	Server          Server `mapstructure:"server" yaml:"server"`
	Store           Store  `mapstructure:"store" yaml:"store"`
	Log             Log    `mapstructure:"log" yaml:"log"`
}

// Pace is the delay between two played steps, per mode.
type Pace struct {
	Micro time.Duration `mapstructure:"micro" yaml:"micro"`
	Batch time.Duration `mapstructure:"batch" yaml:"batch"`
}

type Server struct {
	Port int `mapstructure:"port" yaml:"port"`
}

type Store struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	Redis   Redis  `mapstructure:"redis" yaml:"redis"`
}

type Redis struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// keys lists every dotted key that may be overridden from the environment.
var keys = []string{
	"default_template",
	"mode",
	"pace.micro",
	"pace.batch",
	"quiz_policy",
	"server.port",
	"store.backend",
	"store.path",
	"store.redis.addr",
	"store.redis.password",
	"store.redis.db",
	"store.redis.prefix",
	"store.redis.ttl",
	"log.level",
	"log.file",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultTemplate: "anbn",
		Mode:            string(domain.ModeMicro),
		Pace: Pace{
			Micro: 600 * time.Millisecond,
			Batch: 300 * time.Millisecond,
		},
		QuizPolicy: "index > 0 && index % 3 == 0",
		Server:     Server{Port: 8080},
		Store: Store{
			Backend: BackendMemory,
			Path:    ".pdaboat/sessions",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "pdaboat:",
			},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path (if not empty and present), applies environment overrides and validates
// the result. A missing file is not an error.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		}
	}

	for _, key := range keys {
		env := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if v, ok := lookup(env); ok {
			set(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// set writes value at the nested path, creating intermediate maps.
func set(m map[string]any, path []string, value string) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := domain.ParseMode(c.Mode); err != nil {
		return err
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("invalid store backend %q (expected memory, file or redis)", c.Store.Backend)
	}
	if c.Pace.Micro < 0 || c.Pace.Batch < 0 {
		return fmt.Errorf("pace must not be negative")
	}
	return nil
}

// PaceFor returns the configured delay for mode.
func (c Config) PaceFor(mode domain.Mode) time.Duration {
	if mode == domain.ModeBatch {
		return c.Pace.Batch
	}
	return c.Pace.Micro
}
