package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Registry RegistryConfig `mapstructure:"registry"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type StorageConfig struct {
	BadgerPath string `mapstructure:"badger_path"`
	InMemory   bool   `mapstructure:"in_memory"`
}

// RegistryConfig aponta para o registo de empresas. Sem DSN usa-se o diretório em memória.
type RegistryConfig struct {
	PostgresDSN string `mapstructure:"postgres_dsn"`
	// SeedFile é um JSON com empresas e membros para o diretório em memória.
	SeedFile string `mapstructure:"seed_file"`
}

type RulesConfig struct {
	Version string `mapstructure:"version"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("storage.badger_path", "./data/badger")
	v.SetDefault("storage.in_memory", false)
	v.SetDefault("registry.postgres_dsn", "")
	v.SetDefault("registry.seed_file", "")
	v.SetDefault("rules.version", "v1")
	v.SetDefault("log.level", "info")
}

// Load lê o ficheiro em path (opcional) e as variáveis BSPAOH_*.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BSPAOH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.HTTP.Port)
	}
	if !c.Storage.InMemory && c.Storage.BadgerPath == "" {
		return errors.New("storage.badger_path is required unless storage.in_memory is set")
	}
	if c.Rules.Version == "" {
		return errors.New("rules.version is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return nil
}
