package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "MINDPPT"

type Config struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	APIKey   string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	Server  ServerConfig `yaml:"server" mapstructure:"server"`
	LogMode string       `yaml:"log_mode" mapstructure:"log_mode"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "zhipu",
		Model:    "glm-4-flash",
		Server: ServerConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"*"},
		},
		LogMode: "production",
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindppt"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file at path, or the default location when path is
// empty, and applies MINDPPT_* environment overrides. A missing default file
// is not an error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("provider", d.Provider)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("model", d.Model)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("log_mode", d.LogMode)
}

// Credential returns the API key for the configured provider. The environment
// is consulted on every call so a key exported after startup is picked up.
func (c *Config) Credential() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if p := GetProvider(c.Provider); p != nil {
		for _, name := range p.EnvKeys {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				return v
			}
		}
	}
	return ""
}

// MaskedCredential returns the first characters of the key followed by an
// ellipsis, or "" when no key is set.
func (c *Config) MaskedCredential() string {
	key := c.Credential()
	if key == "" {
		return ""
	}
	if len(key) <= 10 {
		return "***"
	}
	return key[:10] + "..."
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
