package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. Values here are defaults for flags; the
// CLI surface always wins.
type Global struct {
	Encoding    string `mapstructure:"encoding" yaml:"encoding"`
	SampleRows  int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	AssumeOrder string `mapstructure:"assume_order" yaml:"assume_order"`
	NoPrompt    bool   `mapstructure:"no_prompt" yaml:"no_prompt"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datefix", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.datefix/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (handled by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATEFIX")
	v.AutomaticEnv()

	v.SetDefault("encoding", "utf-8")
	v.SetDefault("sample_rows", 200)
	v.SetDefault("assume_order", "")
	v.SetDefault("no_prompt", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
