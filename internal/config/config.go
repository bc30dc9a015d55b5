package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		MinScore     int `yaml:"min_score"`
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"search"`

	Auth struct {
		TokenTTLHours  int    `yaml:"token_ttl_hours"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"auth"`

	Seed struct {
		ListingsPath string `yaml:"listings_path"`
		OnStart      bool   `yaml:"on_start"`
	} `yaml:"seed"`

	Stats struct {
		BroadcastSeconds int `yaml:"broadcast_seconds"`
	} `yaml:"stats"`

	RateLimit struct {
		PerSecond float64 `yaml:"per_second"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
