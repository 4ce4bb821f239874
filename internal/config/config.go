package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for dealwise.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Extract ExtractConfig `toml:"extract"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type ExtractConfig struct {
	// MaxMarkupBytes caps how much of an oversized page is scanned.
	// Zero disables the cap.
	MaxMarkupBytes int `toml:"max_markup_bytes"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server:  ServerConfig{Host: "localhost", Port: 8080},
		Extract: ExtractConfig{MaxMarkupBytes: 4 << 20},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
