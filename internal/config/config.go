package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults: TUIO clients conventionally listen on 3333.
const (
	DefaultListenPort = 8080
	DefaultTUIOPort   = 3333
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	TUIO   TUIOConfig   `yaml:"tuio"`
}

// ServerConfig is the inbound WebSocket listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TUIOConfig is the outbound datagram destination.
type TUIOConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: DefaultListenPort,
		},
		TUIO: TUIOConfig{
			Host: "127.0.0.1",
			Port: DefaultTUIOPort,
		},
	}
}

// Load reads the config file at path, applying file values over the
// compiled-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	return cfg, err
}
