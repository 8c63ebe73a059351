package fs

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultApiHost = "http://localhost:8088"

type Config struct {
	Host string `yaml:"host"`
}

func LoadConfig() (*Config, error) {
	return loadConfigFrom(ConfigPath)
}

func SaveConfig(cfg *Config) error {
	return saveConfigTo(ConfigPath, cfg)
}

// ApiHost resolves the server url: PLANNER_API_HOST, then the config file,
// then the local default.
func ApiHost() string {
	if host := os.Getenv("PLANNER_API_HOST"); host != "" {
		return host
	}

	cfg, err := LoadConfig()
	if err == nil && cfg.Host != "" {
		return cfg.Host
	}

	return DefaultApiHost
}

func loadConfigFrom(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config: %v", err)
	}

	var cfg Config
	err = yaml.Unmarshal(bytes, &cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing config %s: %v", path, err)
	}

	cfg.Host = strings.TrimSpace(cfg.Host)

	return &cfg, nil
}

func saveConfigTo(path string, cfg *Config) error {
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshalling config: %v", err)
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return fmt.Errorf("error writing config: %v", err)
	}

	return nil
}
