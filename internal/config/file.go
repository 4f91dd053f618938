package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const configFileVar = "FRONTDESK_CONFIG"

// fileValues mirrors the optional YAML config file. Zero values mean
// "not set" and fall through to the defaults.
type fileValues struct {
	AppName        string `yaml:"app_name"`
	BaseURL        string `yaml:"base_url"`
	RequestTimeout string `yaml:"request_timeout"`
	PageSize       int    `yaml:"page_size"`
	TokenTTL       string `yaml:"token_ttl"`
	StorePath      string `yaml:"store_path"`
	LogLevel       string `yaml:"log_level"`
}

func loadFile() fileValues {
	path := os.Getenv(configFileVar)
	if path == "" {
		return fileValues{}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config file %s unreadable, using defaults: %v\n", path, err)
		return fileValues{}
	}

	var values fileValues
	if err := yaml.Unmarshal(raw, &values); err != nil {
		log.Printf("config file %s unparseable, using defaults: %v\n", path, err)
		return fileValues{}
	}
	return values
}
