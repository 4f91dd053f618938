package config

import "time"

// Config is everything the client needs to come up: where the backend is,
// how to talk to it, and where the session bundle is kept between runs.
type Config interface {
	GetAppName() string
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetPageSize() int
	GetTokenTTL() time.Duration
	GetStorePath() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
}

// New builds the runtime configuration. Values come from an optional YAML
// file named by FRONTDESK_CONFIG, with environment variables taking
// precedence and built-in defaults last.
func New() Config {
	return mainConfig{EnvVars{file: loadFile()}}
}
