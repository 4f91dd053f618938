package config

import (
	"os"
	"strconv"
	"time"
)

const (
	appNameVar   = "FRONTDESK_APP_NAME"
	baseURLVar   = "FRONTDESK_BASE_URL"
	timeoutVar   = "FRONTDESK_REQUEST_TIMEOUT"
	pageSizeVar  = "FRONTDESK_PAGE_SIZE"
	tokenTTLVar  = "FRONTDESK_TOKEN_TTL"
	storePathVar = "FRONTDESK_STORE_PATH"
	logLevelVar  = "FRONTDESK_LOG_LEVEL"
)

type EnvVars struct {
	file fileValues
}

var _ Config = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.stringValue(appNameVar, e.file.AppName, "Front Desk")
}

func (e EnvVars) GetBaseURL() string {
	return e.stringValue(baseURLVar, e.file.BaseURL, "http://localhost:5000")
}

func (e EnvVars) GetRequestTimeout() time.Duration {
	return e.durationValue(timeoutVar, e.file.RequestTimeout, 15*time.Second)
}

func (e EnvVars) GetPageSize() int {
	if v := os.Getenv(pageSizeVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if e.file.PageSize > 0 {
		return e.file.PageSize
	}
	return 10
}

func (e EnvVars) GetTokenTTL() time.Duration {
	return e.durationValue(tokenTTLVar, e.file.TokenTTL, 8*time.Hour)
}

func (e EnvVars) GetStorePath() string {
	return e.stringValue(storePathVar, e.file.StorePath, "./data/frontdesk.db")
}

func (e EnvVars) GetLogLevel() string {
	return e.stringValue(logLevelVar, e.file.LogLevel, "info")
}

func (e EnvVars) stringValue(envVar, fileValue, defaultValue string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func (e EnvVars) durationValue(envVar, fileValue string, defaultValue time.Duration) time.Duration {
	for _, raw := range []string{os.Getenv(envVar), fileValue} {
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
