package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            int
	DataDir         string
	SessionSecret   string
	SessionMaxAge   int
	SecureCookies   bool
	DefaultAdmin    string
	DefaultPassword string
	// Shell overrides the interpreter used to run netstat and taskkill,
	// e.g. "cmd /C" or "powershell -Command".
	Shell          string
	CommandTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:            getEnvInt("WINCMD_PORT", 8090),
		DataDir:         getEnvString("WINCMD_DATA_DIR", "./data"),
		SessionSecret:   getEnvString("WINCMD_SESSION_SECRET", "change-me-in-production-32bytes!"),
		SessionMaxAge:   getEnvInt("WINCMD_SESSION_MAX_AGE", 86400), // 24 hours
		SecureCookies:   getEnvBool("WINCMD_SECURE_COOKIES", false),
		DefaultAdmin:    getEnvString("WINCMD_DEFAULT_ADMIN", "admin"),
		DefaultPassword: getEnvString("WINCMD_DEFAULT_PASSWORD", "admin"),
		Shell:           getEnvString("WINCMD_SHELL", ""),
		CommandTimeout:  getEnvDuration("WINCMD_COMMAND_TIMEOUT", 30*time.Second),
	}

	os.MkdirAll(cfg.DataDir, 0755)

	return cfg
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
