package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv         = "dev"
	defaultDBPath         = "./dev.db"
	defaultPort           = "8080"
	defaultMigrationsDir  = "migrations"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 10 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv         string
	DBPath         string
	Port           string
	MigrationsDir  string
	LogLevel       string
	RequestTimeout time.Duration
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. Variables already present in
// the environment win over the file.
func LoadFrom(envFile string) Config {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("could not read dotenv file")
	}

	v := viper.New()
	v.SetDefault("app_env", defaultAppEnv)
	v.SetDefault("db_path", defaultDBPath)
	v.SetDefault("port", defaultPort)
	v.SetDefault("migrations_dir", defaultMigrationsDir)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.AutomaticEnv()

	cfg := Config{
		AppEnv:         v.GetString("app_env"),
		DBPath:         v.GetString("db_path"),
		Port:           v.GetString("port"),
		MigrationsDir:  v.GetString("migrations_dir"),
		LogLevel:       v.GetString("log_level"),
		RequestTimeout: v.GetDuration("request_timeout"),
	}

	// Empty variables count as unset.
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}
	if cfg.RequestTimeout <= 0 {
		log.Warnf("REQUEST_TIMEOUT must be positive, using %s", defaultRequestTimeout)
		cfg.RequestTimeout = defaultRequestTimeout
	}

	return cfg
}
