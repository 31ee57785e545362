package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DataDir     string
	BackupDir   string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string
	TokenDBPath string
	Log         LogConfig
	LoginRate   float64
	LoginBurst  int
	// LockLease is the TTL of the redis table lock. Holders renew it every
	// LockLease/3, so it only matters when a holder dies without unlocking.
	LockLease   time.Duration
	B2          B2Config
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level     slog.Level
	Format    LogFormat
	AddSource bool
}

// LogFormat is the slog output encoding.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// B2Config holds Backblaze B2 credentials for off-site backups. Uploads are
// disabled unless all three are set.
type B2Config struct {
	KeyID  string
	AppKey string
	Bucket string
}

// Enabled reports whether off-site backups are configured.
func (c B2Config) Enabled() bool {
	return c.KeyID != "" && c.AppKey != "" && c.Bucket != ""
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DataDir:     dataDir,
		BackupDir:   getEnv("BACKUP_DIR", "backups"),
		MySQLDSN:    os.Getenv("MYSQL_DSN"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
		TokenDBPath: getEnv("TOKEN_DB_PATH", dataDir+"/tokens.db"),
		Log: LogConfig{
			Level:     parseLevel(getEnv("LOG_LEVEL", "info")),
			Format:    LogFormat(strings.ToLower(getEnv("LOG_FORMAT", string(LogFormatText)))),
			AddSource: getEnvBool("LOG_ADD_SOURCE", false),
		},
		LoginRate:  getEnvFloat("LOGIN_RATE", 1),
		LoginBurst: getEnvInt("LOGIN_BURST", 5),
		LockLease:  getEnvDuration("LOCK_LEASE", 10*time.Second),
		B2: B2Config{
			KeyID:  os.Getenv("B2_KEY_ID"),
			AppKey: os.Getenv("B2_APP_KEY"),
			Bucket: os.Getenv("B2_BUCKET"),
		},
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
