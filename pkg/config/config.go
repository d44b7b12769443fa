package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Remote    RemoteConfig
	Redis     RedisConfig
	Directory DirectoryConfig
	Exports   ExportsConfig
	State     StateConfig
	CORS      CORSConfig
	Log       LogConfig
}

// RemoteConfig points at the upstream schedule/event service.
type RemoteConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// DirectoryConfig tunes the owner directory cache and refresh job.
type DirectoryConfig struct {
	CacheTTL    time.Duration
	RefreshCron string
}

// ExportsConfig controls where export payloads are delivered on disk.
type ExportsConfig struct {
	StorageDir string
	CleanupTTL time.Duration
}

// StateConfig is where durable state files live. Kept apart from the
// exports directory so export cleanup never touches them.
type StateConfig struct {
	Dir string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Remote = RemoteConfig{
		BaseURL: strings.TrimRight(v.GetString("REMOTE_BASE_URL"), "/"),
		Token:   v.GetString("REMOTE_TOKEN"),
		Timeout: parseDuration(v.GetString("REMOTE_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Directory = DirectoryConfig{
		CacheTTL:    parseDuration(v.GetString("DIRECTORY_CACHE_TTL"), 5*time.Minute),
		RefreshCron: v.GetString("DIRECTORY_REFRESH_CRON"),
	}

	cfg.Exports = ExportsConfig{
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
		CleanupTTL: parseDuration(v.GetString("EXPORTS_CLEANUP_TTL"), 24*time.Hour),
	}

	cfg.State = StateConfig{Dir: v.GetString("STATE_DIR")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REMOTE_BASE_URL", "http://localhost:8000")
	v.SetDefault("REMOTE_TOKEN", "")
	v.SetDefault("REMOTE_TIMEOUT", "15s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DIRECTORY_CACHE_TTL", "5m")
	v.SetDefault("DIRECTORY_REFRESH_CRON", "")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_CLEANUP_TTL", "24h")
	v.SetDefault("STATE_DIR", "./data")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
