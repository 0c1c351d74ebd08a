package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
	Database struct {
		Driver       string
		DSN          string
		Path         string
		MaxOpenConns int
	}
	Pagination struct {
		MaxLimit int
	}
	CORS struct {
		AllowOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables use the MANAGER_ prefix, e.g. MANAGER_DATABASE_DRIVER.
func Load() (Config, error) {
	// .env is optional and never overrides the real environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.path", "data/manager.db")
	v.SetDefault("database.maxopenconns", 10)
	v.SetDefault("pagination.maxlimit", 100)
	v.SetDefault("cors.alloworigins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "sqlite3":
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case "postgres", "postgresql", "pq":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Pagination.MaxLimit < 1 {
		return fmt.Errorf("pagination max limit must be positive")
	}
	return nil
}

// splitList accepts both proper lists and a single comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
