package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	applog "fruitstand/internal/log"
)

const (
	KeyPort         = "port"
	KeyDatabaseURL  = "database_url"
	KeyDatabaseName = "database_name"
	KeyDBTimeout    = "db_timeout"
	KeyErrorMode    = "error_mode"
	KeyStaticDir    = "static_dir"
	KeyLogFile      = "log_file"
)

var keys = []string{KeyPort, KeyDatabaseURL, KeyDatabaseName, KeyDBTimeout, KeyErrorMode, KeyStaticDir, KeyLogFile}

const (
	ErrorModeLenient = "lenient"
	ErrorModeStrict  = "strict"
)

type Config struct {
	Port         string
	DatabaseURL  string
	DatabaseName string
	DBTimeout    time.Duration
	ErrorMode    string
	StaticDir    string
	LogFile      string
}

// New returns a viper instance with defaults, environment binding and an
// optional .env file from envDir. Flags named after a key with dashes
// (database-url for database_url) take precedence when set.
func New(envDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyDatabaseURL, "mongodb://localhost:27017/fruitstand")
	v.SetDefault(KeyDatabaseName, "fruitstand")
	v.SetDefault(KeyDBTimeout, "5s")
	v.SetDefault(KeyErrorMode, ErrorModeLenient)
	v.SetDefault(KeyStaticDir, "")
	v.SetDefault(KeyLogFile, "")
	v.AutomaticEnv()

	if envDir != "" {
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(envDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read .env: %w", err)
			}
		}
	}

	if flags != nil {
		for _, key := range keys {
			f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:         v.GetString(KeyPort),
		DatabaseURL:  v.GetString(KeyDatabaseURL),
		DatabaseName: v.GetString(KeyDatabaseName),
		DBTimeout:    v.GetDuration(KeyDBTimeout),
		ErrorMode:    v.GetString(KeyErrorMode),
		StaticDir:    v.GetString(KeyStaticDir),
		LogFile:      v.GetString(KeyLogFile),
	}
	if cfg.ErrorMode != ErrorModeLenient && cfg.ErrorMode != ErrorModeStrict {
		return Config{}, fmt.Errorf("error_mode must be %q or %q, got %q", ErrorModeLenient, ErrorModeStrict, cfg.ErrorMode)
	}
	if cfg.DBTimeout <= 0 {
		return Config{}, fmt.Errorf("db_timeout must be positive, got %s", cfg.DBTimeout)
	}
	applog.Event("config.load", nil, map[string]any{
		"port": cfg.Port, "db_timeout": cfg.DBTimeout.String(), "error_mode": cfg.ErrorMode,
		"static_dir": cfg.StaticDir, "log_file": cfg.LogFile,
	})
	return cfg, nil
}
