// Package config loads settings from ~/.tenderlogic/config.toml, a .env file
// and TL_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "TL"

	KeyStoreDriver        = "store.driver"
	KeyStorePath          = "store.path"
	KeyOracleProvider     = "oracle.provider"
	KeyOracleModel        = "oracle.model"
	KeyOracleVisualModel  = "oracle.visual_model"
	KeyOracleBaseURL      = "oracle.base_url"
	KeyExtractionMaxChars = "extraction.max_chars"
	KeyProgressInterval   = "progress.interval"
	KeyQuotaProCeiling    = "quota.pro_ceiling"
	KeyLogLevel           = "log.level"
	KeySecretsDir         = "secrets.dir"
	KeyWatchDebounce      = "watch.debounce"
	KeyAccount            = "account"
	KeyMetricsFile        = "metrics.file"

	DriverTOML   = "toml"
	DriverSQLite = "sqlite"

	configDirName  = ".tenderlogic"
	configFileName = "config"
)

// Load builds the configuration rooted at dir. An empty dir means
// ~/.tenderlogic. Missing config and .env files are not errors.
func Load(dir string, envFile string) (*viper.Viper, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, configDirName)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyStoreDriver, DriverTOML)
	v.SetDefault(KeyOracleProvider, "gemini")
	v.SetDefault(KeyExtractionMaxChars, 100_000)
	v.SetDefault(KeyProgressInterval, 2*time.Second)
	v.SetDefault(KeyQuotaProCeiling, domain.DefaultQuotaPolicy().ProCeiling)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeyWatchDebounce, 500*time.Millisecond)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := validate(v); err != nil {
		return nil, err
	}

	return v, nil
}

func validate(v *viper.Viper) error {
	switch driver := v.GetString(KeyStoreDriver); driver {
	case DriverTOML, DriverSQLite:
	default:
		return fmt.Errorf("unsupported %s %q", KeyStoreDriver, driver)
	}
	if v.GetInt(KeyExtractionMaxChars) <= 0 {
		return fmt.Errorf("%s must be positive", KeyExtractionMaxChars)
	}
	if v.GetInt(KeyQuotaProCeiling) <= 0 {
		return fmt.Errorf("%s must be positive", KeyQuotaProCeiling)
	}
	if _, err := parseLevel(v.GetString(KeyLogLevel)); err != nil {
		return err
	}

	return nil
}

func QuotaPolicy(v *viper.Viper) domain.QuotaPolicy {
	return domain.QuotaPolicy{ProCeiling: v.GetInt(KeyQuotaProCeiling)}
}

// Logger returns a text logger writing to w at the configured level.
func Logger(v *viper.Viper, w io.Writer) *slog.Logger {
	level, err := parseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("unsupported %s %q", KeyLogLevel, raw)
	}

	return level, nil
}
