package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Config holds all taskmate configuration.
type Config struct {
	Storage    StorageConfig
	Logger     LoggerConfig
	Categories CategoriesConfig
}

type StorageConfig struct {
	Driver string
	Path   string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type CategoriesConfig struct {
	// DefaultName labels tasks persisted without a category.
	DefaultName string
	// ResetTasksOnFirstCategory clears the task list when the first category is registered.
	ResetTasksOnFirstCategory bool
}

// Load reads configuration from an optional config.yaml, TASKMATE_* env vars and defaults.
// An explicit file (from --config) must exist; the searched locations are optional.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("taskmate")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".taskmate"))
		}
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(v.GetString("storage.driver")))
	cfg.Storage.Path = v.GetString("storage.path")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Categories.DefaultName = strings.TrimSpace(v.GetString("categories.default_name"))
	cfg.Categories.ResetTasksOnFirstCategory = v.GetBool("categories.reset_tasks_on_first_category")

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverFile:
	default:
		return nil, fmt.Errorf("unknown storage driver %q (want %s or %s)", cfg.Storage.Driver, DriverSQLite, DriverFile)
	}
	if cfg.Storage.Path == "" {
		path, err := DefaultStoragePath(cfg.Storage.Driver)
		if err != nil {
			return nil, err
		}
		cfg.Storage.Path = path
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	if cfg.Categories.DefaultName == "" {
		cfg.Categories.DefaultName = "Umum"
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("categories.default_name", "Umum")
	v.SetDefault("categories.reset_tasks_on_first_category", true)
}

// DefaultStoragePath returns the default data location for a driver.
func DefaultStoragePath(driver string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	if driver == DriverFile {
		return filepath.Join(homeDir, ".taskmate.yaml"), nil
	}
	return filepath.Join(homeDir, ".taskmate.db"), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
