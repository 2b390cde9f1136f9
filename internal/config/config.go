package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "FUNCFOLD"

type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Output OutputConfig `mapstructure:"output"`
	Watch  WatchConfig  `mapstructure:"watch"`
	Daemon DaemonConfig `mapstructure:"daemon"`
	Log    LogConfig    `mapstructure:"log"`
}

type ScanConfig struct {
	All     bool     `mapstructure:"all"`
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	Jobs    int      `mapstructure:"jobs"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type DaemonConfig struct {
	Listen       string `mapstructure:"listen"`
	MaxDocuments int    `mapstructure:"max_documents"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var Formats = []string{"default", "vim", "jsonl", "json", "csv", "markdown"}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("scan.all", false)
	v.SetDefault("scan.include", []string{})
	v.SetDefault("scan.exclude", []string{})
	v.SetDefault("scan.jobs", 8)

	v.SetDefault("output.format", "default")

	v.SetDefault("watch.debounce", "200ms")

	v.SetDefault("daemon.listen", "127.0.0.1:7347")
	v.SetDefault("daemon.max_documents", 256)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// NewViper returns a viper instance with defaults, the FUNCFOLD_ environment
// mapping and, when file is empty, the standard config search paths.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("funcfold")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./.funcfold")
		v.AddConfigPath("$HOME/.config/funcfold")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadIn reads the config file if there is one. A missing file in the
// search paths is not an error; a missing explicit file is.
func ReadIn(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Scan.Jobs < 1 {
		return errors.New("scan.jobs must be at least 1")
	}
	if !validFormat(c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s", strings.Join(Formats, ", "))
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}
	if strings.TrimSpace(c.Daemon.Listen) == "" {
		return errors.New("daemon.listen is required")
	}
	if c.Daemon.MaxDocuments < 1 {
		return errors.New("daemon.max_documents must be at least 1")
	}
	return nil
}

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}
