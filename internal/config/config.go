package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DASHBOARD_LOG_LEVEL.
const EnvPrefix = "DASHBOARD"

// Config holds runtime configuration for the dashboard service.
// Values come from dashboard.yaml (or $DASHBOARD_CONFIG), DASHBOARD_* env
// vars and built-in defaults, in increasing order of precedence for env.
type Config struct {
	Port        int      `mapstructure:"port"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
	RecordPath  string   `mapstructure:"record_path"`
	LayoutPath  string   `mapstructure:"layout_path"`
	WatchRecord bool     `mapstructure:"watch_record"`
	AuthMode    string   `mapstructure:"auth_mode"`
	ProjectID   string   `mapstructure:"project_id"`
	Origins     []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "cloudrun")
	v.SetDefault("record_path", "")
	v.SetDefault("layout_path", "")
	v.SetDefault("watch_record", true)
	v.SetDefault("auth_mode", "header")
	v.SetDefault("project_id", "")
	v.SetDefault("allowed_origins", []string{})
}

// New loads configuration into a fresh viper instance. The config file is
// optional unless DASHBOARD_CONFIG names one explicitly.
func New() (*Config, error) {
	v := viper.New()
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dashboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return Load(v)
}

// Load applies defaults and env bindings to v and decodes it.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Cloud Run injects PORT without our prefix.
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.AuthMode {
	case "header", "firebase":
	default:
		return fmt.Errorf("auth_mode must be header or firebase, got %q", c.AuthMode)
	}
	if c.AuthMode == "firebase" && c.ProjectID == "" {
		return errors.New("project_id is required when auth_mode is firebase")
	}
	if c.WatchRecord && c.RecordPath == "" {
		// nothing to watch for the built-in sample record
		c.WatchRecord = false
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}
