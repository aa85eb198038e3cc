package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Accounts map[string]AccountConfig `mapstructure:"accounts"`
	Filters  map[string]string        `mapstructure:"filters"`
	Logging  LoggingConfig            `mapstructure:"logging"`
}

// AccountConfig holds the connection and credential settings for one
// provider account
type AccountConfig struct {
	Provider     string        `mapstructure:"provider"`
	BaseURL      string        `mapstructure:"base_url"`
	StreamURL    string        `mapstructure:"stream_url"`
	AuthMode     string        `mapstructure:"auth_mode"`
	RequestMode  string        `mapstructure:"request_mode"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	AccessToken  string        `mapstructure:"access_token"`
	AccessSecret string        `mapstructure:"access_secret"`
	RefreshToken string        `mapstructure:"refresh_token"`
	UserAgent    string        `mapstructure:"user_agent"`
	BinaryKeys   []string      `mapstructure:"binary_keys"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	Color  bool          `mapstructure:"color"`
	File   FileLogConfig `mapstructure:"file"`
}

// FileLogConfig enables a rotating log file next to or instead of the
// console output
type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}
