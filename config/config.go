package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_config_unmarshaler.go github.com/kasuboski/showtrack/config ConfigUnmarshaler

type Config struct {
	Storage  Storage  `json:"storage" yaml:"storage" mapstructure:"storage"`
	Library  Library  `json:"library" yaml:"library" mapstructure:"library"`
	Tracking Tracking `json:"tracking" yaml:"tracking" mapstructure:"tracking"`
	Server   Server   `json:"server" yaml:"server" mapstructure:"server"`
	Log      Log      `json:"log" yaml:"log" mapstructure:"log"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

type Library struct {
	// Root is where relative show directories are resolved from
	Root string `json:"root" yaml:"root" mapstructure:"root"`
}

type Tracking struct {
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider" validate:"required,oneof=mal local"`
	// Retries is how many times a failed tracking call is attempted, 1 disables retrying
	Retries    uint          `json:"retries" yaml:"retries" mapstructure:"retries"`
	RetryDelay time.Duration `json:"retryDelay" yaml:"retryDelay" mapstructure:"retryDelay"`
	MAL        MAL           `json:"mal" yaml:"mal" mapstructure:"mal"`
}

type MAL struct {
	ClientID    string        `json:"clientID" yaml:"clientID" mapstructure:"clientID" validate:"required_if=Enabled true"`
	AccessToken string        `json:"accessToken" yaml:"accessToken" mapstructure:"accessToken"`
	APIURL      string        `json:"apiURL" yaml:"apiURL" mapstructure:"apiURL" validate:"omitempty,url"`
	JikanURL    string        `json:"jikanURL" yaml:"jikanURL" mapstructure:"jikanURL" validate:"omitempty,url"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`

	// Enabled is set from the provider and never read from configuration
	Enabled bool `json:"-" yaml:"-" mapstructure:"-"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

type Log struct {
	File       string `json:"file" yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMB" yaml:"maxSizeMB" mapstructure:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups" mapstructure:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `json:"maxAgeDays" yaml:"maxAgeDays" mapstructure:"maxAgeDays" validate:"gte=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration and validates it
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	c.Tracking.MAL.Enabled = c.Tracking.Provider == "mal"

	if err := validator.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}
