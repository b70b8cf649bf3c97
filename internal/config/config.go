package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Client  ClientConfig  `mapstructure:"client"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Session SessionConfig `mapstructure:"session"`
	Channel ChannelConfig `mapstructure:"channel"`
	API     APIConfig     `mapstructure:"api"`
	Journal JournalConfig `mapstructure:"journal"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type ClientConfig struct {
	Mode     string `mapstructure:"mode" validate:"oneof=debug release"`
	PlayerID string `mapstructure:"playerId"` // derived from auth.token when empty
}

type ServerConfig struct {
	HTTPBase string        `mapstructure:"httpBase" validate:"required,url"`
	WSBase   string        `mapstructure:"wsBase" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type AuthConfig struct {
	Token  string `mapstructure:"token"`
	Secret string `mapstructure:"secret"`
}

type SessionConfig struct {
	ID              string `mapstructure:"id" validate:"required"`
	DiscardPoolSize int    `mapstructure:"discardPoolSize" validate:"min=1"`
}

type ChannelConfig struct {
	ReconnectDelay time.Duration `mapstructure:"reconnectDelay" validate:"gt=0"`
	DialTimeout    time.Duration `mapstructure:"dialTimeout" validate:"gt=0"`
	ReadLimit      int64         `mapstructure:"readLimit" validate:"min=0"`
}

type APIConfig struct {
	Port         string `mapstructure:"port" validate:"required,numeric"`
	ControlToken string `mapstructure:"controlToken"`
}

type JournalConfig struct {
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=sqlite postgres mysql"`
	DSN    string `mapstructure:"dsn" validate:"required_with=Driver"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	SnapshotTTL time.Duration `mapstructure:"snapshotTTL"`
}

var GlobalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("client.mode", "debug")
	v.SetDefault("server.timeout", "10s")
	v.SetDefault("session.discardPoolSize", 5)
	v.SetDefault("channel.reconnectDelay", "3s")
	v.SetDefault("channel.dialTimeout", "10s")
	v.SetDefault("channel.readLimit", 1<<20)
	v.SetDefault("api.port", "8090")
	v.SetDefault("redis.snapshotTTL", "10m")
}

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SLEUTH")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return err
	}
	GlobalConfig = &cfg
	return nil
}

func Validate(cfg *Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Client.PlayerID == "" && cfg.Auth.Token == "" {
		return fmt.Errorf("invalid config: client.playerId or auth.token is required")
	}
	return nil
}
