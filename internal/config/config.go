// Package config loads the settings of the augment CLI and server.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"augmentor/internal/augerr"
	"augmentor/internal/resources"
	"augmentor/pkg/options"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Augment AugmentConfig `mapstructure:"augment" yaml:"augment"`
	Redis   RedisConfig   `mapstructure:"redis" yaml:"redis"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
	Colors      bool   `mapstructure:"colors" yaml:"colors"`
}

// AugmentConfig holds the augmentor defaults. Seed < 0 draws the seed from
// the clock.
type AugmentConfig struct {
	Language    string  `mapstructure:"language" yaml:"language"`
	Platform    string  `mapstructure:"platform" yaml:"platform"`
	UnitProb    float64 `mapstructure:"unit_prob" yaml:"unit_prob"`
	MinAug      int     `mapstructure:"min_aug" yaml:"min_aug"`
	MaxAug      int     `mapstructure:"max_aug" yaml:"max_aug"`
	MultNum     int     `mapstructure:"mult_num" yaml:"mult_num"`
	Seed        int64   `mapstructure:"seed" yaml:"seed"`
	ResourceDir string  `mapstructure:"resource_dir" yaml:"resource_dir"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Key      string `mapstructure:"key" yaml:"key"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	MaxBatch     int           `mapstructure:"max_batch" yaml:"max_batch"`
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "augment")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors", true)

	v.SetDefault("augment.language", string(options.DefaultOptions.Language))
	v.SetDefault("augment.platform", string(options.DefaultOptions.Platform))
	v.SetDefault("augment.unit_prob", options.DefaultOptions.UnitProb)
	v.SetDefault("augment.min_aug", options.DefaultOptions.MinAug)
	v.SetDefault("augment.max_aug", options.DefaultOptions.MaxAug)
	v.SetDefault("augment.mult_num", options.DefaultOptions.MultNum)
	v.SetDefault("augment.seed", -1)
	v.SetDefault("augment.resource_dir", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", "augmentor:tables")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_batch", 1000)
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := options.Build(c.Augment.Options()...).Validate(); err != nil {
		return err
	}
	if c.Server.MaxBatch <= 0 {
		return augerr.Configf("server.max_batch", "must be positive, got %d", c.Server.MaxBatch)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return augerr.Configf("redis.addr", "required when redis is enabled")
	}
	return nil
}

// Options converts the section into augmentor options. Language and
// platform are normalized; invalid values are left for Validate to report.
func (a AugmentConfig) Options() []options.Options {
	lang, err := resources.ParseLanguage(a.Language)
	if err != nil {
		lang = resources.Language(a.Language)
	}
	platform, err := resources.ParsePlatform(a.Platform)
	if err != nil {
		platform = resources.Platform(a.Platform)
	}
	opts := []options.Options{
		options.WithLanguage(lang),
		options.WithPlatform(platform),
		options.WithUnitProb(a.UnitProb),
		options.WithMinAug(a.MinAug),
		options.WithMaxAug(a.MaxAug),
		options.WithMultNum(a.MultNum),
	}
	if a.Seed >= 0 {
		opts = append(opts, options.WithRandomSeed(uint64(a.Seed)))
	}
	return opts
}
