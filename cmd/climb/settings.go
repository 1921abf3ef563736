package main

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/midbel/climb/grammar"
	"github.com/midbel/climb/logger"
)

type Settings struct {
	Grammar  string        `mapstructure:"grammar"`
	MaxDepth int           `mapstructure:"maxdepth"`
	Log      logger.Config `mapstructure:"log"`
}

func loadSettings() (Settings, error) {
	v := viper.New()
	v.SetConfigName("climb")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/climb")

	v.SetEnvPrefix("climb")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := logger.DefaultConfig()
	v.SetDefault("grammar", grammar.DefaultName)
	v.SetDefault("maxdepth", 0)
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.file", def.File)
	v.SetDefault("log.maxsize", def.MaxSize)
	v.SetDefault("log.maxage", def.MaxAge)
	v.SetDefault("log.maxbackups", def.MaxBackups)
	v.SetDefault("log.compress", def.Compress)

	var cfg Settings
	if err := v.ReadInConfig(); err != nil {
		var missing viper.ConfigFileNotFoundError
		if !errors.As(err, &missing) {
			return cfg, err
		}
	}
	err := v.Unmarshal(&cfg)
	return cfg, err
}
