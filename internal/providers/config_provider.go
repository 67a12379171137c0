package providers

import (
	"fmt"
	"luckypick/internal/structures"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("locale", "ko")
	v.SetDefault("generator.maxSets", 100)
	v.SetDefault("storage.mode", 0644)
	v.SetDefault("storage.flushInterval", 30)
	v.SetDefault("cache.ttl", "30s")

	v.BindEnv("logger.level", "LUCKYPICK_LOG_LEVEL")
	v.BindEnv("storage.dir", "LUCKYPICK_STORAGE_DIR")
	v.BindEnv("cache.enabled", "LUCKYPICK_CACHE_ENABLED")
	v.BindEnv("cache.size", "LUCKYPICK_CACHE_SIZE")
	v.BindEnv("generator.maxSets", "LUCKYPICK_MAX_SETS")
	v.BindEnv("locale", "LUCKYPICK_LOCALE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "LuckyPick"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
