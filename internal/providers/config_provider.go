package providers

import (
	"fmt"
	"path/filepath"
	"spd/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SPD_LOG_LEVEL")
	viper.BindEnv("storage.root", "SPD_STORAGE_ROOT")
	viper.BindEnv("storage.timezone", "SPD_TIMEZONE")
	viper.BindEnv("awaken.dailyLimit", "SPD_DAILY_AWAKEN_LIMIT")
	viper.BindEnv("cache.enabled", "SPD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SPD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "StandPanelDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
