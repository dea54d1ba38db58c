// Config loading for the ftag CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/dukaforge/ftag/pkg/types"
)

const (
	defaultConfigDir = ".ftag"
	configFileName   = "config"
	configFileType   = "yaml"

	// EnvConfigDir overrides the configuration directory location.
	envConfigDir = "FTAG_CONFIG_DIR"

	// Config keys recognized in config.yaml.
	cfgKeyDatabase   = "database"
	cfgKeyStrategy   = "strategy"
	cfgKeyShowHidden = "show_hidden"
)

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv(envConfigDir); v != "" {
		return v
	}
	return defaultConfigDir
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config file or directory is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDatabase, types.DefaultDatabase)
	v.SetDefault(cfgKeyStrategy, types.StrategyInList)
	v.SetDefault(cfgKeyShowHidden, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// storeConfig assembles the store configuration with flag > config file >
// default precedence.
func storeConfig() (types.Config, error) {
	v, err := loadConfig(resolveConfigDir())
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		Database:   v.GetString(cfgKeyDatabase),
		Strategy:   v.GetString(cfgKeyStrategy),
		ShowHidden: v.GetBool(cfgKeyShowHidden),
		Directory:  flags.directory,
	}

	if flags.database != "" {
		cfg.Database = flags.database
	}
	if flags.strategy != "" {
		cfg.Strategy = flags.strategy
	}
	if flags.showHidden {
		cfg.ShowHidden = true
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
