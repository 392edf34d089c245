package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	DictionaryPath     string `mapstructure:"dictionary_path"`
	LogLevel           string `mapstructure:"log_level"`
	LogFormat          string `mapstructure:"log_format"`
	LogFile            string `mapstructure:"log_file"`
	LogMaxSizeMB       int    `mapstructure:"log_max_size_mb"`
	Output             string `mapstructure:"output"`
	ScanTimeoutSeconds int    `mapstructure:"scan_timeout_seconds"`
}

func Default() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		LogMaxSizeMB:       10,
		Output:             "text",
		ScanTimeoutSeconds: 30,
	}
}

func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("avwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AVWATCH")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "Avwatch")
	case "darwin":
		return "/Library/Application Support/Avwatch"
	default:
		return "/etc/avwatch"
	}
}
