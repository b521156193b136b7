package transfer

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration shared by the server and the CLI.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Sampling SamplingConfig `mapstructure:"sampling"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type SamplingConfig struct {
	Points int `mapstructure:"points"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads the configuration from conf.toml and the environment.
// The file is searched in the working directory and in $OTB_CONFIG when set;
// a missing file is fine, the defaults stand. Environment variables use the
// OTB prefix: OTB_SERVER_PORT overrides server.port.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("data.dir", "./data")
	v.SetDefault("sampling.points", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if confPath := os.Getenv("OTB_CONFIG"); confPath != "" {
		v.AddConfigPath(confPath)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("OTB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration fields are sane.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Sampling.Points < 2 {
		return fmt.Errorf("sampling.points must be at least 2, got %d", c.Sampling.Points)
	}
	return nil
}
