package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Checker CheckerConfig `yaml:"checker"`
	Service ServiceConfig `yaml:"service"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" env:"LINKALIVE_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"LINKALIVE_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"LINKALIVE_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Path  string `yaml:"path" env:"LINKALIVE_LOG_PATH"`
	Level string `yaml:"log_level" env:"LINKALIVE_LOG_LEVEL" env-default:"info"`
}

type CheckerConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"LINKALIVE_CHECK_TIMEOUT" env-default:"9500ms"`
}

type ServiceConfig struct {
	Name        string `yaml:"name" env-default:"link-alive"`
	DisplayName string `yaml:"display_name" env-default:"Link Alive"`
	Description string `yaml:"description" env-default:"Checks batches of download links with HEAD requests."`
}

// MustLoad reads the file passed with -config (./config/config.yaml by
// default). Without a file the configuration comes from the environment.
func MustLoad() *Config {
	return loadConfig(loadPath())
}

func loadPath() string {
	var path string
	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()
	if path == "" {
		path = "./config/config.yaml"
	}

	return path
}

func loadConfig(path string) *Config {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from env: " + err.Error())
		}
		return &cfg
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}
