package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env          string `yaml:"env" env:"PLANNER_ENV" env-default:"prod"`
	ErrorLogPath string `yaml:"error_log_path" env:"PLANNER_ERROR_LOG_PATH" env-default:"errors.log"`
	Storage      `yaml:"storage"`
	HTTPServer   `yaml:"http_server"`
	Metrics      `yaml:"metrics"`
}

type Storage struct {
	// Driver is "sqlite" or "mysql".
	Driver string `yaml:"driver" env:"PLANNER_STORAGE_DRIVER" env-default:"sqlite"`
	// Path is the database file for the sqlite driver.
	Path       string `yaml:"path" env:"PLANNER_STORAGE_PATH" env-default:"./furniture_production.db"`
	DBUser     string `yaml:"db_user" env:"PLANNER_DB_USER"`
	DBPassword string `yaml:"db_password" env:"PLANNER_DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"PLANNER_DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"PLANNER_DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"PLANNER_DB_NAME"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"PLANNER_HTTP_ADDRESS" env-default:"localhost:8000"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"PLANNER_HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:8000"`
}

type Metrics struct {
	Enabled bool `yaml:"enabled" env:"PLANNER_METRICS_ENABLED"`
}

// MustConfig reads CONFIG_PATH (or ./config/local.yaml) and environment overrides.
// A .env file in the working directory is loaded first when present.
func MustConfig() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
