package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host string `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
		Port int    `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	} `yaml:"server"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"connect4.db"`
	} `yaml:"database"`

	Engine struct {
		// Path to the pattern-score knowledge base consumed by the evaluator.
		ScoreTable string `yaml:"score_table" env:"SCORE_TABLE" env-default:"eval/patterns.txt"`
		// Fixed minimax depth for the hybrid strategy.
		SearchDepth int `yaml:"search_depth" env:"SEARCH_DEPTH" env-default:"4"`
		// "hybrid" or "rule".
		Strategy string `yaml:"strategy" env:"AGENT_STRATEGY" env-default:"hybrid"`
	} `yaml:"engine"`

	Game struct {
		BotQueueTimeoutSeconds  int `yaml:"bot_queue_timeout_seconds" env-default:"10"`
		ReconnectTimeoutSeconds int `yaml:"reconnect_timeout_seconds" env-default:"30"`
	} `yaml:"game"`
}

// MustLoad reads the yaml config named by CONFIG_PATH or the -config flag,
// after loading an optional local .env. Exits on any failure.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configflag := flag.String("config", "", "Path to configuration file")
		flag.Parse()
		configPath = *configflag
	}

	var cfg Config
	if configPath == "" {
		// No config file: environment variables and defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("Failed to read config from environment: %v", err)
		}
		return &cfg
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	return &cfg
}
