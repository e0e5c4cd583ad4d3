package config

import (
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string `env:"ADDR" envDefault:":8080"`
	DBPath        string `env:"DB_PATH" envDefault:"rollhouse.sqlite"`
	RedisAddr     string `env:"REDIS_ADDR"`
	EVMRPCURL     string `env:"EVM_RPC_URL"`
	RoundInterval int    `env:"ROUND_INTERVAL" envDefault:"30"`
	RoundLifetime int    `env:"ROUND_LIFETIME" envDefault:"600"`
	SweepInterval int    `env:"SWEEP_INTERVAL" envDefault:"60"`
	DevMode       bool   `env:"DEV_MODE" envDefault:"false"`
	GamesManifest string `env:"GAMES_MANIFEST"`
}

func Load() *Config {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal(err)
	}

	if !cfg.DevMode && (os.Getenv("API_KEY") == "" || os.Getenv("ADMIN_TOKEN") == "") {
		log.Fatal("Missing critical environment variables")
	}

	return cfg
}
