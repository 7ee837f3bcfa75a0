package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTUserSecret string `env:"JWT_USER_SECRET"`
	RedisAddr     string `env:"REDIS_ADDR"`
	KafkaBrokers  string `env:"KAFKA_BROKERS"`
	KafkaTopic    string `env:"KAFKA_PAYMENTS_TOPIC"`
}

func LoadConfig() (*Config, error) {
	// .env опционален, ошибку игнорируем.
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTUserSecret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.JWTUserSecret, "s", "", "JWT signing secret")
	flag.StringVar(&flagConfig.RedisAddr, "r", "", "Redis address (empty disables the views counter)")
	flag.StringVar(&flagConfig.KafkaBrokers, "k", "", "Kafka brokers, comma separated (empty disables events)")
	flag.StringVar(&flagConfig.KafkaTopic, "t", "payment.settled", "Kafka topic for settlement events")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:    defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir: defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTUserSecret: defaultIfBlank(envConfig.JWTUserSecret, flagsConfig.JWTUserSecret),
		RedisAddr:     defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr),
		KafkaBrokers:  defaultIfBlank(envConfig.KafkaBrokers, flagsConfig.KafkaBrokers),
		KafkaTopic:    defaultIfBlank(envConfig.KafkaTopic, flagsConfig.KafkaTopic),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
