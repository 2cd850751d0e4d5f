// Package config lee la configuración desde variables de entorno
// (y un .env opcional) y valida lo mínimo indispensable para arrancar.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port          string `koanf:"port"`
	DatabaseURL   string `koanf:"database_url" validate:"required"`
	Env           string `koanf:"app_env"`
	LogLevel      string `koanf:"log_level"`
	RunMigrations bool   `koanf:"run_migrations"`
	KafkaBrokers  string `koanf:"kafka_brokers"`
	KafkaTopic    string `koanf:"kafka_topic"`
}

// Brokers devuelve la lista de brokers de Kafka. Vacía significa eventos deshabilitados.
func (cfg Config) Brokers() []string {
	var brokers []string
	for _, broker := range strings.Split(cfg.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// dotEnvFile se puede cambiar en tests.
var dotEnvFile = ".env"

// Load lee variables de entorno, aplica defaults y valida.
func Load() (Config, error) {
	// El .env es opcional; las variables ya definidas en el entorno tienen prioridad.
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	k := koanf.New(".")
	// Sin prefijo: PORT -> port, DATABASE_URL -> database_url.
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Config{RunMigrations: true}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// Normalizamos por si alguien manda ":8080"
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.Env = strings.TrimSpace(cfg.Env); cfg.Env == "" {
		cfg.Env = "local"
	}
	if cfg.LogLevel = strings.TrimSpace(cfg.LogLevel); cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.KafkaTopic = strings.TrimSpace(cfg.KafkaTopic); cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "beer-events"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL: %w", err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	return cfg, nil
}
