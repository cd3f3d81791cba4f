// Package config carrega a configuração da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config guarda a configuração de toda a aplicação.
// É lida das variáveis de ambiente uma vez na inicialização e tratada
// como imutável.
type Config struct {
	// Database (destino relacional)
	DatabaseURL string

	// Origem (banco de documentos)
	MongoURI      string
	MongoDatabase string
	SourceTimeout time.Duration

	// Migração
	MigrationAPIKey string

	// Auditoria
	LogRetentionDays int

	// Server
	ServerPort string

	// Rate limit (req/min)
	RateLimitGeneral int

	// CORS
	CORSAllowedOrigin string
}

// Load lê a configuração das variáveis de ambiente.
// Retorna erro listando todas as variáveis obrigatórias ausentes.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}

	cfg.MigrationAPIKey = os.Getenv("MIGRATION_API_KEY")
	if cfg.MigrationAPIKey == "" {
		missing = append(missing, "MIGRATION_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.MongoDatabase = getEnvString("MONGO_DATABASE", "cidade-integra")
	cfg.SourceTimeout = getEnvDuration("SOURCE_TIMEOUT", 30*time.Second)
	cfg.LogRetentionDays = getEnvInt("LOG_RETENTION_DAYS", 90)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
