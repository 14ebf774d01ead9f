package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

// GeminiConfig carrega a credencial e os modelos do serviço de narrativa.
// A chave pertence ao colaborador externo, não ao núcleo de métricas.
type GeminiConfig struct {
	APIKey        string
	Model         string
	FeedbackModel string
	Timeout       time.Duration
}

type UploadConfig struct {
	MaxSizeMB int64
}

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Upload UploadConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado, usando variáveis de ambiente.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			Model:         getEnv("GEMINI_MODEL", "gemini-3-pro-preview"),
			FeedbackModel: getEnv("GEMINI_FEEDBACK_MODEL", "gemini-3-flash-preview"),
			Timeout:       getDuration("NARRATIVE_TIMEOUT", 60*time.Second),
		},
		Upload: UploadConfig{
			MaxSizeMB: getInt64("UPLOAD_MAX_SIZE_MB", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
