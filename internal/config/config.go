package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/say_cheerfully/internal/audio"
	"github.com/joho/godotenv"
)

// Порт и лимиты зашиты, через env не меняются.
const (
	Port            = "8888"
	PublicDir       = "public"
	RateLimit       = 100
	RateLimitWindow = 60 * time.Second
	ServiceName     = "say_cheerfully"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
}

func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

type TelegramConfig struct {
	Token       string
	AdminChatID int64
}

func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.AdminChatID != 0
}

type Config struct {
	GeminiAPIKey string
	AudioDir     string
	AudioFormat  audio.Format
	LogLevel     string

	S3       S3Config
	Telegram TelegramConfig
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	format, err := audio.ParseFormat(os.Getenv("AUDIO_FORMAT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		AudioDir:     getenv("AUDIO_DIR", "."),
		AudioFormat:  format,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
			Secure:    os.Getenv("S3_INSECURE") != "true",
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
	}

	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_CHAT_ID %q: %w", v, err)
		}
		cfg.Telegram.AdminChatID = id
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
