package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"botdeck/internal/domain"
)

type Config struct {
	RedisURL string

	HTTPBind string
	HTTPPort int

	SSHBind        string
	SSHPort        int
	SSHHostKeyPath string

	OpenAIAPIKey      string
	OpenAIModel       string
	AdvisorMaxHistory int

	APILatencyMillis int
	ChatFailureRate  float64

	DefaultTheme domain.ThemeMode
}

func Load() *Config {
	cfg := &Config{
		RedisURL:     os.Getenv("REDIS_URL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, support chat uses canned replies")
	}

	cfg.HTTPBind = os.Getenv("HTTP_BIND")
	if cfg.HTTPBind == "" {
		cfg.HTTPBind = "127.0.0.1"
	}
	cfg.HTTPPort = 8080
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.HTTPPort = n
		} else {
			log.Printf("Warning: invalid HTTP_PORT=%q, defaulting to 8080", v)
		}
	}

	cfg.SSHBind = os.Getenv("SSH_BIND")
	if cfg.SSHBind == "" {
		cfg.SSHBind = "0.0.0.0"
	}
	cfg.SSHPort = 2222
	if v := os.Getenv("SSH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.SSHPort = n
		} else {
			log.Printf("Warning: invalid SSH_PORT=%q, defaulting to 2222", v)
		}
	}
	cfg.SSHHostKeyPath = os.Getenv("SSH_HOST_KEY_PATH")
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/botdeck_ed25519"
	}

	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	cfg.AdvisorMaxHistory = 20
	if v := os.Getenv("ADVISOR_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxHistory = n
		}
	}

	cfg.APILatencyMillis = 500
	if v := os.Getenv("API_LATENCY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.APILatencyMillis = n
		}
	}

	cfg.ChatFailureRate = 0.1
	if v := os.Getenv("CHAT_FAILURE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.ChatFailureRate = f
		} else {
			log.Printf("Warning: invalid CHAT_FAILURE_RATE=%q, defaulting to 0.1", v)
		}
	}

	cfg.DefaultTheme = domain.ThemeLight
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DEFAULT_THEME"))); v != "" {
		mode := domain.ThemeMode(v)
		if mode.IsValid() {
			cfg.DefaultTheme = mode
		} else {
			log.Printf("Warning: unsupported DEFAULT_THEME=%q, defaulting to light", v)
		}
	}

	return cfg
}
