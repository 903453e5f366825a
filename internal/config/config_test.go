package config

import (
	"testing"

	"botdeck/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REDIS_URL", "OPENAI_API_KEY", "OPENAI_MODEL", "ADVISOR_MAX_HISTORY",
		"HTTP_BIND", "HTTP_PORT", "SSH_BIND", "SSH_PORT", "SSH_HOST_KEY_PATH",
		"API_LATENCY_MS", "CHAT_FAILURE_RATE", "DEFAULT_THEME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.RedisURL != "localhost:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.HTTPBind != "127.0.0.1" || cfg.HTTPPort != 8080 {
		t.Errorf("HTTP defaults = %s:%d", cfg.HTTPBind, cfg.HTTPPort)
	}
	if cfg.SSHBind != "0.0.0.0" || cfg.SSHPort != 2222 {
		t.Errorf("SSH defaults = %s:%d", cfg.SSHBind, cfg.SSHPort)
	}
	if cfg.SSHHostKeyPath != ".ssh/botdeck_ed25519" {
		t.Errorf("SSHHostKeyPath = %q", cfg.SSHHostKeyPath)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" || cfg.AdvisorMaxHistory != 20 {
		t.Errorf("advisor defaults = %q/%d", cfg.OpenAIModel, cfg.AdvisorMaxHistory)
	}
	if cfg.APILatencyMillis != 500 {
		t.Errorf("APILatencyMillis = %d", cfg.APILatencyMillis)
	}
	if cfg.ChatFailureRate != 0.1 {
		t.Errorf("ChatFailureRate = %v", cfg.ChatFailureRate)
	}
	if cfg.DefaultTheme != domain.ThemeLight {
		t.Errorf("DefaultTheme = %q", cfg.DefaultTheme)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis.internal:6380")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SSH_PORT", "2022")
	t.Setenv("API_LATENCY_MS", "0")
	t.Setenv("CHAT_FAILURE_RATE", "0.5")
	t.Setenv("DEFAULT_THEME", "Dark")

	cfg := Load()
	if cfg.RedisURL != "redis.internal:6380" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.HTTPPort != 9090 || cfg.SSHPort != 2022 {
		t.Errorf("ports = %d/%d", cfg.HTTPPort, cfg.SSHPort)
	}
	if cfg.APILatencyMillis != 0 {
		t.Errorf("APILatencyMillis = %d", cfg.APILatencyMillis)
	}
	if cfg.ChatFailureRate != 0.5 {
		t.Errorf("ChatFailureRate = %v", cfg.ChatFailureRate)
	}
	if cfg.DefaultTheme != domain.ThemeDark {
		t.Errorf("DefaultTheme = %q", cfg.DefaultTheme)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "not-a-port")
	t.Setenv("SSH_PORT", "70000")
	t.Setenv("CHAT_FAILURE_RATE", "1.5")
	t.Setenv("DEFAULT_THEME", "solarized")

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Errorf("invalid HTTP_PORT should fall back, got %d", cfg.HTTPPort)
	}
	if cfg.SSHPort != 2222 {
		t.Errorf("out-of-range SSH_PORT should fall back, got %d", cfg.SSHPort)
	}
	if cfg.ChatFailureRate != 0.1 {
		t.Errorf("out-of-range CHAT_FAILURE_RATE should fall back, got %v", cfg.ChatFailureRate)
	}
	if cfg.DefaultTheme != domain.ThemeLight {
		t.Errorf("unknown DEFAULT_THEME should fall back, got %q", cfg.DefaultTheme)
	}
}
