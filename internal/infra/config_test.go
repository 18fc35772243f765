package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GeminiImageModel != "imagen-4.0-generate-001" {
		t.Errorf("GeminiImageModel = %q", cfg.GeminiImageModel)
	}
	if cfg.CooldownDuration != 60*time.Second {
		t.Errorf("CooldownDuration = %v, want 60s", cfg.CooldownDuration)
	}
	if cfg.StartingBankBalance != 150.00 {
		t.Errorf("StartingBankBalance = %v, want 150", cfg.StartingBankBalance)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AI_COOLDOWN_SECONDS", "5")
	t.Setenv("STARTING_BANK_BALANCE", "10.50")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CooldownDuration != 5*time.Second {
		t.Errorf("CooldownDuration = %v, want 5s", cfg.CooldownDuration)
	}
	if cfg.StartingBankBalance != 10.50 {
		t.Errorf("StartingBankBalance = %v, want 10.5", cfg.StartingBankBalance)
	}
}
