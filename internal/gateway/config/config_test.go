package config

import (
	"testing"
	"time"

	"kamicanvas/internal/tester"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "KAMI_LLM_PROVIDER", "KAMI_LLM_MODEL", "GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "KAMI_MAX_SESSIONS", "KAMI_SESSION_TTL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil)
	tester.NoErr(t, err)
	tester.Eq(t, cfg.Port, ":8081")
	tester.Eq(t, cfg.Env, "local")
	tester.Eq(t, cfg.LLM.Provider, "gemini")
	tester.True(t, cfg.LLM.CredentialsMissing(), "no key configured")
	tester.Eq(t, cfg.Sessions.MaxSessions, 1024)
	tester.Eq(t, cfg.Sessions.TTL, 12*time.Hour)
}

func TestLoadFlagsAndEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("KAMI_SESSION_TTL", "30m")
	t.Setenv("KAMI_MAX_SESSIONS", "bogus")
	cfg, err := Load([]string{"-port", "9000"})
	tester.NoErr(t, err)
	tester.Eq(t, cfg.Port, ":9000")
	tester.Eq(t, cfg.LLM.APIKey, "legacy-key")
	tester.False(t, cfg.LLM.CredentialsMissing(), "key configured")
	tester.Eq(t, cfg.Sessions.TTL, 30*time.Minute)
	tester.Eq(t, cfg.Sessions.MaxSessions, 1024)

	t.Setenv("PORT", "7000")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err = Load(nil)
	tester.NoErr(t, err)
	tester.Eq(t, cfg.Port, ":7000")
	tester.Eq(t, cfg.LLM.APIKey, "gemini-key")
}

func TestLoadOpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAMI_LLM_PROVIDER", "OpenAI")
	t.Setenv("GEMINI_API_KEY", "ignored")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")
	cfg, err := Load(nil)
	tester.NoErr(t, err)
	tester.Eq(t, cfg.LLM, LLMConfig{Provider: "openai", APIKey: "sk-test", BaseURL: "http://localhost:11434/v1"})
}

func TestFakeProviderNeedsNoKey(t *testing.T) {
	tester.False(t, LLMConfig{Provider: "fake"}.CredentialsMissing(), "fake provider")
}

func TestLoadBadFlag(t *testing.T) {
	clearEnv(t)
	if _, err := Load([]string{"-nope"}); err == nil {
		t.Fatal("expected flag error")
	}
}
