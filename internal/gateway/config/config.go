package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LLM      LLMConfig
	Sessions SessionConfig
}

type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// CredentialsMissing reports whether AI actions must be disabled.
func (c LLMConfig) CredentialsMissing() bool {
	return strings.TrimSpace(c.APIKey) == "" && !strings.EqualFold(c.Provider, "fake")
}

type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

// Load reads .env (if present), then flags from args, then environment
// overrides.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("kami", flag.ContinueOnError)
	port := fs.String("port", ":8081", "server port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if envPort := os.Getenv("PORT"); envPort != "" {
		*port = normalizePort(envPort)
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:     normalizePort(*port),
		Env:      env,
		LLM:      loadLLMConfig(),
		Sessions: loadSessionConfig(),
	}, nil
}

func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(firstNonEmpty(strings.TrimSpace(os.Getenv("KAMI_LLM_PROVIDER")), "gemini"))
	cfg := LLMConfig{
		Provider: provider,
		Model:    strings.TrimSpace(os.Getenv("KAMI_LLM_MODEL")),
	}
	switch provider {
	case "openai":
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		cfg.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	default:
		cfg.APIKey = firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_API_KEY")), strings.TrimSpace(os.Getenv("API_KEY")))
	}
	return cfg
}

func loadSessionConfig() SessionConfig {
	cfg := SessionConfig{MaxSessions: 1024, TTL: 12 * time.Hour}
	if raw := strings.TrimSpace(os.Getenv("KAMI_MAX_SESSIONS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MaxSessions = n
		}
	}
	if raw := strings.TrimSpace(os.Getenv("KAMI_SESSION_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.TTL = d
		}
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
