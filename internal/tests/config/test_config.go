package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhinay-x/note-maker/internal/config"
)

// Deterministic secrets for tests. Access and refresh secrets differ so a
// token of one kind never verifies as the other.
const (
	TestJWTSecret        = "test-access-secret-for-e2e"
	TestJWTRefreshSecret = "test-refresh-secret-for-e2e"
	TestPendingSecret    = "test-pending-secret-for-e2e"
	TestClientURL        = "http://localhost:5173"
)

// SetupTestEnvironment sets the environment variables config.Load reads,
// restored when the test ends. CONFIG_PATH points at a file that does not
// exist so only defaults and these values apply.
func SetupTestEnvironment(t *testing.T) {
	t.Helper()

	testEnvVars := map[string]string{
		"CONFIG_PATH":        filepath.Join(t.TempDir(), "missing.yml"),
		"GIN_MODE":           "test",
		"JWT_SECRET":         TestJWTSecret,
		"JWT_REFRESH_SECRET": TestJWTRefreshSecret,
		"PENDING_SECRET":     TestPendingSecret,
		"CLIENT_URL":         TestClientURL,
		"CORS_ORIGIN":        TestClientURL,
		"EMAIL_PROVIDER":     "log",
		"LOG_LEVEL":          "error",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}
}

// LoadTestConfig loads configuration for end-to-end tests. An optional
// .env.test is applied first; bcrypt runs at its minimum cost and rate limits
// are raised so only tests that lower them hit them.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	if err := godotenv.Load(".env.test"); err != nil {
		t.Logf("no .env.test loaded: %v", err)
	}
	SetupTestEnvironment(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}

	cfg.BcryptCost = 4
	cfg.GeneralLimit = config.Limit{Max: 10000, Window: time.Minute}
	cfg.AuthLimit = config.Limit{Max: 10000, Window: time.Minute}
	cfg.OTPLimit = config.Limit{Max: 10000, Window: time.Minute}
	return cfg
}
