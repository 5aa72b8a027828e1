package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the admin backend.
type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8090"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"bookforge"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Secret field WITHOUT an envconfig tag
	DBPassword string

	// Supabase object storage
	StorageURL    string        `envconfig:"STORAGE_URL" required:"true"`
	StorageBucket string        `envconfig:"STORAGE_BUCKET" default:"book-assets"`
	SignedURLTTL  time.Duration `envconfig:"SIGNED_URL_TTL" default:"1h"`
	// Secret field WITHOUT an envconfig tag
	StorageServiceKey string

	// Text generation (OpenAI-compatible)
	AIBaseURL string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel   string        `envconfig:"AI_MODEL" default:"gpt-4o"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	// Secret field WITHOUT an envconfig tag
	AIAPIKey string

	// Image generation API
	ImageGenURL         string        `envconfig:"IMAGE_GEN_URL" required:"true"`
	ImageGenTimeout     time.Duration `envconfig:"IMAGE_GEN_TIMEOUT" default:"180s"`
	ImageGenStyleSuffix string        `envconfig:"IMAGE_GEN_STYLE_SUFFIX" default:""`

	// Book configuration / order service (read-only collaborator)
	BookServiceURL string        `envconfig:"BOOK_SERVICE_URL" required:"true"`
	ClientTimeout  time.Duration `envconfig:"CLIENT_TIMEOUT" default:"15s"`

	// Prompt templates
	PromptsDir string `envconfig:"PROMPTS_DIR" default:"./prompts"`

	// Admin session verification
	// Secret field WITHOUT an envconfig tag
	JWTSecret string
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var loadErr error
	cfg.DBPassword, loadErr = readSecret("db_password", "DB_PASSWORD")
	if loadErr != nil {
		return nil, loadErr
	}
	cfg.JWTSecret, loadErr = readSecret("jwt_secret", "JWT_SECRET")
	if loadErr != nil {
		return nil, loadErr
	}
	cfg.AIAPIKey, loadErr = readSecret("ai_api_key", "AI_API_KEY")
	if loadErr != nil {
		return nil, loadErr
	}
	cfg.StorageServiceKey, loadErr = readSecret("storage_service_key", "STORAGE_SERVICE_KEY")
	if loadErr != nil {
		return nil, loadErr
	}

	return &cfg, nil
}

// readSecret reads a secret from the standard Docker Secrets path, falling
// back to the environment variable for local development.
func readSecret(secretName, envName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret != "" {
			return secret, nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("secret %s is not set (checked %s and env %s)", secretName, filePath, envName)
}
