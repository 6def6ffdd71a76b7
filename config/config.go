package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Port              string
	DataDir           string
	StaticDir         string
	JWTSecret         string
	RefreshSecret     string
	MinPasswordLength int
	BcryptCost        int
	IsProd            bool
}

// Load reads configuration from the environment, loading a .env file first if
// one is present. REFRESH_SECRET falls back to a random value generated at
// startup, which means refresh sessions do not survive a restart unless the
// secret is configured explicitly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		StaticDir:         getEnv("STATIC_DIR", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RefreshSecret:     getEnv("REFRESH_SECRET", ""),
		MinPasswordLength: getEnvInt("MIN_PASSWORD_LENGTH", 6),
		BcryptCost:        getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		IsProd:            os.Getenv("IS_PROD") == "true",
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProd {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.RefreshSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate refresh secret: %w", err)
		}
		cfg.RefreshSecret = secret
	}
	if cfg.BcryptCost < 10 {
		cfg.BcryptCost = 10
	}

	return cfg, nil
}

// DatabasePath returns the path of the SQLite database file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "finance.db")
}

// BackupDir returns the directory holding timestamped database snapshots.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// String masks secrets so the config can be logged safely.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DataDir: %s, Secrets: *** (masked) ***}", c.Port, c.DataDir)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultVal
}
