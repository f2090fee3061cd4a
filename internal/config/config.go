package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// BlobBackend selects where document payloads are stored.
type BlobBackend string

const (
	BlobMinio  BlobBackend = "minio"
	BlobMemory BlobBackend = "memory"
)

// Config carries everything the server needs from the environment.
type Config struct {
	ServerPort   string
	DBPath       string
	NumberPrefix string
	MaxFileBytes int64

	BlobBackend BlobBackend
	MinIOURL    string
	MinIOUser   string
	MinIOPass   string
	MinIOBucket string
}

// Default payload cap; keeps a single write fast and quota-safe.
const defaultMaxFileBytes = 4 << 20

// Load reads an optional .env file and the environment.
func Load() (*Config, error) {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getenv("PAM_PORT", "8080"),
		DBPath:       getenv("PAM_DB_PATH", "pam.db"),
		NumberPrefix: getenv("PAM_NUMBER_PREFIX", "PAM"),
		MaxFileBytes: defaultMaxFileBytes,
		BlobBackend:  BlobBackend(getenv("PAM_BLOB_BACKEND", string(BlobMinio))),
		MinIOURL:     getenv("MINIO_URL", "localhost:9000"),
		MinIOUser:    getenv("MINIO_USER", "minioadmin"),
		MinIOPass:    getenv("MINIO_PASS", "minioadmin"),
		MinIOBucket:  getenv("MINIO_BUCKET", "pam-files"),
	}

	if raw := os.Getenv("PAM_MAX_FILE_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PAM_MAX_FILE_BYTES %q", raw)
		}
		cfg.MaxFileBytes = n
	}

	switch cfg.BlobBackend {
	case BlobMinio, BlobMemory:
	default:
		return nil, fmt.Errorf("invalid PAM_BLOB_BACKEND %q", cfg.BlobBackend)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
