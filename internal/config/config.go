package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Provider types
const (
	ProviderDeepFace = "deepface"
	ProviderMock     = "mock"
)

type Config struct {
	// Server
	Port          int    `envconfig:"PORT" default:"3000"`
	Environment   string `envconfig:"ENV" default:"development"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
	MaxImageSize  int    `envconfig:"MAX_IMAGE_SIZE" default:"10485760"`
	// Requests per minute per client IP on enroll and verify
	FaceRateLimit int `envconfig:"FACE_RATE_LIMIT" default:"60"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Provider
	ProviderType     string        `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL      string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel    string        `envconfig:"DEEPFACE_MODEL" default:"Dlib"`
	DeepFaceDetector string        `envconfig:"DEEPFACE_DETECTOR" default:"opencv"`
	DeepFaceTimeout  time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"30s"`

	// Matching
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.6"`

	// Image storage, disabled when MINIO_ENDPOINT is empty
	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"enrollments"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	// Security
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Sign-in attempts allowed per email in LOGIN_ATTEMPT_WINDOW; 0 disables
	LoginMaxAttempts   int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"10"`
	LoginAttemptWindow time.Duration `envconfig:"LOGIN_ATTEMPT_WINDOW" default:"15m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 2 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 2], got %v", c.SimilarityThreshold)
	}

	switch c.ProviderType {
	case ProviderDeepFace:
		if c.DeepFaceURL == "" {
			return errors.New("DEEPFACE_URL is required for the deepface provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown PROVIDER_TYPE %q (supported: %s, %s)", c.ProviderType, ProviderDeepFace, ProviderMock)
	}

	if c.MaxImageSize <= 0 {
		return errors.New("MAX_IMAGE_SIZE must be positive")
	}

	if c.FaceRateLimit <= 0 {
		return errors.New("FACE_RATE_LIMIT must be positive")
	}

	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	if c.LoginMaxAttempts > 0 && c.LoginAttemptWindow <= 0 {
		return errors.New("LOGIN_ATTEMPT_WINDOW must be positive")
	}

	if c.ImageStorageEnabled() && (c.MinioAccessKey == "" || c.MinioSecretKey == "") {
		return errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	return nil
}

// ImageStorageEnabled reports whether enrollment images are kept in MinIO
func (c *Config) ImageStorageEnabled() bool {
	return c.MinioEndpoint != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
