package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Face    FaceConfig
	Uploads UploadsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=face_enrollment"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// FaceConfig locates the face verification server that holds the pre-loaded
// embedding model.
type FaceConfig struct {
	ServerURL string        `env:"FACE_SERVER_URL, default=http://localhost:8000"`
	Model     string        `env:"FACE_MODEL,      default=VGG-Face"`
	Timeout   time.Duration `env:"FACE_TIMEOUT,    default=30s"`
}

type UploadsConfig struct {
	Dir string `env:"UPLOADS_DIR, default=uploads"`
	// MaxBodySize is handed to the HTTP body limit middleware (e.g. "8M").
	MaxBodySize string `env:"MAX_UPLOAD_SIZE, default=8M"`
	// MaxImageDim bounds both dimensions of the stored canonical image.
	MaxImageDim int `env:"MAX_IMAGE_DIM, default=500"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
