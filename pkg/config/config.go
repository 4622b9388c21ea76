package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	AuthJWT      = "jwt"
	AuthFirebase = "firebase"

	StorageFirebase = "firebase"
	StorageMinio    = "minio"
	StorageNone     = "none"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Env         string `env:"ENV" env-default:"development"`
	MetricsPort string `env:"METRICS_PORT" env-default:"9090"`

	StoreDriver     string `env:"STORE_DRIVER" env-default:"mongo"`
	MongoURI        string `env:"MONGO_URI"`
	MongoDB         string `env:"MONGO_DB" env-default:"videotube"`
	PostgresConnStr string `env:"POSTGRES_CONN_STR"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" env-default:"30s"`

	AuthMode                string `env:"AUTH_MODE" env-default:"jwt"`
	JWTSecret               string `env:"JWT_SECRET"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`

	StorageDriver      string `env:"STORAGE_DRIVER" env-default:"none"`
	FirebaseBucket     string `env:"FIREBASE_BUCKET"`
	MinioEndpoint      string `env:"MINIO_ENDPOINT"`
	MinioAccessKey     string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey     string `env:"MINIO_SECRET_KEY"`
	MinioBucket        string `env:"MINIO_BUCKET"`
	MinioPublicBaseURL string `env:"MINIO_PUBLIC_BASE_URL"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
	UploadDir      string        `env:"UPLOAD_DIR"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, reading the environment only")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NeedsFirebase reports whether any collaborator runs on Firebase
func (c *Config) NeedsFirebase() bool {
	return c.AuthMode == AuthFirebase || c.StorageDriver == StorageFirebase
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" || c.PostgresConnStr == "" {
			return errors.New("MONGO_URI and POSTGRES_CONN_STR are required for the mongo store driver")
		}
	default:
		return errors.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.AuthMode {
	case AuthJWT:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required for jwt auth")
		}
	case AuthFirebase:
		if c.StoreDriver == StoreMemory {
			return errors.New("firebase auth needs a persistent user store")
		}
	default:
		return errors.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	switch c.StorageDriver {
	case StorageNone:
	case StorageFirebase:
		if c.FirebaseBucket == "" {
			return errors.New("FIREBASE_BUCKET is required for firebase storage")
		}
	case StorageMinio:
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" || c.MinioBucket == "" {
			return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required for minio storage")
		}
	default:
		return errors.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.NeedsFirebase() && c.FirebaseCredentialsPath == "" {
		return errors.New("FIREBASE_CREDENTIALS_PATH is required when firebase is used")
	}
	return nil
}
