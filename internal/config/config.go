package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App            App            `yaml:"app"`
	Http           Http           `yaml:"http"`
	Infrastructure Infrastructure `yaml:"infrastructure"`
	Storage        Storage        `yaml:"storage"`
	Clients        Clients        `yaml:"clients"`
	Import         Import         `yaml:"import"`
}

type App struct {
	Name string `yaml:"name" env:"APP_NAME" env-default:"quiz-import"`
	Env  string `yaml:"env" env:"APP_ENV" env-default:"dev"`
}

type Http struct {
	Addr        string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	BodyLimitMB int    `yaml:"body_limit_mb" env:"HTTP_BODY_LIMIT_MB" env-default:"10"`
}

type Infrastructure struct {
	Db       Db       `yaml:"db"`
	Redis    Redis    `yaml:"redis"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
}

type Db struct {
	Dsn string `yaml:"dsn" env:"DB_DSN" env-default:"postgres://localhost:5432/quiz?sslmode=disable"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	Db       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type RabbitMQ struct {
	Url      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"quiz.events"`
}

type Storage struct {
	Driver   string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"fs"`
	BasePath string `yaml:"base_path" env:"STORAGE_BASE_PATH" env-default:"./data"`
	Minio    Minio  `yaml:"minio"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"quiz-assets"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

type Clients struct {
	Lms Lms `yaml:"lms"`
}

type Lms struct {
	Url     string        `yaml:"url" env:"LMS_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout" env:"LMS_TIMEOUT" env-default:"10s"`
}

type Import struct {
	PreviewTTL     time.Duration `yaml:"preview_ttl" env:"IMPORT_PREVIEW_TTL" env-default:"30m"`
	LibreOfficeBin string        `yaml:"libreoffice_bin" env:"IMPORT_LIBREOFFICE_BIN" env-default:"libreoffice"`
}

func (c *Config) IsProd() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

// Load reads the yaml file named by CONFIG_PATH (when set) and applies env overrides.
func Load[T any]() (*T, error) {
	var cfg T
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

func MustLoad[T any]() *T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
