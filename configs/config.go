package configs

import (
	"flag"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Yeabkal66/BOTH-BACKEND/configs/loader"
)

type TelegramConfig struct {
	Token             string `validate:"required"`
	ConnectionTimeout time.Duration
}

type MongoConfig struct {
	URI      string `validate:"required"`
	Database string `validate:"required"`
}

type RedisConfig struct {
	Host         string `validate:"required"`
	DB           int
	User         string
	Password     string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	EventTTL     time.Duration
}

type CloudinaryConfig struct {
	CloudName string `validate:"required"`
	APIKey    string `validate:"required"`
	APISecret string `validate:"required"`
	Folder    string
}

type HTTPConfig struct {
	Port          string `validate:"required"`
	MetricsPort   string `validate:"required"`
	PublicBaseURL string `validate:"required,url"`
}

type Config struct {
	TG   TelegramConfig
	DB   MongoConfig
	RD   RedisConfig
	CD   CloudinaryConfig
	HTTP HTTPConfig
	Env  string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 30*time.Second),
		},
		DB: MongoConfig{
			URI:      envs["MONGO_URI"],
			Database: envs["MONGO_DATABASE"],
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			EventTTL:     getEnvAsDuration(envs["REDIS_EVENT_TTL"], 5*time.Minute),
		},
		CD: CloudinaryConfig{
			CloudName: envs["CLOUDINARY_CLOUD_NAME"],
			APIKey:    envs["CLOUDINARY_API_KEY"],
			APISecret: envs["CLOUDINARY_API_SECRET"],
			Folder:    envs["CLOUDINARY_FOLDER"],
		},
		HTTP: HTTPConfig{
			Port:          getEnvOrDefault(envs["PORT"], "3000"),
			MetricsPort:   getEnvOrDefault(envs["METRICS_PORT"], "8080"),
			PublicBaseURL: envs["PUBLIC_BASE_URL"],
		},
		Env: *env,
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func getEnvOrDefault(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s: invalid value %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s: invalid value %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
