package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Redis     RedisConfig     `yaml:"redis"`
	DriverBox DriverBoxConfig `yaml:"driverbox"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type KafkaConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	SubmissionsTopic string `yaml:"submissions_topic_name"`
	// Предел одного сообщения для producer, consumer и топика. 0: 20 МБ.
	MaxMessageBytes int64 `yaml:"max_message_bytes"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DriverBoxConfig struct {
	HTTPAddr           string `yaml:"http_addr"`
	WorkerHTTPAddr     string `yaml:"worker_http_addr"`
	KafkaConsumerGroup string `yaml:"kafka_consumer_group"`

	DefaultLanguage string `yaml:"default_language"` // "pt" | "en" | "es"
	DriverName      string `yaml:"driver_name"`
	// Путь к YAML со списком доставок. Пусто: встроенный список.
	SeedPath string `yaml:"seed_path"`

	SessionTTLSeconds int `yaml:"session_ttl_seconds"`

	SubmitMode               string `yaml:"submit_mode"` // "simulated" | "kafka"
	SubmitLatencyMillis      int    `yaml:"submit_latency_ms"`
	SubmitRateLimitPerMinute int    `yaml:"submit_rate_limit_per_minute"`

	CameraMode    string `yaml:"camera_mode"` // "fake" | "snapshot"
	CameraBaseURL string `yaml:"camera_base_url"`
	CameraAPIKey  string `yaml:"camera_api_key"`
}

func (c DatabaseConfig) ConnString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, sslMode)
}

func LoadConfig(filename string) (*Config, error) {
	// .env опционален, ошибки чтения игнорируем
	_ = godotenv.Load()

	data, err := os.ReadFile(os.ExpandEnv(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
