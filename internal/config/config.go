package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config - основная конфигурация приложения
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig - настройки HTTP-сервера
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "postgres" или "sqlite"
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"` // путь к файлу sqlite
}

// AuthConfig - настройки авторизации
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// Лимит запросов на /api/login: запросов в секунду и burst
	LoginRateLimit float64 `yaml:"login_rate_limit"`
	LoginRateBurst int     `yaml:"login_rate_burst"`
}

// Load загружает конфигурацию из YAML-файла
func Load(path string) (*Config, error) {
	// .env подхватывается при наличии, отсутствие файла не ошибка
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Переопределение из переменных окружения
	if envPort := os.Getenv("PORT"); envPort != "" {
		cfg.Server.Port = envPort
	}
	if envDBHost := os.Getenv("DB_HOST"); envDBHost != "" {
		cfg.Database.Host = envDBHost
	}
	if envSecret := os.Getenv("JWT_SECRET"); envSecret != "" {
		cfg.Auth.JWTSecret = envSecret
	}

	if cfg.Auth.LoginRateLimit == 0 {
		cfg.Auth.LoginRateLimit = 1
	}
	if cfg.Auth.LoginRateBurst == 0 {
		cfg.Auth.LoginRateBurst = 5
	}

	return &cfg, nil
}
