package clientcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config - настройки терминального клиента
type Config struct {
	ServerURL   string // адрес API-сервера
	SessionPath string // путь к файлу сессии
	PerPage     int    // строк на страницу по умолчанию
}

const (
	defaultConfigPath  = "~/.config/silant/config.toml"
	defaultServerURL   = "http://127.0.0.1:8080"
	defaultSessionPath = "~/.config/silant/session.json"
	defaultPerPage     = 10
)

// PerPageOptions - допустимые размеры страницы
var PerPageOptions = []int{10, 25, 50, 100}

// Load читает конфигурацию клиента, при отсутствии файла возвращает значения по умолчанию
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerURL:   defaultServerURL,
		SessionPath: mustExpand(defaultSessionPath),
		PerPage:     defaultPerPage,
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("чтение конфигурации: %w", err)
	}

	var raw struct {
		ServerURL   string `toml:"server_url"`
		SessionPath string `toml:"session_path"`
		PerPage     int    `toml:"per_page"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("разбор конфигурации: %w", err)
	}

	if s := strings.TrimSpace(raw.ServerURL); s != "" {
		cfg.ServerURL = s
	}
	if s := strings.TrimSpace(raw.SessionPath); s != "" {
		cfg.SessionPath = mustExpand(s)
	}
	if validPerPage(raw.PerPage) {
		cfg.PerPage = raw.PerPage
	}

	return cfg, nil
}

func validPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("пустой путь")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("определение домашнего каталога: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
