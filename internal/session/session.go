package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/user/silant-service-api/internal/models"
)

// Session - сохранённая сессия пользователя
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// LoggedIn сообщает, есть ли активная сессия
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// HasRole проверяет роль сессии с нормализацией формата роли
func (s *Session) HasRole(required string) bool {
	if !s.LoggedIn() {
		return false
	}
	return models.HasRole(s.Role, required)
}

// Store хранит сессию в JSON-файле
type Store struct {
	path string
}

// NewStore создаёт хранилище сессии по указанному пути
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load читает сессию с диска.
// Отсутствующий или повреждённый файл - не ошибка: возвращается пустая сессия.
func (st *Store) Load() *Session {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return &Session{}
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Повреждённый файл отбрасываем
		_ = os.Remove(st.path)
		return &Session{}
	}
	s.Role = models.NormalizeRole(s.Role)
	return &s
}

// Save записывает сессию на диск
func (st *Store) Save(s *Session) error {
	if s == nil {
		return errors.New("пустая сессия")
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0o600)
}

// Clear удаляет сохранённую сессию
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
