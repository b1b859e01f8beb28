package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/silant-service-api/internal/models"
	"github.com/user/silant-service-api/internal/repository"
)

// AuthHandler - обработчики авторизации
type AuthHandler struct {
	repo *repository.Repository
}

// NewAuthHandler создаёт новый обработчик авторизации
func NewAuthHandler(repo *repository.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

// LoginRequest - запрос на авторизацию
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login проверяет логин и пароль и выдаёт JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Введите имя пользователя и пароль"})
		return
	}

	username := strings.TrimSpace(req.Username)

	user, err := h.repo.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if user == nil || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Неверное имя пользователя или пароль"})
		return
	}

	// Роль нормализуется на границе: дальше по коду сравнения идут
	// только с каноническими значениями
	role := models.NormalizeRole(user.Role)

	token, err := GenerateJWT(user.ID, user.Username, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка генерации токена"})
		return
	}

	var name string
	if user.Client != nil {
		name = user.Client.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"name":     name,
		"role":     role,
		"token":    token,
	})
}

// GetCurrentUser возвращает данные текущего пользователя
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Не авторизован"})
		return
	}

	user, err := h.repo.GetUserByID(userID.(uint))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Пользователь не найден"})
		return
	}

	var name string
	if user.Client != nil {
		name = user.Client.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"name":     name,
		"role":     models.NormalizeRole(user.Role),
	})
}
