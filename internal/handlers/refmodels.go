package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/silant-service-api/internal/models"
	"github.com/user/silant-service-api/internal/repository"
)

// Справочники, которые разрешено редактировать роли service
// (всё, на что ссылаются рекламации)
var serviceEditableTypes = map[string]bool{
	"failure-node":    true,
	"recovery-method": true,
	"service-company": true,
}

// ListRefModels возвращает записи справочника для селектов
func (h *Handler) ListRefModels(c *gin.Context) {
	modelType := c.Param("type")
	if !repository.IsRefModelType(modelType) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Неизвестный справочник"})
		return
	}

	items, err := h.repo.ListRefModels(modelType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при получении справочника"})
		return
	}

	rows := make([]gin.H, 0, len(items))
	for _, item := range items {
		rows = append(rows, gin.H{"id": item.ID, "name": item.Name})
	}
	c.JSON(http.StatusOK, rows)
}

// GetRefModel возвращает карточку записи справочника
func (h *Handler) GetRefModel(c *gin.Context) {
	modelType := c.Param("type")
	if !repository.IsRefModelType(modelType) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Неизвестный справочник"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Неверный ID"})
		return
	}

	item, err := h.repo.GetRefModel(modelType, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Запись справочника не найдена"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// RefModelUpdateRequest - запрос на частичное обновление записи справочника
type RefModelUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateRefModel обновляет name/description записи справочника.
// Manager редактирует все справочники, service - только рекламационные.
func (h *Handler) UpdateRefModel(c *gin.Context) {
	modelType := c.Param("type")
	if !repository.IsRefModelType(modelType) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Неизвестный справочник"})
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleManager && !(role == models.RoleService && serviceEditableTypes[modelType]) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Доступ запрещён. Недостаточно прав."})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Неверный ID"})
		return
	}

	var req RefModelUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Неверный формат запроса"})
		return
	}
	if req.Name != nil && *req.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Название не может быть пустым"})
		return
	}

	existing, err := h.repo.GetRefModel(modelType, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Запись справочника не найдена"})
		return
	}

	item, err := h.repo.UpdateRefModel(modelType, uint(id), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сохранения"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteRefModel удаляет запись справочника (только manager)
func (h *Handler) DeleteRefModel(c *gin.Context) {
	modelType := c.Param("type")
	if !repository.IsRefModelType(modelType) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Неизвестный справочник"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Неверный ID"})
		return
	}

	if err := h.repo.DeleteRefModel(modelType, uint(id)); err != nil {
		if errors.Is(err, repository.ErrRefModelInUse) {
			c.JSON(http.StatusConflict, gin.H{
				"detail": "Невозможно удалить запись: на неё ссылаются существующие данные. Сначала отвяжите их.",
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "Запись справочника не найдена"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
