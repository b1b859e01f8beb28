package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/silant-service-api/internal/models"
)

// validDate проверяет дату формата YYYY-MM-DD
func validDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// MaintenanceResponse - строка журнала ТО
type MaintenanceResponse struct {
	ID                uint   `json:"id"`
	CarID             uint   `json:"car_id"`
	VIN               string `json:"vin"`
	MaintenanceTypeID uint   `json:"maintenance_type_id"`
	MaintenanceType   string `json:"maintenance_type"`
	MaintenanceDate   string `json:"maintenance_date"`
	OrderNumber       string `json:"order_number"`
	OrderDate         string `json:"order_date"`
	ServiceCompanyID  uint   `json:"service_company_id"`
	ServiceCompany    string `json:"service_company"`
}

func maintenanceResponse(m *models.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:                m.ID,
		CarID:             m.CarID,
		VIN:               m.Car.VIN,
		MaintenanceTypeID: m.MaintenanceTypeID,
		MaintenanceType:   m.MaintenanceType.Name,
		MaintenanceDate:   m.MaintenanceDate,
		OrderNumber:       m.OrderNumber,
		OrderDate:         m.OrderDate,
		ServiceCompanyID:  m.ServiceCompanyID,
		ServiceCompany:    m.ServiceCompany.Name,
	}
}

// GetMaintenance возвращает журнал ТО
func (h *Handler) GetMaintenance(c *gin.Context) {
	items, err := h.repo.GetAllMaintenance()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при получении списка ТО: " + err.Error()})
		return
	}

	rows := make([]MaintenanceResponse, 0, len(items))
	for i := range items {
		rows = append(rows, maintenanceResponse(&items[i]))
	}
	c.JSON(http.StatusOK, rows)
}

// MaintenanceCreateRequest - запрос на создание записи ТО
type MaintenanceCreateRequest struct {
	CarID             uint   `json:"car_id" binding:"required"`
	MaintenanceTypeID uint   `json:"maintenance_type_id" binding:"required"`
	MaintenanceDate   string `json:"maintenance_date" binding:"required"`
	OrderNumber       string `json:"order_number"`
	OrderDate         string `json:"order_date" binding:"required"`
	ServiceCompanyID  uint   `json:"service_company_id" binding:"required"`
}

// CreateMaintenance создаёт запись ТО (manager или service)
func (h *Handler) CreateMaintenance(c *gin.Context) {
	var req MaintenanceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Заполните все обязательные поля"})
		return
	}

	if !validDate(req.MaintenanceDate) || !validDate(req.OrderDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Неверный формат даты. Используйте YYYY-MM-DD"})
		return
	}

	car, err := h.repo.GetCarByID(req.CarID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if car == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указан несуществующий car_id"})
		return
	}

	if item, err := h.repo.GetRefModel("maintenance-types", req.MaintenanceTypeID); err != nil || item == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указан несуществующий maintenance_type_id"})
		return
	}
	if item, err := h.repo.GetRefModel("service-company", req.ServiceCompanyID); err != nil || item == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указана несуществующая сервисная компания"})
		return
	}

	m := models.Maintenance{
		CarID:             req.CarID,
		MaintenanceTypeID: req.MaintenanceTypeID,
		MaintenanceDate:   req.MaintenanceDate,
		OrderNumber:       req.OrderNumber,
		OrderDate:         req.OrderDate,
		ServiceCompanyID:  req.ServiceCompanyID,
	}

	if err := h.repo.CreateMaintenance(&m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при создании записи ТО: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, maintenanceResponse(&m))
}
