package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/silant-service-api/internal/models"
)

// ComplaintResponse - строка журнала рекламаций
type ComplaintResponse struct {
	ID                 uint   `json:"id"`
	CarID              uint   `json:"car_id"`
	VIN                string `json:"vin"`
	DateOfFailure      string `json:"date_of_failure"`
	OperatingTime      string `json:"operating_time"`
	NodeFailureID      uint   `json:"node_failure_id"`
	NodeFailure        string `json:"node_failure"`
	DescriptionFailure string `json:"description_failure"`
	RecoveryMethodID   uint   `json:"recovery_method_id"`
	RecoveryMethod     string `json:"recovery_method"`
	UsedSpareParts     string `json:"used_spare_parts"`
	DateRecovery       string `json:"date_recovery"`
	EquipmentDowntime  string `json:"equipment_downtime"`
	ServiceCompanyID   uint   `json:"service_company_id"`
	ServiceCompany     string `json:"service_company"`
	VehicleModel       string `json:"vehicle_model"`
}

func complaintResponse(cm *models.Complaint) ComplaintResponse {
	// Простой пересчитывается при выдаче: даты могли быть исправлены
	downtime := cm.EquipmentDowntime
	if cm.DateRecovery != "" {
		downtime = models.CalculateDowntime(cm.DateOfFailure, cm.DateRecovery)
	}

	return ComplaintResponse{
		ID:                 cm.ID,
		CarID:              cm.CarID,
		VIN:                cm.Car.VIN,
		DateOfFailure:      cm.DateOfFailure,
		OperatingTime:      cm.OperatingTime,
		NodeFailureID:      cm.NodeFailureID,
		NodeFailure:        cm.NodeFailure.Name,
		DescriptionFailure: cm.DescriptionFailure,
		RecoveryMethodID:   cm.RecoveryMethodID,
		RecoveryMethod:     cm.RecoveryMethod.Name,
		UsedSpareParts:     cm.UsedSpareParts,
		DateRecovery:       cm.DateRecovery,
		EquipmentDowntime:  downtime,
		ServiceCompanyID:   cm.ServiceCompanyID,
		ServiceCompany:     cm.ServiceCompany.Name,
		VehicleModel:       cm.VehicleModelName,
	}
}

// GetComplaints возвращает журнал рекламаций
func (h *Handler) GetComplaints(c *gin.Context) {
	items, err := h.repo.GetAllComplaints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при получении списка рекламаций: " + err.Error()})
		return
	}

	rows := make([]ComplaintResponse, 0, len(items))
	for i := range items {
		rows = append(rows, complaintResponse(&items[i]))
	}
	c.JSON(http.StatusOK, rows)
}

// ComplaintCreateRequest - запрос на создание рекламации
type ComplaintCreateRequest struct {
	CarID              uint   `json:"car_id" binding:"required"`
	DateOfFailure      string `json:"date_of_failure" binding:"required"`
	OperatingTime      string `json:"operating_time"`
	NodeFailureID      uint   `json:"node_failure_id" binding:"required"`
	DescriptionFailure string `json:"description_failure"`
	RecoveryMethodID   uint   `json:"recovery_method_id" binding:"required"`
	UsedSpareParts     string `json:"used_spare_parts"`
	DateRecovery       string `json:"date_recovery"`
	ServiceCompanyID   uint   `json:"service_company_id" binding:"required"`
}

// CreateComplaint создаёт рекламацию (manager или service)
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req ComplaintCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Заполните все обязательные поля"})
		return
	}

	if !validDate(req.DateOfFailure) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Неверный формат даты. Используйте YYYY-MM-DD"})
		return
	}

	// Дата восстановления не может быть раньше даты отказа
	if req.DateRecovery != "" {
		if !validDate(req.DateRecovery) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Неверный формат даты. Используйте YYYY-MM-DD"})
			return
		}
		failure, _ := time.Parse(models.DateLayout, req.DateOfFailure)
		recovery, _ := time.Parse(models.DateLayout, req.DateRecovery)
		if recovery.Before(failure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Дата восстановления не может быть раньше даты отказа"})
			return
		}
	}

	// Проверка существования связанных объектов
	car, err := h.repo.GetCarByID(req.CarID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if car == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указан несуществующий car_id"})
		return
	}

	if item, err := h.repo.GetRefModel("failure-node", req.NodeFailureID); err != nil || item == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указан несуществующий node_failure_id"})
		return
	}
	if item, err := h.repo.GetRefModel("recovery-method", req.RecoveryMethodID); err != nil || item == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указан несуществующий recovery_method_id"})
		return
	}
	if item, err := h.repo.GetRefModel("service-company", req.ServiceCompanyID); err != nil || item == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Указана несуществующая сервисная компания"})
		return
	}

	cm := models.Complaint{
		CarID:              req.CarID,
		DateOfFailure:      req.DateOfFailure,
		OperatingTime:      req.OperatingTime,
		NodeFailureID:      req.NodeFailureID,
		DescriptionFailure: req.DescriptionFailure,
		RecoveryMethodID:   req.RecoveryMethodID,
		UsedSpareParts:     req.UsedSpareParts,
		DateRecovery:       req.DateRecovery,
		EquipmentDowntime:  models.CalculateDowntime(req.DateOfFailure, req.DateRecovery),
		ServiceCompanyID:   req.ServiceCompanyID,
		VehicleModelName:   car.VehicleModel.Name,
	}

	if err := h.repo.CreateComplaint(&cm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при создании рекламации: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, complaintResponse(&cm))
}
