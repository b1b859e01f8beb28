package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/silant-service-api/internal/models"
	"github.com/user/silant-service-api/internal/repository"
	"github.com/user/silant-service-api/internal/services/passport"
)

// Handler - обработчики HTTP-запросов
type Handler struct {
	repo     *repository.Repository
	passport *passport.Generator
}

// NewHandler создаёт новый обработчик
func NewHandler(repo *repository.Repository) *Handler {
	return &Handler{
		repo:     repo,
		passport: passport.NewGenerator(),
	}
}

// vinAlphabet - допустимые символы VIN (без I, O, Q)
const vinAlphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

// ValidateVIN проверяет VIN: ровно 17 символов, верхний регистр, без I/O/Q
func ValidateVIN(vin string) bool {
	if len(vin) != 17 {
		return false
	}
	for _, r := range vin {
		if !strings.ContainsRune(vinAlphabet, r) {
			return false
		}
	}
	return true
}

// CarResponse - строка списка машин с денормализованными метками справочников
type CarResponse struct {
	ID                  uint   `json:"id"`
	VIN                 string `json:"vin"`
	VehicleModelID      uint   `json:"vehicle_model_id"`
	VehicleModel        string `json:"vehicle_model"`
	EngineModelID       uint   `json:"engine_model_id"`
	EngineModel         string `json:"engine_model"`
	EngineNumber        string `json:"engine_number"`
	TransmissionModelID uint   `json:"transmission_model_id"`
	TransmissionModel   string `json:"transmission_model"`
	TransmissionNumber  string `json:"transmission_number"`
	DriveAxleModelID    uint   `json:"drive_axle_model_id"`
	DriveAxle           string `json:"drive_axle"`
	DriveAxleNumber     string `json:"drive_axle_number"`
	SteeringAxleModelID uint   `json:"steering_axle_model_id"`
	SteeringAxle        string `json:"steering_axle"`
	SteeringAxleNumber  string `json:"steering_axle_number"`
	DeliveryAgreement   string `json:"delivery_agreement"`
	ShipmentDate        string `json:"shipment_date"`
	Recipient           string `json:"recipient"`
	DeliveryAddress     string `json:"delivery_address"`
	Equipment           string `json:"equipment"`
	ClientID            uint   `json:"client_id"`
	Client              string `json:"client"`
	ServiceCompanyID    uint   `json:"service_company_id"`
	ServiceCompany      string `json:"service_company"`
}

// carResponse собирает строку ответа из машины с предзагруженными связями
func carResponse(car *models.Car) CarResponse {
	return CarResponse{
		ID:                  car.ID,
		VIN:                 car.VIN,
		VehicleModelID:      car.VehicleModelID,
		VehicleModel:        car.VehicleModel.Name,
		EngineModelID:       car.EngineModelID,
		EngineModel:         car.EngineModel.Name,
		EngineNumber:        car.EngineNumber,
		TransmissionModelID: car.TransmissionModelID,
		TransmissionModel:   car.TransmissionModel.Name,
		TransmissionNumber:  car.TransmissionNumber,
		DriveAxleModelID:    car.DriveAxleModelID,
		DriveAxle:           car.DriveAxleModel.Name,
		DriveAxleNumber:     car.DriveAxleNumber,
		SteeringAxleModelID: car.SteeringAxleModelID,
		SteeringAxle:        car.SteeringAxleModel.Name,
		SteeringAxleNumber:  car.SteeringAxleNumber,
		DeliveryAgreement:   car.DeliveryAgreement,
		ShipmentDate:        car.ShipmentDate,
		Recipient:           car.Recipient,
		DeliveryAddress:     car.DeliveryAddress,
		Equipment:           car.Equipment,
		ClientID:            car.ClientID,
		Client:              car.Client.Name,
		ServiceCompanyID:    car.ServiceCompanyID,
		ServiceCompany:      car.ServiceCompany.Name,
	}
}

// GetCars возвращает список всех машин
func (h *Handler) GetCars(c *gin.Context) {
	cars, err := h.repo.GetAllCars()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при получении списка машин: " + err.Error()})
		return
	}

	rows := make([]CarResponse, 0, len(cars))
	for i := range cars {
		rows = append(rows, carResponse(&cars[i]))
	}
	c.JSON(http.StatusOK, rows)
}

// CarPublicResponse - публичная карточка машины (без данных о поставке)
type CarPublicResponse struct {
	VIN                string `json:"vin"`
	VehicleModel       string `json:"vehicle_model"`
	EngineModel        string `json:"engine_model"`
	EngineNumber       string `json:"engine_number"`
	TransmissionModel  string `json:"transmission_model"`
	TransmissionNumber string `json:"transmission_number"`
	DriveAxle          string `json:"drive_axle"`
	DriveAxleNumber    string `json:"drive_axle_number"`
	SteeringAxle       string `json:"steering_axle"`
	SteeringAxleNumber string `json:"steering_axle_number"`
}

// GetCarByVIN возвращает публичную карточку машины по VIN
func (h *Handler) GetCarByVIN(c *gin.Context) {
	vin := c.Param("vin")

	car, err := h.repo.GetCarByVIN(vin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if car == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Машина с указанным VIN не найдена"})
		return
	}

	c.JSON(http.StatusOK, CarPublicResponse{
		VIN:                car.VIN,
		VehicleModel:       car.VehicleModel.Name,
		EngineModel:        car.EngineModel.Name,
		EngineNumber:       car.EngineNumber,
		TransmissionModel:  car.TransmissionModel.Name,
		TransmissionNumber: car.TransmissionNumber,
		DriveAxle:          car.DriveAxleModel.Name,
		DriveAxleNumber:    car.DriveAxleNumber,
		SteeringAxle:       car.SteeringAxleModel.Name,
		SteeringAxleNumber: car.SteeringAxleNumber,
	})
}

// CarCreateRequest - запрос на создание машины
type CarCreateRequest struct {
	VIN                 string `json:"vin" binding:"required"`
	VehicleModelID      uint   `json:"vehicle_model_id" binding:"required"`
	EngineModelID       uint   `json:"engine_model_id" binding:"required"`
	EngineNumber        string `json:"engine_number"`
	TransmissionModelID uint   `json:"transmission_model_id" binding:"required"`
	TransmissionNumber  string `json:"transmission_number"`
	DriveAxleModelID    uint   `json:"drive_axle_model_id" binding:"required"`
	DriveAxleNumber     string `json:"drive_axle_number"`
	SteeringAxleModelID uint   `json:"steering_axle_model_id" binding:"required"`
	SteeringAxleNumber  string `json:"steering_axle_number"`
	DeliveryAgreement   string `json:"delivery_agreement"`
	ShipmentDate        string `json:"shipment_date" binding:"required"`
	Recipient           string `json:"recipient"`
	DeliveryAddress     string `json:"delivery_address"`
	Equipment           string `json:"equipment"`
	ClientID            uint   `json:"client_id" binding:"required"`
	ServiceCompanyID    uint   `json:"service_company_id" binding:"required"`
}

// CreateCar создаёт машину (только manager)
func (h *Handler) CreateCar(c *gin.Context) {
	var req CarCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Заполните все обязательные поля"})
		return
	}

	vin := strings.ToUpper(strings.TrimSpace(req.VIN))
	if !ValidateVIN(vin) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "VIN должен содержать ровно 17 символов (без I, O, Q)"})
		return
	}
	if !validDate(req.ShipmentDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Неверный формат даты. Используйте YYYY-MM-DD"})
		return
	}

	car := models.Car{
		VIN:                 vin,
		VehicleModelID:      req.VehicleModelID,
		EngineModelID:       req.EngineModelID,
		EngineNumber:        req.EngineNumber,
		TransmissionModelID: req.TransmissionModelID,
		TransmissionNumber:  req.TransmissionNumber,
		DriveAxleModelID:    req.DriveAxleModelID,
		DriveAxleNumber:     req.DriveAxleNumber,
		SteeringAxleModelID: req.SteeringAxleModelID,
		SteeringAxleNumber:  req.SteeringAxleNumber,
		DeliveryAgreement:   req.DeliveryAgreement,
		ShipmentDate:        req.ShipmentDate,
		Recipient:           req.Recipient,
		DeliveryAddress:     req.DeliveryAddress,
		Equipment:           req.Equipment,
		ClientID:            req.ClientID,
		ServiceCompanyID:    req.ServiceCompanyID,
	}

	if err := h.repo.CreateCar(&car); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при создании машины: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, carResponse(&car))
}

// GetCarPassportPDF отдаёт паспорт машины в PDF
func (h *Handler) GetCarPassportPDF(c *gin.Context) {
	vin := c.Param("vin")

	car, err := h.repo.GetCarByVIN(vin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка сервера"})
		return
	}
	if car == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Машина с указанным VIN не найдена"})
		return
	}

	pdf, err := h.passport.GenerateCarPassportPDF(car)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка генерации PDF: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="passport-`+car.VIN+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetClients возвращает список клиентов для селекта
func (h *Handler) GetClients(c *gin.Context) {
	clients, err := h.repo.GetAllClients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ошибка при получении списка клиентов"})
		return
	}

	rows := make([]gin.H, 0, len(clients))
	for _, cl := range clients {
		rows = append(rows, gin.H{"id": cl.ID, "name": cl.Name})
	}
	c.JSON(http.StatusOK, rows)
}
