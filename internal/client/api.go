package client

import (
	"context"
	"fmt"
)

// LoginResult - ответ сервера на вход
type LoginResult struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// Login выполняет вход и запоминает полученный токен
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.post(ctx, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// CarRow - строка списка машин
type CarRow struct {
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

// Cars возвращает список всех машин
func (c *Client) Cars(ctx context.Context) ([]CarRow, error) {
	var rows []CarRow
	if err := c.get(ctx, "/api/cars", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CarCreate - тело запроса на создание машины
type CarCreate struct {
	VIN                 string `json:"vin"`
	VehicleModelID      uint   `json:"vehicle_model_id"`
	EngineModelID       uint   `json:"engine_model_id"`
	EngineNumber        string `json:"engine_number,omitempty"`
	TransmissionModelID uint   `json:"transmission_model_id"`
	TransmissionNumber  string `json:"transmission_number,omitempty"`
	DriveAxleModelID    uint   `json:"drive_axle_model_id"`
	DriveAxleNumber     string `json:"drive_axle_number,omitempty"`
	SteeringAxleModelID uint   `json:"steering_axle_model_id"`
	SteeringAxleNumber  string `json:"steering_axle_number,omitempty"`
	DeliveryAgreement   string `json:"delivery_agreement,omitempty"`
	ShipmentDate        string `json:"shipment_date"`
	Recipient           string `json:"recipient,omitempty"`
	DeliveryAddress     string `json:"delivery_address,omitempty"`
	Equipment           string `json:"equipment,omitempty"`
	ClientID            uint   `json:"client_id"`
	ServiceCompanyID    uint   `json:"service_company_id"`
}

// CreateCar создаёт машину и возвращает каноническую запись сервера
func (c *Client) CreateCar(ctx context.Context, req CarCreate) (*CarRow, error) {
	var row CarRow
	if err := c.post(ctx, "/api/cars", req, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// CarPublic - публичная карточка машины для поиска по VIN без входа
type CarPublic struct {
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

// CarByVIN возвращает публичную карточку машины
func (c *Client) CarByVIN(ctx context.Context, vin string) (*CarPublic, error) {
	var car CarPublic
	if err := c.get(ctx, "/api/cars/"+vin, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// MaintenanceRow - строка журнала ТО
type MaintenanceRow struct {
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

// Maintenance возвращает журнал ТО
func (c *Client) Maintenance(ctx context.Context) ([]MaintenanceRow, error) {
	var rows []MaintenanceRow
	if err := c.get(ctx, "/api/maintenance", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MaintenanceCreate - тело запроса на создание записи ТО
type MaintenanceCreate struct {
	CarID             uint   `json:"car_id"`
	MaintenanceTypeID uint   `json:"maintenance_type_id"`
	MaintenanceDate   string `json:"maintenance_date"`
	OrderNumber       string `json:"order_number,omitempty"`
	OrderDate         string `json:"order_date"`
	ServiceCompanyID  uint   `json:"service_company_id"`
}

// CreateMaintenance создаёт запись ТО
func (c *Client) CreateMaintenance(ctx context.Context, req MaintenanceCreate) (*MaintenanceRow, error) {
	var row MaintenanceRow
	if err := c.post(ctx, "/api/maintenance", req, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// ComplaintRow - строка журнала рекламаций
type ComplaintRow struct {
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

// Complaints возвращает журнал рекламаций
func (c *Client) Complaints(ctx context.Context) ([]ComplaintRow, error) {
	var rows []ComplaintRow
	if err := c.get(ctx, "/api/complaints", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ComplaintCreate - тело запроса на создание рекламации
type ComplaintCreate struct {
	CarID              uint   `json:"car_id"`
	DateOfFailure      string `json:"date_of_failure"`
	OperatingTime      string `json:"operating_time,omitempty"`
	NodeFailureID      uint   `json:"node_failure_id"`
	DescriptionFailure string `json:"description_failure,omitempty"`
	RecoveryMethodID   uint   `json:"recovery_method_id"`
	UsedSpareParts     string `json:"used_spare_parts,omitempty"`
	DateRecovery       string `json:"date_recovery,omitempty"`
	ServiceCompanyID   uint   `json:"service_company_id"`
}

// CreateComplaint создаёт рекламацию
func (c *Client) CreateComplaint(ctx context.Context, req ComplaintCreate) (*ComplaintRow, error) {
	var row ComplaintRow
	if err := c.post(ctx, "/api/complaints", req, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// RefModel - карточка записи справочника
type RefModel struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RefOption - элемент справочника для селектов
type RefOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RefModels возвращает записи справочника указанного типа
func (c *Client) RefModels(ctx context.Context, modelType string) ([]RefOption, error) {
	var rows []RefOption
	if err := c.get(ctx, "/api/models/"+modelType, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRefModel возвращает карточку записи справочника
func (c *Client) GetRefModel(ctx context.Context, modelType string, id uint) (*RefModel, error) {
	var item RefModel
	if err := c.get(ctx, fmt.Sprintf("/api/models/%s/%d", modelType, id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateRefModel обновляет запись справочника, nil-поля не меняются
func (c *Client) UpdateRefModel(ctx context.Context, modelType string, id uint, name, description *string) (*RefModel, error) {
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if description != nil {
		body["description"] = *description
	}
	var item RefModel
	if err := c.put(ctx, fmt.Sprintf("/api/models/%s/%d", modelType, id), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteRefModel удаляет запись справочника
func (c *Client) DeleteRefModel(ctx context.Context, modelType string, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/models/%s/%d", modelType, id))
}

// Clients возвращает список клиентов
func (c *Client) Clients(ctx context.Context) ([]RefOption, error) {
	var rows []RefOption
	if err := c.get(ctx, "/api/models/clients", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
