package models

import (
	"time"
)

// Даты хранятся строками в формате YYYY-MM-DD: именно в этом виде они
// ходят по API и фильтруются клиентом.
const DateLayout = "2006-01-02"

// VehicleModel - модель техники (справочник)
type VehicleModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// EngineModel - модель двигателя (справочник)
type EngineModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TransmissionModel - модель трансмиссии (справочник)
type TransmissionModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// DriveAxleModel - модель ведущего моста (справочник)
type DriveAxleModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// SteeringAxleModel - модель управляемого моста (справочник)
type SteeringAxleModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// MaintenanceType - вид технического обслуживания (справочник)
type MaintenanceType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// RecoveryMethod - способ восстановления (справочник)
type RecoveryMethod struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// FailureNode - узел отказа (справочник)
type FailureNode struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// ServiceCompany - сервисная компания (справочник)
type ServiceCompany struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Client - клиент (организация-покупатель техники)
type Client struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

// RefModel - универсальное представление записи справочника {id, name, description}.
// Через него идёт обобщённый доступ к справочным таблицам (db.Table).
type RefModel struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Car - машина (паспорт единицы техники)
type Car struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	VIN                 string `gorm:"column:vin;size:17;uniqueIndex;not null" json:"vin"`
	VehicleModelID      uint   `gorm:"not null" json:"vehicle_model_id"`
	EngineModelID       uint   `gorm:"not null" json:"engine_model_id"`
	EngineNumber        string `gorm:"size:255;not null" json:"engine_number"`
	TransmissionModelID uint   `gorm:"not null" json:"transmission_model_id"`
	TransmissionNumber  string `gorm:"size:255;not null" json:"transmission_number"`
	DriveAxleModelID    uint   `gorm:"not null" json:"drive_axle_model_id"`
	DriveAxleNumber     string `gorm:"size:255;not null" json:"drive_axle_number"`
	SteeringAxleModelID uint   `gorm:"not null" json:"steering_axle_model_id"`
	SteeringAxleNumber  string `gorm:"size:255;not null" json:"steering_axle_number"`
	DeliveryAgreement   string `gorm:"size:255" json:"delivery_agreement"`
	ShipmentDate        string `gorm:"size:10;not null" json:"shipment_date"` // YYYY-MM-DD
	Recipient           string `gorm:"size:255" json:"recipient"`
	DeliveryAddress     string `gorm:"size:255" json:"delivery_address"`
	Equipment           string `gorm:"size:255" json:"equipment"`
	ClientID            uint   `gorm:"not null" json:"client_id"`
	ServiceCompanyID    uint   `gorm:"not null" json:"service_company_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	VehicleModel      VehicleModel      `gorm:"foreignKey:VehicleModelID" json:"-"`
	EngineModel       EngineModel       `gorm:"foreignKey:EngineModelID" json:"-"`
	TransmissionModel TransmissionModel `gorm:"foreignKey:TransmissionModelID" json:"-"`
	DriveAxleModel    DriveAxleModel    `gorm:"foreignKey:DriveAxleModelID" json:"-"`
	SteeringAxleModel SteeringAxleModel `gorm:"foreignKey:SteeringAxleModelID" json:"-"`
	Client            Client            `gorm:"foreignKey:ClientID" json:"-"`
	ServiceCompany    ServiceCompany    `gorm:"foreignKey:ServiceCompanyID" json:"-"`
}

// Maintenance - запись о проведённом ТО
type Maintenance struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	CarID             uint   `gorm:"not null" json:"car_id"`
	MaintenanceTypeID uint   `gorm:"not null" json:"maintenance_type_id"`
	MaintenanceDate   string `gorm:"size:10;not null" json:"maintenance_date"` // YYYY-MM-DD
	OrderNumber       string `gorm:"size:10" json:"order_number"`              // № заказ-наряда
	OrderDate         string `gorm:"size:10;not null" json:"order_date"`       // YYYY-MM-DD
	ServiceCompanyID  uint   `gorm:"not null" json:"service_company_id"`

	Car             Car             `gorm:"foreignKey:CarID" json:"-"`
	MaintenanceType MaintenanceType `gorm:"foreignKey:MaintenanceTypeID" json:"-"`
	ServiceCompany  ServiceCompany  `gorm:"foreignKey:ServiceCompanyID" json:"-"`
}

// Complaint - рекламация (гарантийный отказ)
type Complaint struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CarID              uint   `gorm:"not null" json:"car_id"`
	DateOfFailure      string `gorm:"size:10;not null" json:"date_of_failure"` // YYYY-MM-DD
	OperatingTime      string `gorm:"size:255" json:"operating_time"`          // наработка, м/час
	NodeFailureID      uint   `gorm:"not null" json:"node_failure_id"`
	DescriptionFailure string `gorm:"size:255" json:"description_failure"`
	RecoveryMethodID   uint   `gorm:"not null" json:"recovery_method_id"`
	UsedSpareParts     string `gorm:"size:255" json:"used_spare_parts"`
	DateRecovery       string `gorm:"size:10" json:"date_recovery"` // YYYY-MM-DD, может быть пустой
	EquipmentDowntime  string `gorm:"size:255" json:"equipment_downtime"`
	ServiceCompanyID   uint   `gorm:"not null" json:"service_company_id"`
	// Денормализованная метка модели машины: фиксируется при создании,
	// сверяется ночной задачей после переименований справочника.
	VehicleModelName string `gorm:"size:255" json:"vehicle_model"`

	Car            Car            `gorm:"foreignKey:CarID" json:"-"`
	NodeFailure    FailureNode    `gorm:"foreignKey:NodeFailureID" json:"-"`
	RecoveryMethod RecoveryMethod `gorm:"foreignKey:RecoveryMethodID" json:"-"`
	ServiceCompany ServiceCompany `gorm:"foreignKey:ServiceCompanyID" json:"-"`
}
