package ui

import (
	"strconv"

	"github.com/user/silant-service-api/internal/client"
)

// FilterField - поле фильтрации вкладки
type FilterField struct {
	Key   string
	Label string
}

// Поля фильтров повторяют колонки таблиц

var carFilterFields = []FilterField{
	{Key: "vin", Label: "VIN"},
	{Key: "vehicle_model", Label: "Модель техники"},
	{Key: "engine_model", Label: "Модель двигателя"},
	{Key: "transmission_model", Label: "Модель трансмиссии"},
	{Key: "drive_axle", Label: "Модель ведущего моста"},
	{Key: "steering_axle", Label: "Модель управляемого моста"},
	{Key: "client", Label: "Клиент"},
	{Key: "service_company", Label: "Сервисная компания"},
}

var maintenanceFilterFields = []FilterField{
	{Key: "vin", Label: "VIN"},
	{Key: "maintenance_type", Label: "Вид ТО"},
	{Key: "maintenance_date", Label: "Дата проведения"},
	{Key: "order_number", Label: "Номер заказ-наряда"},
	{Key: "service_company", Label: "Сервисная компания"},
}

var complaintFilterFields = []FilterField{
	{Key: "vin", Label: "VIN"},
	{Key: "node_failure", Label: "Узел отказа"},
	{Key: "recovery_method", Label: "Способ восстановления"},
	{Key: "service_company", Label: "Сервисная компания"},
}

// Сортируемые столбцы вкладок; первый элемент - сортировка по умолчанию
// (дата по убыванию)

var carSortFields = []FilterField{
	{Key: "shipment_date", Label: "Дата отгрузки"},
	{Key: "vin", Label: "VIN"},
	{Key: "vehicle_model", Label: "Модель техники"},
	{Key: "client", Label: "Клиент"},
	{Key: "service_company", Label: "Сервисная компания"},
}

var maintenanceSortFields = []FilterField{
	{Key: "maintenance_date", Label: "Дата проведения"},
	{Key: "vin", Label: "VIN"},
	{Key: "maintenance_type", Label: "Вид ТО"},
	{Key: "order_date", Label: "Дата заказ-наряда"},
	{Key: "service_company", Label: "Сервисная компания"},
}

var complaintSortFields = []FilterField{
	{Key: "date_of_failure", Label: "Дата отказа"},
	{Key: "vin", Label: "VIN"},
	{Key: "node_failure", Label: "Узел отказа"},
	{Key: "recovery_method", Label: "Способ восстановления"},
	{Key: "date_recovery", Label: "Дата восстановления"},
	{Key: "service_company", Label: "Сервисная компания"},
}

// carField возвращает значение поля машины по ключу фильтра
func carField(row client.CarRow, key string) string {
	switch key {
	case "vin":
		return row.VIN
	case "vehicle_model":
		return row.VehicleModel
	case "engine_model":
		return row.EngineModel
	case "engine_number":
		return row.EngineNumber
	case "transmission_model":
		return row.TransmissionModel
	case "transmission_number":
		return row.TransmissionNumber
	case "drive_axle":
		return row.DriveAxle
	case "drive_axle_number":
		return row.DriveAxleNumber
	case "steering_axle":
		return row.SteeringAxle
	case "steering_axle_number":
		return row.SteeringAxleNumber
	case "shipment_date":
		return row.ShipmentDate
	case "client":
		return row.Client
	case "service_company":
		return row.ServiceCompany
	default:
		return ""
	}
}

// maintenanceField возвращает значение поля записи ТО по ключу фильтра
func maintenanceField(row client.MaintenanceRow, key string) string {
	switch key {
	case "vin":
		return row.VIN
	case "maintenance_type":
		return row.MaintenanceType
	case "maintenance_date":
		return row.MaintenanceDate
	case "order_number":
		return row.OrderNumber
	case "order_date":
		return row.OrderDate
	case "service_company":
		return row.ServiceCompany
	default:
		return ""
	}
}

// complaintField возвращает значение поля рекламации по ключу фильтра
func complaintField(row client.ComplaintRow, key string) string {
	switch key {
	case "vin":
		return row.VIN
	case "date_of_failure":
		return row.DateOfFailure
	case "operating_time":
		return row.OperatingTime
	case "node_failure":
		return row.NodeFailure
	case "description_failure":
		return row.DescriptionFailure
	case "recovery_method":
		return row.RecoveryMethod
	case "date_recovery":
		return row.DateRecovery
	case "equipment_downtime":
		return row.EquipmentDowntime
	case "service_company":
		return row.ServiceCompany
	case "vehicle_model":
		return row.VehicleModel
	default:
		return ""
	}
}

// RefLink - ссылка ячейки на запись справочника для открытия карточки
type RefLink struct {
	Type string
	ID   uint
	Name string
}

// carRefLinks возвращает ссылки строки машин на справочники
func carRefLinks(row client.CarRow) []RefLink {
	return []RefLink{
		{Type: "vehicle", ID: row.VehicleModelID, Name: row.VehicleModel},
		{Type: "engine", ID: row.EngineModelID, Name: row.EngineModel},
		{Type: "transmission", ID: row.TransmissionModelID, Name: row.TransmissionModel},
		{Type: "drive-axle", ID: row.DriveAxleModelID, Name: row.DriveAxle},
		{Type: "steering-axle", ID: row.SteeringAxleModelID, Name: row.SteeringAxle},
		{Type: "service-company", ID: row.ServiceCompanyID, Name: row.ServiceCompany},
	}
}

// maintenanceRefLinks возвращает ссылки строки ТО на справочники
func maintenanceRefLinks(row client.MaintenanceRow) []RefLink {
	return []RefLink{
		{Type: "maintenance-types", ID: row.MaintenanceTypeID, Name: row.MaintenanceType},
		{Type: "service-company", ID: row.ServiceCompanyID, Name: row.ServiceCompany},
	}
}

// complaintRefLinks возвращает ссылки строки рекламации на справочники
func complaintRefLinks(row client.ComplaintRow) []RefLink {
	return []RefLink{
		{Type: "failure-node", ID: row.NodeFailureID, Name: row.NodeFailure},
		{Type: "recovery-method", ID: row.RecoveryMethodID, Name: row.RecoveryMethod},
		{Type: "service-company", ID: row.ServiceCompanyID, Name: row.ServiceCompany},
	}
}

// formatID печатает числовой идентификатор
func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
