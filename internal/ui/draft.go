package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/user/silant-service-api/internal/client"
	"github.com/user/silant-service-api/internal/models"
)

// draftKind определяет способ проверки поля черновика
type draftKind int

const (
	draftText draftKind = iota
	draftDate
	draftRef
	draftVIN
)

type draftField struct {
	key      string
	label    string
	required bool
	kind     draftKind
}

var carDraftFields = []draftField{
	{"vin", "VIN", true, draftVIN},
	{"vehicle_model_id", "Модель техники (id)", true, draftRef},
	{"engine_model_id", "Модель двигателя (id)", true, draftRef},
	{"engine_number", "Зав. № двигателя", false, draftText},
	{"transmission_model_id", "Модель трансмиссии (id)", true, draftRef},
	{"transmission_number", "Зав. № трансмиссии", false, draftText},
	{"drive_axle_model_id", "Модель ведущего моста (id)", true, draftRef},
	{"drive_axle_number", "Зав. № ведущего моста", false, draftText},
	{"steering_axle_model_id", "Модель управляемого моста (id)", true, draftRef},
	{"steering_axle_number", "Зав. № управляемого моста", false, draftText},
	{"delivery_agreement", "Договор поставки", false, draftText},
	{"shipment_date", "Дата отгрузки", true, draftDate},
	{"recipient", "Грузополучатель", false, draftText},
	{"delivery_address", "Адрес поставки", false, draftText},
	{"equipment", "Комплектация", false, draftText},
	{"client_id", "Клиент (id)", true, draftRef},
	{"service_company_id", "Сервисная компания (id)", true, draftRef},
}

var maintenanceDraftFields = []draftField{
	{"car_id", "Машина (id)", true, draftRef},
	{"maintenance_type_id", "Вид ТО (id)", true, draftRef},
	{"maintenance_date", "Дата проведения ТО", true, draftDate},
	{"order_number", "Номер заказ-наряда", false, draftText},
	{"order_date", "Дата заказ-наряда", true, draftDate},
	{"service_company_id", "Сервисная компания (id)", true, draftRef},
}

var complaintDraftFields = []draftField{
	{"car_id", "Машина (id)", true, draftRef},
	{"date_of_failure", "Дата отказа", true, draftDate},
	{"operating_time", "Наработка, м/час", false, draftText},
	{"node_failure_id", "Узел отказа (id)", true, draftRef},
	{"description_failure", "Описание отказа", false, draftText},
	{"recovery_method_id", "Способ восстановления (id)", true, draftRef},
	{"used_spare_parts", "Используемые запчасти", false, draftText},
	{"date_recovery", "Дата восстановления", false, draftDate},
	{"service_company_id", "Сервисная компания (id)", true, draftRef},
}

// Draft - черновик новой записи активной вкладки. При ошибке сервера
// введённые значения сохраняются для повторной отправки.
type Draft struct {
	tab    Tab
	fields []draftField
	values map[string]string
	idx    int

	Err     string
	Sending bool
}

func newDraft(tab Tab) *Draft {
	var fields []draftField
	switch tab {
	case TabCars:
		fields = carDraftFields
	case TabMaintenance:
		fields = maintenanceDraftFields
	default:
		fields = complaintDraftFields
	}
	return &Draft{
		tab:    tab,
		fields: fields,
		values: make(map[string]string),
	}
}

func (d *Draft) Fields() []draftField { return d.fields }

func (d *Draft) Index() int { return d.idx }

func (d *Draft) Current() draftField { return d.fields[d.idx] }

func (d *Draft) Last() bool { return d.idx == len(d.fields)-1 }

func (d *Draft) Value(key string) string { return d.values[key] }

func (d *Draft) Set(key, value string) { d.values[key] = strings.TrimSpace(value) }

func (d *Draft) Next() { d.idx = (d.idx + 1) % len(d.fields) }

func (d *Draft) Prev() { d.idx = (d.idx + len(d.fields) - 1) % len(d.fields) }

func (d *Draft) refValue(key string) uint {
	n, err := strconv.ParseUint(d.values[key], 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// Validate возвращает текст первой найденной ошибки, пустая строка - черновик
// готов к отправке
func (d *Draft) Validate() string {
	for _, f := range d.fields {
		value := d.values[f.key]
		if value == "" {
			if f.required {
				return "Заполните поле «" + f.label + "»"
			}
			continue
		}
		switch f.kind {
		case draftVIN:
			if len([]rune(strings.ToUpper(value))) != 17 {
				return "VIN должен содержать ровно 17 символов"
			}
		case draftDate:
			if _, err := time.Parse(models.DateLayout, value); err != nil {
				return "Поле «" + f.label + "»: дата в формате ГГГГ-ММ-ДД"
			}
		case draftRef:
			if d.refValue(f.key) == 0 {
				return "Поле «" + f.label + "»: нужен числовой идентификатор записи"
			}
		}
	}

	// Даты ISO сравниваются лексикографически
	if d.tab == TabComplaints {
		recovery := d.values["date_recovery"]
		failure := d.values["date_of_failure"]
		if recovery != "" && failure != "" && recovery < failure {
			return "Дата восстановления не может быть раньше даты отказа"
		}
	}
	return ""
}

func (d *Draft) carCreate() client.CarCreate {
	return client.CarCreate{
		VIN:                 strings.ToUpper(d.values["vin"]),
		VehicleModelID:      d.refValue("vehicle_model_id"),
		EngineModelID:       d.refValue("engine_model_id"),
		EngineNumber:        d.values["engine_number"],
		TransmissionModelID: d.refValue("transmission_model_id"),
		TransmissionNumber:  d.values["transmission_number"],
		DriveAxleModelID:    d.refValue("drive_axle_model_id"),
		DriveAxleNumber:     d.values["drive_axle_number"],
		SteeringAxleModelID: d.refValue("steering_axle_model_id"),
		SteeringAxleNumber:  d.values["steering_axle_number"],
		DeliveryAgreement:   d.values["delivery_agreement"],
		ShipmentDate:        d.values["shipment_date"],
		Recipient:           d.values["recipient"],
		DeliveryAddress:     d.values["delivery_address"],
		Equipment:           d.values["equipment"],
		ClientID:            d.refValue("client_id"),
		ServiceCompanyID:    d.refValue("service_company_id"),
	}
}

func (d *Draft) maintenanceCreate() client.MaintenanceCreate {
	return client.MaintenanceCreate{
		CarID:             d.refValue("car_id"),
		MaintenanceTypeID: d.refValue("maintenance_type_id"),
		MaintenanceDate:   d.values["maintenance_date"],
		OrderNumber:       d.values["order_number"],
		OrderDate:         d.values["order_date"],
		ServiceCompanyID:  d.refValue("service_company_id"),
	}
}

func (d *Draft) complaintCreate() client.ComplaintCreate {
	return client.ComplaintCreate{
		CarID:              d.refValue("car_id"),
		DateOfFailure:      d.values["date_of_failure"],
		OperatingTime:      d.values["operating_time"],
		NodeFailureID:      d.refValue("node_failure_id"),
		DescriptionFailure: d.values["description_failure"],
		RecoveryMethodID:   d.refValue("recovery_method_id"),
		UsedSpareParts:     d.values["used_spare_parts"],
		DateRecovery:       d.values["date_recovery"],
		ServiceCompanyID:   d.refValue("service_company_id"),
	}
}
