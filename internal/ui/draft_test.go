package ui

import (
	"strings"
	"testing"
)

func fillCarDraft(d *Draft) {
	d.Set("vin", "newvin00000000002")
	d.Set("vehicle_model_id", "1")
	d.Set("engine_model_id", "1")
	d.Set("transmission_model_id", "1")
	d.Set("drive_axle_model_id", "1")
	d.Set("steering_axle_model_id", "1")
	d.Set("shipment_date", "2024-03-09")
	d.Set("client_id", "1")
	d.Set("service_company_id", "1")
}

func TestDraftValidateRequired(t *testing.T) {
	d := newDraft(TabCars)
	if err := d.Validate(); err == "" {
		t.Fatal("пустой черновик не должен проходить проверку")
	}

	fillCarDraft(d)
	if err := d.Validate(); err != "" {
		t.Errorf("заполненный черновик не прошёл проверку: %s", err)
	}
}

func TestDraftValidateVIN(t *testing.T) {
	d := newDraft(TabCars)
	fillCarDraft(d)

	d.Set("vin", "КОРОТКИЙ")
	if err := d.Validate(); !strings.Contains(err, "17") {
		t.Errorf("VIN не из 17 символов должен блокировать отправку: %q", err)
	}

	d.Set("vin", "newvin00000000002")
	if err := d.Validate(); err != "" {
		t.Errorf("VIN из 17 символов должен проходить: %s", err)
	}
}

func TestDraftValidateDate(t *testing.T) {
	d := newDraft(TabCars)
	fillCarDraft(d)

	d.Set("shipment_date", "09.03.2024")
	if err := d.Validate(); err == "" {
		t.Error("дата не в формате ГГГГ-ММ-ДД должна блокировать отправку")
	}
}

func TestDraftValidateRef(t *testing.T) {
	d := newDraft(TabMaintenance)
	d.Set("car_id", "1")
	d.Set("maintenance_type_id", "не число")
	d.Set("maintenance_date", "2024-03-09")
	d.Set("order_date", "2024-03-01")
	d.Set("service_company_id", "1")

	if err := d.Validate(); err == "" {
		t.Error("нечисловой идентификатор справочника должен блокировать отправку")
	}

	d.Set("maintenance_type_id", "2")
	if err := d.Validate(); err != "" {
		t.Errorf("черновик ТО не прошёл проверку: %s", err)
	}
}

func TestDraftValidateRecoveryBeforeFailure(t *testing.T) {
	d := newDraft(TabComplaints)
	d.Set("car_id", "1")
	d.Set("date_of_failure", "2024-05-10")
	d.Set("node_failure_id", "1")
	d.Set("recovery_method_id", "1")
	d.Set("service_company_id", "1")

	d.Set("date_recovery", "2024-05-01")
	if err := d.Validate(); err != "Дата восстановления не может быть раньше даты отказа" {
		t.Errorf("восстановление раньше отказа должно блокировать отправку: %q", err)
	}

	d.Set("date_recovery", "2024-05-20")
	if err := d.Validate(); err != "" {
		t.Errorf("черновик рекламации не прошёл проверку: %s", err)
	}

	// Дата восстановления не обязательна
	d.Set("date_recovery", "")
	if err := d.Validate(); err != "" {
		t.Errorf("рекламация без даты восстановления должна проходить: %s", err)
	}
}

func TestDraftBuildsUppercaseVIN(t *testing.T) {
	d := newDraft(TabCars)
	fillCarDraft(d)

	req := d.carCreate()
	if req.VIN != "NEWVIN00000000002" {
		t.Errorf("VIN должен приводиться к верхнему регистру: %q", req.VIN)
	}
	if req.VehicleModelID != 1 || req.ClientID != 1 {
		t.Errorf("идентификаторы не разобраны: %+v", req)
	}
}

func TestDraftFieldNavigation(t *testing.T) {
	d := newDraft(TabMaintenance)
	if d.Current().key != "car_id" {
		t.Fatalf("черновик должен начинаться с первого поля: %s", d.Current().key)
	}

	d.Next()
	if d.Current().key != "maintenance_type_id" {
		t.Errorf("переход к следующему полю не сработал: %s", d.Current().key)
	}

	d.Prev()
	d.Prev()
	if !d.Last() {
		t.Errorf("переход назад с первого поля должен приводить к последнему: %s", d.Current().key)
	}
}
