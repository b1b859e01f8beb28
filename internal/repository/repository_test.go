package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/silant-service-api/internal/config"
	"github.com/user/silant-service-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("открытие БД: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("миграция: %v", err)
	}
	return NewRepository(db)
}

func seed(t *testing.T, r *Repository) {
	t.Helper()
	mustCreate := func(value interface{}) {
		if err := r.db.Create(value).Error; err != nil {
			t.Fatalf("наполнение данных: %v", err)
		}
	}
	mustCreate(&models.VehicleModel{Name: "ПД1,5"})
	mustCreate(&models.EngineModel{Name: "Kubota"})
	mustCreate(&models.TransmissionModel{Name: "10VA"})
	mustCreate(&models.DriveAxleModel{Name: "ВМ-10"})
	mustCreate(&models.SteeringAxleModel{Name: "УМ-01"})
	mustCreate(&models.FailureNode{Name: "Двигатель"})
	mustCreate(&models.RecoveryMethod{Name: "Ремонт узла"})
	mustCreate(&models.ServiceCompany{Name: "ООО Сервис"})
	mustCreate(&models.Client{Name: "ИП Клиент"})
	mustCreate(&models.Car{
		VIN: "TESTVIN0000000001", VehicleModelID: 1, EngineModelID: 1,
		EngineNumber: "E1", TransmissionModelID: 1, TransmissionNumber: "T1",
		DriveAxleModelID: 1, DriveAxleNumber: "D1", SteeringAxleModelID: 1,
		SteeringAxleNumber: "S1", ShipmentDate: "2022-03-01",
		ClientID: 1, ServiceCompanyID: 1,
	})
}

func TestNewDBMigrates(t *testing.T) {
	db, err := NewDB(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "silant.db"),
	})
	if err != nil {
		t.Fatalf("создание БД: %v", err)
	}

	// Миграция выполняется внутри NewDB, отдельный вызов не нужен
	r := NewRepository(db)
	if err := r.db.Create(&models.VehicleModel{Name: "ПД1,5"}).Error; err != nil {
		t.Fatalf("таблицы не созданы: %v", err)
	}
	item, err := r.GetRefModel("vehicle", 1)
	if err != nil || item == nil {
		t.Fatalf("запись не найдена после миграции: %v", err)
	}
}

func TestDeleteRefModelInUse(t *testing.T) {
	r := setupRepo(t)
	seed(t, r)

	err := r.DeleteRefModel("vehicle", 1)
	if !errors.Is(err, ErrRefModelInUse) {
		t.Fatalf("ожидалась ошибка использования записи, получено: %v", err)
	}

	// Неиспользуемая запись удаляется
	if err := r.db.Create(&models.FailureNode{Name: "Гидравлика"}).Error; err != nil {
		t.Fatalf("создание записи: %v", err)
	}
	if err := r.DeleteRefModel("failure-node", 2); err != nil {
		t.Fatalf("удаление неиспользуемой записи: %v", err)
	}
	item, err := r.GetRefModel("failure-node", 2)
	if err != nil {
		t.Fatalf("чтение: %v", err)
	}
	if item != nil {
		t.Error("запись должна быть удалена")
	}

	// Повторное удаление - запись не найдена
	if err := r.DeleteRefModel("failure-node", 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("ожидалась ошибка отсутствия записи, получено: %v", err)
	}
}

func TestUpdateRefModelPartial(t *testing.T) {
	r := setupRepo(t)
	seed(t, r)

	name := "ПД1,5М"
	item, err := r.UpdateRefModel("vehicle", 1, &name, nil)
	if err != nil {
		t.Fatalf("обновление: %v", err)
	}
	if item.Name != "ПД1,5М" {
		t.Errorf("название не обновилось: %q", item.Name)
	}

	desc := "Модернизированный погрузчик"
	item, err = r.UpdateRefModel("vehicle", 1, nil, &desc)
	if err != nil {
		t.Fatalf("обновление описания: %v", err)
	}
	if item.Name != "ПД1,5М" || item.Description != desc {
		t.Errorf("частичное обновление сломало запись: %+v", item)
	}
}

func TestResyncComplaintVehicleModels(t *testing.T) {
	r := setupRepo(t)
	seed(t, r)

	// Рекламация с устаревшей меткой модели
	cm := models.Complaint{
		CarID: 1, DateOfFailure: "2023-02-01", NodeFailureID: 1,
		RecoveryMethodID: 1, ServiceCompanyID: 1,
		VehicleModelName: "Старое название",
	}
	if err := r.db.Create(&cm).Error; err != nil {
		t.Fatalf("создание рекламации: %v", err)
	}

	affected, err := r.ResyncComplaintVehicleModels()
	if err != nil {
		t.Fatalf("сверка: %v", err)
	}
	if affected != 1 {
		t.Fatalf("ожидалась 1 исправленная строка, получено %d", affected)
	}

	var got models.Complaint
	if err := r.db.First(&got, cm.ID).Error; err != nil {
		t.Fatalf("чтение: %v", err)
	}
	if got.VehicleModelName != "ПД1,5" {
		t.Errorf("метка не сверена: %q", got.VehicleModelName)
	}

	// Повторный запуск ничего не меняет
	affected, err = r.ResyncComplaintVehicleModels()
	if err != nil {
		t.Fatalf("повторная сверка: %v", err)
	}
	if affected != 0 {
		t.Errorf("повторная сверка не должна менять строки, исправлено %d", affected)
	}
}

func TestUpdateComplaintDowntime(t *testing.T) {
	r := setupRepo(t)
	seed(t, r)

	cm := models.Complaint{
		CarID: 1, DateOfFailure: "2023-02-01", NodeFailureID: 1,
		RecoveryMethodID: 1, ServiceCompanyID: 1,
		DateRecovery: "2023-02-11", EquipmentDowntime: "",
	}
	if err := r.db.Create(&cm).Error; err != nil {
		t.Fatalf("создание рекламации: %v", err)
	}

	items, err := r.GetComplaintsWithRecovery()
	if err != nil {
		t.Fatalf("выборка: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ожидалась 1 рекламация с восстановлением, получено %d", len(items))
	}

	if err := r.UpdateComplaintDowntime(cm.ID, "10 дней"); err != nil {
		t.Fatalf("обновление простоя: %v", err)
	}
	var got models.Complaint
	if err := r.db.First(&got, cm.ID).Error; err != nil {
		t.Fatalf("чтение: %v", err)
	}
	if got.EquipmentDowntime != "10 дней" {
		t.Errorf("простой не сохранён: %q", got.EquipmentDowntime)
	}
}
