package repository

import (
	"fmt"

	"github.com/user/silant-service-api/internal/config"
	"github.com/user/silant-service-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Repository - доступ к БД
type Repository struct {
	db *gorm.DB
}

// NewDB создаёт подключение к БД по конфигурации (postgres или sqlite)
func NewDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "silant.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate выполняет автомиграцию моделей
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.VehicleModel{},
		&models.EngineModel{},
		&models.TransmissionModel{},
		&models.DriveAxleModel{},
		&models.SteeringAxleModel{},
		&models.MaintenanceType{},
		&models.RecoveryMethod{},
		&models.FailureNode{},
		&models.ServiceCompany{},
		&models.Client{},
		&models.User{},
		&models.Car{},
		&models.Maintenance{},
		&models.Complaint{},
	)
}

// NewRepository создаёт новый репозиторий
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// === Cars ===

// GetAllCars возвращает все машины со справочными связями
func (r *Repository) GetAllCars() ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.
		Preload("VehicleModel").
		Preload("EngineModel").
		Preload("TransmissionModel").
		Preload("DriveAxleModel").
		Preload("SteeringAxleModel").
		Preload("Client").
		Preload("ServiceCompany").
		Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// GetCarByVIN возвращает машину по VIN со справочными связями
func (r *Repository) GetCarByVIN(vin string) (*models.Car, error) {
	var car models.Car
	if err := r.db.
		Preload("VehicleModel").
		Preload("EngineModel").
		Preload("TransmissionModel").
		Preload("DriveAxleModel").
		Preload("SteeringAxleModel").
		Preload("Client").
		Preload("ServiceCompany").
		Where("vin = ?", vin).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &car, nil
}

// GetCarByID возвращает машину по ID со справочными связями
func (r *Repository) GetCarByID(id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.Preload("VehicleModel").First(&car, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &car, nil
}

// CreateCar создаёт машину и перечитывает её со связями
func (r *Repository) CreateCar(car *models.Car) error {
	if err := r.db.Create(car).Error; err != nil {
		return err
	}
	return r.db.
		Preload("VehicleModel").
		Preload("EngineModel").
		Preload("TransmissionModel").
		Preload("DriveAxleModel").
		Preload("SteeringAxleModel").
		Preload("Client").
		Preload("ServiceCompany").
		First(car, car.ID).Error
}

// === Maintenance ===

// GetAllMaintenance возвращает записи ТО со связями
func (r *Repository) GetAllMaintenance() ([]models.Maintenance, error) {
	var items []models.Maintenance
	if err := r.db.
		Preload("Car").
		Preload("MaintenanceType").
		Preload("ServiceCompany").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMaintenance создаёт запись ТО и перечитывает её со связями
func (r *Repository) CreateMaintenance(m *models.Maintenance) error {
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	return r.db.
		Preload("Car").
		Preload("MaintenanceType").
		Preload("ServiceCompany").
		First(m, m.ID).Error
}

// === Complaints ===

// GetAllComplaints возвращает рекламации со связями
func (r *Repository) GetAllComplaints() ([]models.Complaint, error) {
	var items []models.Complaint
	if err := r.db.
		Preload("Car").
		Preload("Car.VehicleModel").
		Preload("NodeFailure").
		Preload("RecoveryMethod").
		Preload("ServiceCompany").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateComplaint создаёт рекламацию и перечитывает её со связями
func (r *Repository) CreateComplaint(cm *models.Complaint) error {
	if err := r.db.Create(cm).Error; err != nil {
		return err
	}
	return r.db.
		Preload("Car").
		Preload("Car.VehicleModel").
		Preload("NodeFailure").
		Preload("RecoveryMethod").
		Preload("ServiceCompany").
		First(cm, cm.ID).Error
}

// === Clients ===

// GetAllClients возвращает клиентов для селекта
func (r *Repository) GetAllClients() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// === Сверка денормализованных данных ===

// ResyncComplaintVehicleModels приводит денормализованные метки модели машины
// в рекламациях в соответствие со справочником. Возвращает число исправленных строк.
func (r *Repository) ResyncComplaintVehicleModels() (int64, error) {
	result := r.db.Exec(`
		UPDATE complaints SET vehicle_model_name = (
			SELECT vehicle_models.name FROM vehicle_models
			JOIN cars ON cars.vehicle_model_id = vehicle_models.id
			WHERE cars.id = complaints.car_id
		)
		WHERE vehicle_model_name <> (
			SELECT vehicle_models.name FROM vehicle_models
			JOIN cars ON cars.vehicle_model_id = vehicle_models.id
			WHERE cars.id = complaints.car_id
		)`)
	return result.RowsAffected, result.Error
}

// GetComplaintsWithRecovery возвращает рекламации с заполненной датой восстановления
func (r *Repository) GetComplaintsWithRecovery() ([]models.Complaint, error) {
	var items []models.Complaint
	if err := r.db.Where("date_recovery <> ''").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateComplaintDowntime обновляет сохранённый простой рекламации
func (r *Repository) UpdateComplaintDowntime(id uint, downtime string) error {
	return r.db.Model(&models.Complaint{}).Where("id = ?", id).
		Update("equipment_downtime", downtime).Error
}
