package repository

import (
	"errors"

	"github.com/user/silant-service-api/internal/models"
	"gorm.io/gorm"
)

// ErrRefModelInUse возвращается при попытке удалить запись справочника,
// на которую ссылаются существующие записи.
var ErrRefModelInUse = errors.New("запись справочника используется")

// refCheck - таблица и столбец, ссылающиеся на справочник (для запрета удаления)
type refCheck struct {
	table  string
	column string
}

// RefModelTable описывает справочную таблицу для обобщённого доступа
type RefModelTable struct {
	Table  string
	Checks []refCheck
}

// refModelTables - справочники по slug-у из URL (/api/models/{type})
var refModelTables = map[string]RefModelTable{
	"vehicle": {
		Table:  "vehicle_models",
		Checks: []refCheck{{"cars", "vehicle_model_id"}},
	},
	"engine": {
		Table:  "engine_models",
		Checks: []refCheck{{"cars", "engine_model_id"}},
	},
	"transmission": {
		Table:  "transmission_models",
		Checks: []refCheck{{"cars", "transmission_model_id"}},
	},
	"drive-axle": {
		Table:  "drive_axle_models",
		Checks: []refCheck{{"cars", "drive_axle_model_id"}},
	},
	"steering-axle": {
		Table:  "steering_axle_models",
		Checks: []refCheck{{"cars", "steering_axle_model_id"}},
	},
	"service-company": {
		Table: "service_companies",
		Checks: []refCheck{
			{"cars", "service_company_id"},
			{"maintenances", "service_company_id"},
			{"complaints", "service_company_id"},
		},
	},
	"failure-node": {
		Table:  "failure_nodes",
		Checks: []refCheck{{"complaints", "node_failure_id"}},
	},
	"recovery-method": {
		Table:  "recovery_methods",
		Checks: []refCheck{{"complaints", "recovery_method_id"}},
	},
	"maintenance-types": {
		Table:  "maintenance_types",
		Checks: []refCheck{{"maintenances", "maintenance_type_id"}},
	},
}

// RefModelTypes возвращает список известных slug-ов справочников
func RefModelTypes() []string {
	types := make([]string, 0, len(refModelTables))
	for t := range refModelTables {
		types = append(types, t)
	}
	return types
}

// IsRefModelType проверяет, известен ли slug справочника
func IsRefModelType(modelType string) bool {
	_, ok := refModelTables[modelType]
	return ok
}

// ListRefModels возвращает записи справочника для селектов
func (r *Repository) ListRefModels(modelType string) ([]models.RefModel, error) {
	cfg, ok := refModelTables[modelType]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var items []models.RefModel
	if err := r.db.Table(cfg.Table).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetRefModel возвращает запись справочника по типу и ID
func (r *Repository) GetRefModel(modelType string, id uint) (*models.RefModel, error) {
	cfg, ok := refModelTables[modelType]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var item models.RefModel
	if err := r.db.Table(cfg.Table).Where("id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateRefModel частично обновляет name/description записи справочника.
// nil-поле остаётся нетронутым.
func (r *Repository) UpdateRefModel(modelType string, id uint, name, description *string) (*models.RefModel, error) {
	cfg, ok := refModelTables[modelType]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) > 0 {
		if err := r.db.Table(cfg.Table).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.GetRefModel(modelType, id)
}

// DeleteRefModel удаляет запись справочника. Удаление запрещено, пока на запись
// ссылаются машины, записи ТО или рекламации.
func (r *Repository) DeleteRefModel(modelType string, id uint) error {
	cfg, ok := refModelTables[modelType]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	for _, check := range cfg.Checks {
		var count int64
		if err := r.db.Table(check.table).
			Where(check.column+" = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRefModelInUse
		}
	}

	result := r.db.Table(cfg.Table).Where("id = ?", id).Delete(&models.RefModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
