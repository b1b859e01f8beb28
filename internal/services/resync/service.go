package resync

import (
	"log"

	"github.com/user/silant-service-api/internal/models"
	"github.com/user/silant-service-api/internal/repository"
)

// Service - ночная сверка денормализованных данных рекламаций
type Service struct {
	repo *repository.Repository
}

// NewService создаёт новый сервис сверки
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// ResyncLabels обновляет денормализованные названия моделей техники в рекламациях.
// Нужно после переименования записей справочников.
func (s *Service) ResyncLabels() {
	affected, err := s.repo.ResyncComplaintVehicleModels()
	if err != nil {
		log.Printf("[Cron] Ошибка сверки названий моделей: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("[Cron] Сверка названий моделей: обновлено записей: %d", affected)
	}
}

// RecomputeDowntime пересчитывает простой техники по датам отказа и восстановления
func (s *Service) RecomputeDowntime() {
	items, err := s.repo.GetComplaintsWithRecovery()
	if err != nil {
		log.Printf("[Cron] Ошибка получения рекламаций для пересчёта: %v", err)
		return
	}

	updated := 0
	for i := range items {
		downtime := models.CalculateDowntime(items[i].DateOfFailure, items[i].DateRecovery)
		if downtime == items[i].EquipmentDowntime {
			continue
		}
		if err := s.repo.UpdateComplaintDowntime(items[i].ID, downtime); err != nil {
			log.Printf("[Cron] Ошибка обновления простоя рекламации %d: %v", items[i].ID, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("[Cron] Пересчёт простоя: обновлено рекламаций: %d", updated)
	}
}

// Run выполняет полный цикл ночной сверки
func (s *Service) Run() {
	log.Println("[Cron] Запуск ночной сверки данных")
	s.ResyncLabels()
	s.RecomputeDowntime()
	log.Println("[Cron] Ночная сверка завершена")
}
