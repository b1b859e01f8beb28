package models

import (
	"fmt"
	"time"
)

// CalculateDowntime вычисляет простой техники как разницу между датой отказа
// и датой восстановления, например "12 дней". Пустая строка - если одна из
// дат не задана, не разбирается или восстановление раньше отказа.
func CalculateDowntime(dateOfFailure, dateRecovery string) string {
	if dateOfFailure == "" || dateRecovery == "" {
		return ""
	}

	failure, err := time.Parse(DateLayout, dateOfFailure)
	if err != nil {
		return ""
	}
	recovery, err := time.Parse(DateLayout, dateRecovery)
	if err != nil {
		return ""
	}
	if recovery.Before(failure) {
		return ""
	}

	days := int(recovery.Sub(failure).Hours() / 24)
	return fmt.Sprintf("%d дней", days)
}
