package passport

import (
	"testing"
	"time"
)

func TestFormatDateRussian(t *testing.T) {
	d := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if got := formatDateRussian(d); got != "1 февраля 2026 г." {
		t.Errorf("неверный формат даты: %q", got)
	}
}

func TestFormatShipmentDate(t *testing.T) {
	if got := formatShipmentDate("2022-03-09"); got != "9 марта 2022 г." {
		t.Errorf("неверный формат даты отгрузки: %q", got)
	}
	// Неразбираемая дата возвращается как есть
	if got := formatShipmentDate("09.03.2022"); got != "09.03.2022" {
		t.Errorf("битая дата должна возвращаться без изменений: %q", got)
	}
	if got := formatShipmentDate(""); got != "" {
		t.Errorf("пустая дата должна оставаться пустой: %q", got)
	}
}
