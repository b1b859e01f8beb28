package passport

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/user/silant-service-api/internal/models"
)

// Generator - генератор PDF паспорта машины
type Generator struct {
	fontsDir string
}

// NewGenerator создаёт новый генератор
func NewGenerator() *Generator {
	dir := os.Getenv("FONTS_DIR")
	if dir == "" {
		dir = "./fonts"
	}
	return &Generator{fontsDir: dir}
}

// russianMonth возвращает название месяца на русском в родительном падеже
func russianMonth(m time.Month) string {
	months := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return months[m]
}

// formatDateRussian возвращает дату в формате «1 февраля 2026 г.»
func formatDateRussian(t time.Time) string {
	return fmt.Sprintf("%d %s %d г.", t.Day(), russianMonth(t.Month()), t.Year())
}

// formatShipmentDate переводит дату отгрузки YYYY-MM-DD в русский формат
func formatShipmentDate(s string) string {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return s
	}
	return formatDateRussian(t)
}

// GenerateCarPassportPDF генерирует PDF паспорта машины с комплектацией и данными о поставке
func (g *Generator) GenerateCarPassportPDF(car *models.Car) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Шрифты с поддержкой кириллицы
	pdf.AddUTF8Font("Arial", "", g.fontsDir+"/Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", g.fontsDir+"/Arial Bold.ttf")
	pdf.AddUTF8Font("Arial", "I", g.fontsDir+"/Arial Italic.ttf")

	g.drawHeader(pdf, car)
	g.drawComponentsTable(pdf, car)
	g.drawDelivery(pdf, car)
	g.drawFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// drawHeader — заголовок «Паспорт машины» с VIN и моделью
func (g *Generator) drawHeader(pdf *fpdf.Fpdf, car *models.Car) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, "Паспорт самоходной машины", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Модель: %s", car.VehicleModel.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 6, fmt.Sprintf("Заводской номер (VIN): %s", car.VIN), "", 1, "C", false, 0, "")

	// Линия-разделитель под заголовком
	y := pdf.GetY() + 2
	pdf.SetLineWidth(0.4)
	pdf.Line(10, y, 200, y)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)
}

// drawComponentsTable — таблица агрегатов: модель и заводской номер каждого узла
func (g *Generator) drawComponentsTable(pdf *fpdf.Fpdf, car *models.Car) {
	colLabel := 60.0
	colModel := 70.0
	colNumber := 60.0

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 7, "Комплектация", "", 1, "L", false, 0, "")

	// Заголовок таблицы
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(colLabel, 7, "Узел", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colModel, 7, "Модель", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colNumber, 7, "Заводской номер", "1", 1, "C", false, 0, "")

	rows := []struct {
		label  string
		model  string
		number string
	}{
		{"Двигатель", car.EngineModel.Name, car.EngineNumber},
		{"Трансмиссия", car.TransmissionModel.Name, car.TransmissionNumber},
		{"Ведущий мост", car.DriveAxleModel.Name, car.DriveAxleNumber},
		{"Управляемый мост", car.SteeringAxleModel.Name, car.SteeringAxleNumber},
	}

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		pdf.CellFormat(colLabel, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colModel, 7, row.model, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colNumber, 7, row.number, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(5)
}

// drawDelivery — блок данных о поставке и получателе
func (g *Generator) drawDelivery(pdf *fpdf.Fpdf, car *models.Car) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 7, "Данные о поставке", "", 1, "L", false, 0, "")

	labelW := 60.0
	dataW := 130.0

	writeRow := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 9)
		pdf.MultiCell(dataW, 6, value, "", "L", false)
	}

	writeRow("Договор поставки:", car.DeliveryAgreement)
	writeRow("Дата отгрузки:", formatShipmentDate(car.ShipmentDate))
	writeRow("Грузополучатель:", car.Recipient)
	writeRow("Адрес поставки:", car.DeliveryAddress)
	writeRow("Комплектация (доп. опции):", car.Equipment)
	writeRow("Клиент:", car.Client.Name)
	writeRow("Сервисная компания:", car.ServiceCompany.Name)

	pdf.Ln(4)
}

// drawFooter — дата формирования документа
func (g *Generator) drawFooter(pdf *fpdf.Fpdf) {
	y := pdf.GetY() + 2
	pdf.SetLineWidth(0.3)
	pdf.Line(10, y, 200, y)
	pdf.SetLineWidth(0.2)
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(190, 5, fmt.Sprintf("Документ сформирован %s", formatDateRussian(time.Now())), "", 1, "R", false, 0, "")
}
