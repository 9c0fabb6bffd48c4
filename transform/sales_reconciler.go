package transform

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
)

// ReconcileSales согласует измеримые поля строк продаж.
// Правила парсинга и коррекции локальны для каждой строки и никогда
// не приводят к ошибке: некорректное значение заменяется на NULL
// или пересчитывается из других полей той же строки.
//
// Порядок коррекции фиксирован: сначала сумма продажи пересчитывается
// из исходных количества и цены, затем цена выводится из уже
// скорректированной суммы. При одновременно некорректных сумме и цене
// это дает цену corrected_sales/quantity, а не наоборот.
func ReconcileSales(rawSales []models.CRMSalesRaw) []models.SalesReconciled {
	reconciled := make([]models.SalesReconciled, 0, len(rawSales))

	for _, raw := range rawSales {
		row := models.SalesReconciled{
			OrderNumber:   strings.TrimSpace(raw.OrderNumber),
			ProductNumber: strings.TrimSpace(raw.ProductNumber),
			CustomerID:    raw.CustomerID,
			OrderDate:     ParseIntDate(raw.OrderDateRaw),
			ShipDate:      ParseIntDate(raw.ShipDateRaw),
			DueDate:       ParseIntDate(raw.DueDateRaw),
			Quantity:      raw.Quantity,
		}

		row.Sales = reconcileSalesAmount(raw.Sales, raw.Quantity, raw.Price)
		row.Price = reconcilePrice(raw.Price, row.Sales, raw.Quantity)

		reconciled = append(reconciled, row)
	}

	return reconciled
}

// ParseIntDate разбирает дату из 8-значного целого числа вида YYYYMMDD.
// Ноль, число неправильной длины или несуществующая календарная дата
// дают NULL, а не ошибку разбора.
func ParseIntDate(raw int) *time.Time {
	if raw <= 0 {
		return nil
	}

	digits := strconv.Itoa(raw)
	if len(digits) != 8 {
		return nil
	}

	parsed, err := time.Parse("20060102", digits)
	if err != nil {
		return nil
	}

	return &parsed
}

// reconcileSalesAmount возвращает согласованную сумму продажи.
// Исходная сумма сохраняется только если она положительна и равна
// quantity × |price|; иначе сумма пересчитывается (NULL, когда
// количество или цена отсутствуют и пересчет невозможен).
func reconcileSalesAmount(sales *float64, quantity *int, price *float64) *float64 {
	if sales != nil && *sales > 0 && expectedSalesMatch(*sales, quantity, price) {
		return sales
	}

	if quantity == nil || price == nil {
		return nil
	}

	recomputed := float64(*quantity) * math.Abs(*price)
	return &recomputed
}

// expectedSalesMatch проверяет согласованность суммы с количеством и ценой
func expectedSalesMatch(sales float64, quantity *int, price *float64) bool {
	if quantity == nil || price == nil {
		// Сравнивать не с чем — положительную сумму считаем достоверной
		return true
	}
	expected := float64(*quantity) * math.Abs(*price)
	return math.Abs(sales-expected) < 1e-9
}

// reconcilePrice возвращает согласованную цену единицы товара.
// Отсутствующая или неположительная цена выводится из уже
// скорректированной суммы; деление на ноль дает NULL.
func reconcilePrice(price *float64, correctedSales *float64, quantity *int) *float64 {
	if price != nil && *price > 0 {
		return price
	}

	if correctedSales == nil || quantity == nil || *quantity == 0 {
		return nil
	}

	derived := *correctedSales / float64(*quantity)
	return &derived
}
