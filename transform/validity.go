package transform

import (
	"sort"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
)

// ResolveValidityWindows вычисляет окна действия версий товаров.
// Версии группируются по номеру товара и сортируются по дате начала;
// дата окончания каждой версии — день перед датой начала следующей,
// у последней версии окно открыто (EndDate == nil). Версии с одинаковой
// датой начала упорядочиваются по последовательности во входных данных,
// чтобы исключить окна отрицательной длины.
//
// Результат сохраняет исходный порядок записей; меняются только EndDate.
func ResolveValidityWindows(products []models.ProductNormalized) []models.ProductNormalized {
	// Группируем индексы версий по номеру товара, сохраняя порядок вставки
	versionsByNumber := make(map[string][]int)
	for i := range products {
		number := products[i].ProductNumber
		versionsByNumber[number] = append(versionsByNumber[number], i)
	}

	result := make([]models.ProductNormalized, len(products))
	copy(result, products)

	for _, indexes := range versionsByNumber {
		// Сортируем версии по дате начала; NULL-даты считаем самыми ранними.
		// Стабильная сортировка сохраняет порядок вставки при равных датах.
		sorted := make([]int, len(indexes))
		copy(sorted, indexes)
		sort.SliceStable(sorted, func(a, b int) bool {
			return startBefore(result[sorted[a]].StartDate, result[sorted[b]].StartDate)
		})

		// Закрываем окно каждой версии днем перед началом следующей
		for i := 0; i < len(sorted); i++ {
			if i == len(sorted)-1 {
				// Последняя версия — актуальная, окно открыто
				result[sorted[i]].EndDate = nil
				continue
			}

			nextStart := result[sorted[i+1]].StartDate
			if nextStart == nil {
				result[sorted[i]].EndDate = nil
				continue
			}

			end := nextStart.AddDate(0, 0, -1)
			result[sorted[i]].EndDate = &end
		}
	}

	return result
}

// CurrentVersions возвращает только актуальные версии товаров —
// те, чье окно действия не закрыто. Именно они попадают в измерение.
func CurrentVersions(products []models.ProductNormalized) []models.ProductNormalized {
	current := make([]models.ProductNormalized, 0, len(products))
	for _, product := range products {
		if product.EndDate == nil {
			current = append(current, product)
		}
	}
	return current
}

// startBefore сравнивает даты начала версий; NULL раньше любой даты
func startBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}
