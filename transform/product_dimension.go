package transform

import (
	"sort"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductDimensionProcessor отвечает за конформацию измерения товаров
type ProductDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewProductDimensionProcessor создает новый экземпляр ProductDimensionProcessor
func NewProductDimensionProcessor(logger *utils.ETLLogger) *ProductDimensionProcessor {
	return &ProductDimensionProcessor{
		logger: logger,
	}
}

// ProcessProductDimension собирает измерение товаров из актуальных версий CRM
// и справочника категорий ERP.
//
// На вход подаются только версии с открытым окном действия (см.
// CurrentVersions) — исторические версии в измерение не попадают.
// Категория подключается left-outer по идентификатору категории,
// выделенному из составного ключа товара; при отсутствии записи
// в справочнике атрибуты категории остаются неизвестными.
//
// Суррогатные ключи назначаются по паре (дата начала действия,
// номер товара) по возрастанию.
func (p *ProductDimensionProcessor) ProcessProductDimension(
	currentProducts []models.ProductNormalized,
	erpCategories []models.ERPCategoryNormalized) []models.ProductDimension {

	p.logger.Debug("Конформация измерения товаров...")

	// Строим справочник категорий
	categories := make(map[string]models.ERPCategoryNormalized, len(erpCategories))
	for _, category := range erpCategories {
		categories[category.CategoryID] = category
	}

	// Упорядочиваем версии для назначения суррогатных ключей
	ordered := make([]models.ProductNormalized, len(currentProducts))
	copy(ordered, currentProducts)
	sort.SliceStable(ordered, func(a, b int) bool {
		if !datesEqual(ordered[a].StartDate, ordered[b].StartDate) {
			return startBefore(ordered[a].StartDate, ordered[b].StartDate)
		}
		return ordered[a].ProductNumber < ordered[b].ProductNumber
	})

	dimension := make([]models.ProductDimension, 0, len(ordered))

	for i, product := range ordered {
		row := models.ProductDimension{
			ProductKey:    i + 1,
			ProductID:     product.ID,
			ProductNumber: product.ProductNumber,
			Name:          product.Name,
			CategoryID:    product.CategoryID,
			Category:      models.Unknown,
			Subcategory:   models.Unknown,
			Maintenance:   models.Unknown,
			Cost:          product.Cost,
			Line:          product.Line,
			StartDate:     product.StartDate,
		}

		if category, ok := categories[product.CategoryID]; ok {
			row.Category = category.Category
			row.Subcategory = category.Subcategory
			row.Maintenance = category.Maintenance
		}

		dimension = append(dimension, row)
	}

	p.logger.Info("Измерение товаров конформировано. Строк: %d", len(dimension))
	return dimension
}

// datesEqual сравнивает даты начала на равенство с учетом NULL
func datesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
