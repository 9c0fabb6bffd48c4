package load

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Loader интерфейс для загрузки данных в хранилище.
// Каждый метод полностью заменяет содержимое своей таблицы
// (truncate-and-insert в одной транзакции) — частичных обновлений нет.
type Loader interface {
	// ReplaceCustomerDimension заменяет содержимое измерения клиентов
	ReplaceCustomerDimension(customers []models.CustomerDimension) error

	// ReplaceProductDimension заменяет содержимое измерения товаров
	ReplaceProductDimension(products []models.ProductDimension) error

	// ReplaceSalesFacts заменяет содержимое фактов продаж
	ReplaceSalesFacts(facts []models.SalesFact) error

	// ReplaceQualityViolations заменяет отчет о нарушениях качества
	ReplaceQualityViolations(violations []models.QualityViolation) error
}

// WarehouseLoader реализация Loader для базы данных хранилища
type WarehouseLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger

	// Загрузчики для отдельных таблиц
	customerLoader *CustomerLoader
	productLoader  *ProductLoader
	salesLoader    *SalesLoader
	qualityLoader  *QualityLoader
}

// NewWarehouseLoader создает новый экземпляр WarehouseLoader
func NewWarehouseLoader(db *sql.DB, logger *utils.ETLLogger) *WarehouseLoader {
	loader := &WarehouseLoader{
		db:     db,
		logger: logger,
	}

	// Инициализация загрузчиков для отдельных таблиц
	loader.customerLoader = NewCustomerLoader(db, logger)
	loader.productLoader = NewProductLoader(db, logger)
	loader.salesLoader = NewSalesLoader(db, logger)
	loader.qualityLoader = NewQualityLoader(db, logger)

	return loader
}

// ReplaceCustomerDimension заменяет содержимое измерения клиентов
func (l *WarehouseLoader) ReplaceCustomerDimension(customers []models.CustomerDimension) error {
	return l.customerLoader.Replace(customers)
}

// ReplaceProductDimension заменяет содержимое измерения товаров
func (l *WarehouseLoader) ReplaceProductDimension(products []models.ProductDimension) error {
	return l.productLoader.Replace(products)
}

// ReplaceSalesFacts заменяет содержимое фактов продаж
func (l *WarehouseLoader) ReplaceSalesFacts(facts []models.SalesFact) error {
	return l.salesLoader.Replace(facts)
}

// ReplaceQualityViolations заменяет отчет о нарушениях качества
func (l *WarehouseLoader) ReplaceQualityViolations(violations []models.QualityViolation) error {
	return l.qualityLoader.Replace(violations)
}
