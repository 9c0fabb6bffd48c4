package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LoadManager отвечает за управление процессом загрузки данных в хранилище
type LoadManager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader Loader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:     db,
		logger: logger,
		loader: NewWarehouseLoader(db, logger),
	}
}

// Load выполняет фазу загрузки данных ETL-процесса.
// Таблицы заменяются строго по порядку зависимостей: сначала измерения,
// затем факты, в конце отчет о качестве. Каждая таблица заменяется
// атомарно в своей транзакции; сбой прерывает оставшиеся загрузки,
// уже замененные таблицы остаются в новом состоянии.
func (m *LoadManager) Load(transformedData *models.TransformedData) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	// 1. Заменяем измерение клиентов
	m.logger.Info("Загрузка измерения клиентов...")
	if err := m.loader.ReplaceCustomerDimension(transformedData.Customers); err != nil {
		m.logger.Error("Ошибка при загрузке измерения клиентов: %v", err)
		return fmt.Errorf("ошибка при загрузке измерения клиентов: %w", err)
	}

	// 2. Заменяем измерение товаров
	m.logger.Info("Загрузка измерения товаров...")
	if err := m.loader.ReplaceProductDimension(transformedData.Products); err != nil {
		m.logger.Error("Ошибка при загрузке измерения товаров: %v", err)
		return fmt.Errorf("ошибка при загрузке измерения товаров: %w", err)
	}

	// 3. Заменяем факты продаж
	m.logger.Info("Загрузка фактов продаж...")
	if err := m.loader.ReplaceSalesFacts(transformedData.Sales); err != nil {
		m.logger.Error("Ошибка при загрузке фактов продаж: %v", err)
		return fmt.Errorf("ошибка при загрузке фактов продаж: %w", err)
	}

	// 4. Заменяем отчет о качестве
	m.logger.Info("Загрузка отчета о качестве...")
	if err := m.loader.ReplaceQualityViolations(transformedData.Violations); err != nil {
		m.logger.Error("Ошибка при загрузке отчета о качестве: %v", err)
		return fmt.Errorf("ошибка при загрузке отчета о качестве: %w", err)
	}

	duration := time.Since(startTime)
	m.logger.Info("Фаза Load завершена. Длительность: %v", duration)

	return nil
}
