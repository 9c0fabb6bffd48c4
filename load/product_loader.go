package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductLoader отвечает за загрузку измерения товаров
type ProductLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewProductLoader создает новый экземпляр ProductLoader
func NewProductLoader(db *sql.DB, logger *utils.ETLLogger) *ProductLoader {
	return &ProductLoader{
		db:     db,
		logger: logger,
	}
}

// Replace полностью заменяет содержимое dim_products в одной транзакции
func (l *ProductLoader) Replace(products []models.ProductDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения товаров (всего: %d)", len(products))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Удаляем предыдущий снимок измерения
	if _, err := tx.Exec("DELETE FROM sales_dwh.dim_products"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при очистке dim_products: %w", err)
	}

	// Подготавливаем запрос для вставки в dim_products
	stmt, err := tx.Prepare(`
		INSERT INTO sales_dwh.dim_products
		(product_key, product_id, product_number, product_name,
		category_id, category, subcategory, maintenance, cost, product_line, start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0

	for _, product := range products {
		_, err := stmt.Exec(
			product.ProductKey,
			product.ProductID,
			product.ProductNumber,
			product.Name,
			product.CategoryID,
			product.Category,
			product.Subcategory,
			product.Maintenance,
			product.Cost,
			product.Line,
			product.StartDate,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке товара %s в dim_products: %w", product.ProductNumber, err)
		}

		processed++

		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d товаров...", processed, len(products))
		}
	}

	// Фиксируем транзакцию
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка измерения товаров завершена. Загружено записей: %d. Длительность: %v", processed, duration)

	return nil
}
