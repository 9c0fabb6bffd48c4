package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesLoader отвечает за загрузку фактов продаж
type SalesLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewSalesLoader создает новый экземпляр SalesLoader
func NewSalesLoader(db *sql.DB, logger *utils.ETLLogger) *SalesLoader {
	return &SalesLoader{
		db:     db,
		logger: logger,
	}
}

// Replace полностью заменяет содержимое fact_sales в одной транзакции.
// NULL-ключи фактов-сирот загружаются как есть — их отслеживает
// отчет о качестве, а не загрузчик.
func (l *SalesLoader) Replace(facts []models.SalesFact) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки фактов продаж (всего: %d)", len(facts))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Удаляем предыдущий снимок фактов
	if _, err := tx.Exec("DELETE FROM sales_dwh.fact_sales"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при очистке fact_sales: %w", err)
	}

	// Подготавливаем запрос для вставки в fact_sales
	stmt, err := tx.Prepare(`
		INSERT INTO sales_dwh.fact_sales
		(order_number, product_key, customer_key,
		order_date, ship_date, due_date, sales_amount, quantity, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0

	for _, fact := range facts {
		_, err := stmt.Exec(
			fact.OrderNumber,
			fact.ProductKey,
			fact.CustomerKey,
			fact.OrderDate,
			fact.ShipDate,
			fact.DueDate,
			fact.Sales,
			fact.Quantity,
			fact.Price,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке факта %s в fact_sales: %w", fact.OrderNumber, err)
		}

		processed++

		if processed%5000 == 0 {
			l.logger.Debug("Загружено %d из %d фактов...", processed, len(facts))
		}
	}

	// Фиксируем транзакцию
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка фактов продаж завершена. Загружено записей: %d. Длительность: %v", processed, duration)

	return nil
}
