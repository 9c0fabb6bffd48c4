package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerLoader отвечает за загрузку измерения клиентов
type CustomerLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerLoader создает новый экземпляр CustomerLoader
func NewCustomerLoader(db *sql.DB, logger *utils.ETLLogger) *CustomerLoader {
	return &CustomerLoader{
		db:     db,
		logger: logger,
	}
}

// Replace полностью заменяет содержимое dim_customers.
// Удаление старого снимка и вставка нового выполняются в одной транзакции:
// при сбое таблица остается в состоянии предыдущего запуска.
func (l *CustomerLoader) Replace(customers []models.CustomerDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения клиентов (всего: %d)", len(customers))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Удаляем предыдущий снимок измерения
	if _, err := tx.Exec("DELETE FROM sales_dwh.dim_customers"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при очистке dim_customers: %w", err)
	}

	// Подготавливаем запрос для вставки в dim_customers
	stmt, err := tx.Prepare(`
		INSERT INTO sales_dwh.dim_customers
		(customer_key, customer_id, customer_number, first_name, last_name,
		country, marital_status, gender, birth_date, create_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0

	for _, customer := range customers {
		_, err := stmt.Exec(
			customer.CustomerKey,
			customer.CustomerID,
			customer.CustomerNumber,
			customer.FirstName,
			customer.LastName,
			customer.Country,
			customer.MaritalStatus,
			customer.Gender,
			customer.BirthDate,
			customer.CreateDate,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке клиента %d в dim_customers: %w", customer.CustomerID, err)
		}

		processed++

		// Логируем прогресс каждые 1000 клиентов
		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d клиентов...", processed, len(customers))
		}
	}

	// Фиксируем транзакцию
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка измерения клиентов завершена. Загружено записей: %d. Длительность: %v", processed, duration)

	return nil
}
