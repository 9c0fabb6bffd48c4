package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу журнала запусков ETL, если она не существует
func (r *MySQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS sales_dwh.etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		customers_processed INT DEFAULT 0,
		products_processed INT DEFAULT 0,
		sales_processed INT DEFAULT 0,
		violations_found INT DEFAULT 0,
		failed_stage VARCHAR(64),
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MySQLETLLogRepository) CreateLogEntry(startTime time.Time) (int, error) {
	query := `
	INSERT INTO sales_dwh.etl_run_log (start_time, status)
	VALUES (?, 'in_progress')
	`

	result, err := r.db.Exec(query, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(
	id int,
	endTime time.Time,
	customersProcessed,
	productsProcessed,
	salesProcessed,
	violationsFound int) error {

	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM sales_dwh.etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	// Обновляем запись
	query := `
	UPDATE sales_dwh.etl_run_log
	SET
		end_time = ?,
		status = 'success',
		customers_processed = ?,
		products_processed = ?,
		sales_processed = ?,
		violations_found = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(
		query,
		endTime,
		customersProcessed,
		productsProcessed,
		salesProcessed,
		violationsFound,
		executionTime,
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, failedStage, errorMessage string) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM sales_dwh.etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	// Обновляем запись
	query := `
	UPDATE sales_dwh.etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		failed_stage = ?,
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, failedStage, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MySQLETLLogRepository) GetLastSuccessfulRun() (*ETLRunLog, error) {
	query := `
	SELECT
		id, start_time, end_time, status,
		customers_processed, products_processed, sales_processed, violations_found,
		IFNULL(failed_stage, ''), IFNULL(error_message, ''), execution_time_seconds
	FROM sales_dwh.etl_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var runLog ETLRunLog
	err := r.db.QueryRow(query).Scan(
		&runLog.ID,
		&runLog.StartTime,
		&runLog.EndTime,
		&runLog.Status,
		&runLog.CustomersProcessed,
		&runLog.ProductsProcessed,
		&runLog.SalesProcessed,
		&runLog.ViolationsFound,
		&runLog.FailedStage,
		&runLog.ErrorMessage,
		&runLog.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			// Успешных запусков ещё не было — это не ошибка
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении последнего успешного запуска: %w", err)
	}

	return &runLog, nil
}

// GetRecentRuns получает последние запуски ETL (от новых к старым)
func (r *MySQLETLLogRepository) GetRecentRuns(limit int) ([]ETLRunLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT
		id, start_time, IFNULL(end_time, start_time), status,
		customers_processed, products_processed, sales_processed, violations_found,
		IFNULL(failed_stage, ''), IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM sales_dwh.etl_run_log
	ORDER BY start_time DESC
	LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка запусков: %w", err)
	}
	defer rows.Close()

	var runs []ETLRunLog
	for rows.Next() {
		var runLog ETLRunLog
		if err := rows.Scan(
			&runLog.ID,
			&runLog.StartTime,
			&runLog.EndTime,
			&runLog.Status,
			&runLog.CustomersProcessed,
			&runLog.ProductsProcessed,
			&runLog.SalesProcessed,
			&runLog.ViolationsFound,
			&runLog.FailedStage,
			&runLog.ErrorMessage,
			&runLog.ExecutionTimeSeconds,
		); err != nil {
			return nil, fmt.Errorf("ошибка при чтении записи журнала: %w", err)
		}
		runs = append(runs, runLog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при переборе записей журнала: %w", err)
	}

	return runs, nil
}
