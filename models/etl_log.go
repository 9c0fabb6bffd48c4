package models

import (
	"time"
)

// ETLRunLog представляет запись о запуске ETL процесса
type ETLRunLog struct {
	ID                   int       `json:"id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	CustomersProcessed   int       `json:"customers_processed"`
	ProductsProcessed    int       `json:"products_processed"`
	SalesProcessed       int       `json:"sales_processed"`
	ViolationsFound      int       `json:"violations_found"`
	FailedStage          string    `json:"failed_stage,omitempty"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// ETLLogRepository представляет репозиторий для работы с журналом запусков ETL
type ETLLogRepository interface {
	// CreateLogEntry создает новую запись о запуске ETL
	CreateLogEntry(startTime time.Time) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
	UpdateLogEntrySuccess(
		id int,
		endTime time.Time,
		customersProcessed,
		productsProcessed,
		salesProcessed,
		violationsFound int) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
	UpdateLogEntryFailure(id int, endTime time.Time, failedStage, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
	GetLastSuccessfulRun() (*ETLRunLog, error)

	// GetRecentRuns получает последние запуски ETL (от новых к старым)
	GetRecentRuns(limit int) ([]ETLRunLog, error)
}

// ETLMetadata содержит метаданные о запуске ETL
type ETLMetadata struct {
	RunTimestamp       time.Time
	CustomersProcessed int
	ProductsProcessed  int
	SalesProcessed     int
	ViolationsFound    int
}
