package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// QualityLoader отвечает за загрузку отчета о нарушениях качества
type QualityLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewQualityLoader создает новый экземпляр QualityLoader
func NewQualityLoader(db *sql.DB, logger *utils.ETLLogger) *QualityLoader {
	return &QualityLoader{
		db:     db,
		logger: logger,
	}
}

// Replace полностью заменяет содержимое quality_violations.
// Пустой список нарушений тоже загружается: пустая таблица означает,
// что последний запуск прошел все проверки.
func (l *QualityLoader) Replace(violations []models.QualityViolation) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки отчета о качестве (нарушений: %d)", len(violations))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Удаляем отчет предыдущего запуска
	if _, err := tx.Exec("DELETE FROM sales_dwh.quality_violations"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при очистке quality_violations: %w", err)
	}

	// Подготавливаем запрос для вставки в quality_violations
	stmt, err := tx.Prepare(`
		INSERT INTO sales_dwh.quality_violations
		(check_name, offending_key, detail)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, violation := range violations {
		if _, err := stmt.Exec(violation.CheckName, violation.OffendingKey, violation.Detail); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке нарушения %s: %w", violation.CheckName, err)
		}
	}

	// Фиксируем транзакцию
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка отчета о качестве завершена. Длительность: %v", duration)

	return nil
}
