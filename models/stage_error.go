package models

import (
	"fmt"
	"time"
)

// Имена стадий ETL процесса
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// StageError описывает фатальный сбой одной из стадий ETL.
// Сбой прерывает оставшиеся стадии запуска; уже загруженные таблицы
// сохраняют состояние — частично выполненный запуск не откатывается.
type StageError struct {
	Stage   string
	Elapsed time.Duration
	Err     error
}

// Error возвращает текстовое описание сбоя стадии
func (e *StageError) Error() string {
	return fmt.Sprintf("стадия %s завершилась с ошибкой через %v: %v", e.Stage, e.Elapsed, e.Err)
}

// Unwrap возвращает исходную ошибку
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError создает новый StageError для указанной стадии
func NewStageError(stage string, startTime time.Time, err error) *StageError {
	return &StageError{
		Stage:   stage,
		Elapsed: time.Since(startTime),
		Err:     err,
	}
}
