// routes/etl_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_dwh/models"
)

// RunsResponse структура ответа API для журнала запусков
type RunsResponse struct {
	Runs []models.ETLRunLog `json:"runs"`
}

// QualityResponse структура ответа API для отчета о качестве
type QualityResponse struct {
	Violations []models.QualityViolation `json:"violations"`
}

// TriggerResponse структура ответа API запуска ETL
type TriggerResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// TriggerRunHandler обрабатывает запросы на запуск ETL процесса
func TriggerRunHandler(trigger PipelineTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := TriggerResponse{}
		w.Header().Set("Content-Type", "application/json")

		if trigger.TriggerRun() {
			response.Started = true
			response.Message = "ETL запущен"
			w.WriteHeader(http.StatusAccepted)
		} else {
			response.Started = false
			response.Message = "ETL уже выполняется"
			w.WriteHeader(http.StatusConflict)
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("Ошибка при формировании ответа: %v", err)
		}
	}
}

// GetRunsHandler обрабатывает запросы на получение журнала запусков ETL
func GetRunsHandler(logRepo models.ETLLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		limit := 20
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
				limit = n
			}
		}

		runs, err := logRepo.GetRecentRuns(limit)
		if err != nil {
			log.Printf("Ошибка при получении журнала запусков: %v", err)
			http.Error(w, "Не удалось получить журнал запусков", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(RunsResponse{Runs: runs}); err != nil {
			log.Printf("Ошибка при формировании ответа: %v", err)
		}
	}
}

// GetQualityHandler обрабатывает запросы на получение отчета о качестве данных
func GetQualityHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT check_name, offending_key, detail
			FROM sales_dwh.quality_violations
			ORDER BY check_name, offending_key
		`

		rows, err := db.Query(query)
		if err != nil {
			log.Printf("Ошибка при получении отчета о качестве: %v", err)
			http.Error(w, "Не удалось получить отчет о качестве", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		violations := []models.QualityViolation{}
		for rows.Next() {
			var violation models.QualityViolation
			if err := rows.Scan(&violation.CheckName, &violation.OffendingKey, &violation.Detail); err != nil {
				log.Printf("Ошибка при чтении нарушения: %v", err)
				http.Error(w, "Не удалось получить отчет о качестве", http.StatusInternalServerError)
				return
			}
			violations = append(violations, violation)
		}

		if err := rows.Err(); err != nil {
			log.Printf("Ошибка при переборе нарушений: %v", err)
			http.Error(w, "Не удалось получить отчет о качестве", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(QualityResponse{Violations: violations}); err != nil {
			log.Printf("Ошибка при формировании ответа: %v", err)
		}
	}
}
