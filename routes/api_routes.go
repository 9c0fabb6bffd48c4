// routes/api_routes.go
package routes

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/middleware"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/gorilla/mux"
)

// PipelineTrigger запускает ETL процесс по требованию
type PipelineTrigger interface {
	// TriggerRun запускает ETL асинхронно; возвращает false,
	// если запуск уже выполняется
	TriggerRun() bool
}

// SetupRoutes настраивает все маршруты API управления ETL
func SetupRoutes(router *mux.Router, db *sql.DB, logRepo models.ETLLogRepository, trigger PipelineTrigger) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// API запуска ETL
	router.HandleFunc("/api/etl/run", TriggerRunHandler(trigger)).Methods("POST", "OPTIONS")

	// API журнала запусков
	router.HandleFunc("/api/etl/runs", GetRunsHandler(logRepo)).Methods("GET", "OPTIONS")

	// API отчета о качестве
	router.HandleFunc("/api/etl/quality", GetQualityHandler(db)).Methods("GET", "OPTIONS")
}
