package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/extractors"
	"github.com/LilVoxy/coursework_dwh/load"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/routes"
	"github.com/LilVoxy/coursework_dwh/transform"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"
	"go.uber.org/atomic"
)

// ETLRunner управляет полным циклом ETL: извлечение из staging,
// преобразование в звездную схему и загрузка в хранилище
type ETLRunner struct {
	config        config.ETLConfig
	dbConnections *config.DBConnections
	logger        *utils.ETLLogger
	extractor     *extractors.Extractor
	transformer   *transform.Transformer
	loadManager   *load.LoadManager
	etlLogRepo    models.ETLLogRepository
	running       atomic.Bool
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner() (*ETLRunner, error) {
	// Получаем конфигурацию
	etlConfig := config.GetConfig()

	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем репозиторий журнала ETL
	etlLogRepo := models.NewMySQLETLLogRepository(connections.WarehouseDB)

	// Создаем таблицу журнала, если она еще не существует
	if err := etlLogRepo.CreateETLLogTable(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблицы журнала ETL: %w", err)
	}

	// Создаем таблицы звездной схемы, если они еще не существуют
	if err := load.CreateWarehouseTables(connections.WarehouseDB); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблиц хранилища: %w", err)
	}

	// Создаем экстрактор
	extractor := extractors.NewExtractor(connections.StagingDB, logger, etlConfig.BatchSize)

	// Создаем трансформатор
	transformer := transform.NewTransformer(logger)

	// Создаем загрузчик
	loadManager := load.NewLoadManager(connections.WarehouseDB, logger)

	return &ETLRunner{
		config:        etlConfig,
		dbConnections: connections,
		logger:        logger,
		extractor:     extractor,
		transformer:   transformer,
		loadManager:   loadManager,
		etlLogRepo:    etlLogRepo,
	}, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	config.CloseDatabases(r.dbConnections)
}

// ExecuteETL выполняет полный ETL процесс.
// Стадии идут строгой цепочкой зависимостей; сбой любой из них
// прерывает оставшиеся и фиксируется в журнале вместе с именем
// стадии и временем выполнения (models.StageError).
func (r *ETLRunner) ExecuteETL() error {
	if !r.running.CAS(false, true) {
		r.logger.Info("Запуск пропущен: ETL процесс уже выполняется")
		return nil
	}
	defer r.running.Store(false)

	r.logger.LogETLStart()
	startTime := time.Now()

	// Создаем запись в журнале ETL
	logID, err := r.etlLogRepo.CreateLogEntry(startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале ETL: %w", err)
	}

	// 1. Фаза извлечения данных (Extract)
	extractedData, err := r.extractor.Extract()
	if err != nil {
		stageErr := models.NewStageError(models.StageExtract, startTime, err)
		r.logger.Error("Ошибка в фазе Extract: %v", err)
		r.updateETLRunLogFailure(logID, stageErr)
		return stageErr
	}

	// 2. Фаза преобразования данных (Transform)
	transformedData, err := r.transformer.Transform(extractedData)
	if err != nil {
		stageErr := models.NewStageError(models.StageTransform, startTime, err)
		r.logger.Error("Ошибка в фазе Transform: %v", err)
		r.updateETLRunLogFailure(logID, stageErr)
		return stageErr
	}

	// 3. Фаза загрузки данных (Load)
	if err := r.loadManager.Load(transformedData); err != nil {
		stageErr := models.NewStageError(models.StageLoad, startTime, err)
		r.logger.Error("Ошибка в фазе Load: %v", err)
		r.updateETLRunLogFailure(logID, stageErr)
		return stageErr
	}

	// Обновляем запись в журнале с информацией об успешном выполнении
	if err := r.etlLogRepo.UpdateLogEntrySuccess(
		logID,
		time.Now(),
		transformedData.Metadata.CustomersProcessed,
		transformedData.Metadata.ProductsProcessed,
		transformedData.Metadata.SalesProcessed,
		transformedData.Metadata.ViolationsFound); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}

	r.logger.LogETLComplete(startTime,
		transformedData.Metadata.CustomersProcessed,
		transformedData.Metadata.ProductsProcessed,
		transformedData.Metadata.SalesProcessed,
		transformedData.Metadata.ViolationsFound)

	return nil
}

// TriggerRun запускает ETL процесс асинхронно (для HTTP API).
// Возвращает false, если запуск уже выполняется.
func (r *ETLRunner) TriggerRun() bool {
	if r.running.Load() {
		return false
	}

	go func() {
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении ETL по запросу API: %v", err)
		}
	}()

	return true
}

// updateETLRunLogFailure обновляет запись в журнале ETL при ошибке
func (r *ETLRunner) updateETLRunLogFailure(logID int, stageErr *models.StageError) {
	if err := r.etlLogRepo.UpdateLogEntryFailure(
		logID,
		time.Now(),
		stageErr.Stage,
		stageErr.Err.Error()); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
}

// StartScheduler запускает планировщик для регулярного выполнения ETL
func (r *ETLRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
}

// StartHTTPServer запускает HTTP API управления ETL
func (r *ETLRunner) StartHTTPServer(ctx context.Context) {
	router := mux.NewRouter()
	routes.SetupRoutes(router, r.dbConnections.WarehouseDB, r.etlLogRepo, r)

	server := &http.Server{
		Addr:    r.config.HTTPAddr,
		Handler: router,
	}

	go func() {
		r.logger.Info("HTTP API запущен на %s", r.config.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("Ошибка HTTP сервера: %v", err)
		}
	}()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("Ошибка при остановке HTTP сервера: %v", err)
	}
	r.logger.Info("HTTP API остановлен")
}

// RunOnce запускает ETL процесс один раз
func RunOnce() {
	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteETL(); err != nil {
		log.Fatalf("Ошибка при выполнении ETL: %v", err)
	}
}

// RunScheduled запускает ETL процесс по расписанию
func RunScheduled() {
	ctx, cancel := signalContext()
	defer cancel()

	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем планировщик
	runner.StartScheduler(ctx)
}

// RunServe запускает HTTP API управления ETL без планировщика
func RunServe() {
	ctx, cancel := signalContext()
	defer cancel()

	runner, err := NewETLRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем HTTP сервер
	runner.StartHTTPServer(ctx)
}

// signalContext создает контекст, отменяемый при сигнале завершения
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем ETL Runner...")
		cancel()
	}()

	return ctx, cancel
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once, scheduled или serve")

	flag.Parse()

	log.Println("Запуск ETL Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce()
	case "scheduled":
		RunScheduled()
	case "serve":
		RunServe()
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, scheduled, serve")
		os.Exit(1)
	}

	log.Println("ETL Runner завершил работу")
}
