package config

import (
	"os"
	"strconv"
	"time"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Конфигурация для подключения к staging БД (исходной)
	StagingConfig DatabaseConfig `json:"staging_config"`

	// Конфигурация для подключения к БД хранилища (целевой)
	WarehouseConfig DatabaseConfig `json:"warehouse_config"`

	// Интервал запуска ETL
	RunInterval time.Duration `json:"run_interval"`

	// Максимальное количество записей, извлекаемых из одной таблицы за запуск
	BatchSize int `json:"batch_size"`

	// Адрес HTTP API (режим serve)
	HTTPAddr string `json:"http_addr"`

	// Включение/отключение логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultStagingConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "sales_staging",
	}

	DefaultWarehouseConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "sales_dwh",
	}

	DefaultETLConfig = ETLConfig{
		StagingConfig:         DefaultStagingConfig,
		WarehouseConfig:       DefaultWarehouseConfig,
		RunInterval:           24 * time.Hour,
		BatchSize:             100000,
		HTTPAddr:              ":8090",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию ETL с учетом переменных окружения
func GetConfig() ETLConfig {
	config := DefaultETLConfig

	// Переопределяем настройки подключения из окружения
	applyDatabaseEnv(&config.StagingConfig, "DWH_STAGING")
	applyDatabaseEnv(&config.WarehouseConfig, "DWH_WAREHOUSE")

	if addr := os.Getenv("DWH_HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}

	if interval := os.Getenv("DWH_RUN_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			config.RunInterval = d
		}
	}

	if batch := os.Getenv("DWH_BATCH_SIZE"); batch != "" {
		if n, err := strconv.Atoi(batch); err == nil && n > 0 {
			config.BatchSize = n
		}
	}

	return config
}

// applyDatabaseEnv переопределяет настройки подключения из переменных окружения
// с указанным префиксом (например, DWH_STAGING_HOST, DWH_STAGING_PASSWORD)
func applyDatabaseEnv(config *DatabaseConfig, prefix string) {
	if host := os.Getenv(prefix + "_HOST"); host != "" {
		config.Host = host
	}
	if port := os.Getenv(prefix + "_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			config.Port = n
		}
	}
	if user := os.Getenv(prefix + "_USER"); user != "" {
		config.User = user
	}
	if password := os.Getenv(prefix + "_PASSWORD"); password != "" {
		config.Password = password
	}
	if name := os.Getenv(prefix + "_DBNAME"); name != "" {
		config.DBName = name
	}
}
