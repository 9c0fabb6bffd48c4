package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Extractor координирует процесс извлечения данных из staging базы
type Extractor struct {
	crmExtractor *CRMExtractor
	erpExtractor *ERPExtractor
	logger       *utils.ETLLogger
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *Extractor {
	return &Extractor{
		crmExtractor: NewCRMExtractor(db, logger, batchSize),
		erpExtractor: NewERPExtractor(db, logger, batchSize),
		logger:       logger,
	}
}

// Extract выполняет полное извлечение всех staging таблиц.
// Конвейер работает по схеме truncate-and-reload, поэтому извлечение
// всегда полное — инкрементальная фильтрация не применяется.
func (e *Extractor) Extract() (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var extractedData models.ExtractedData
	var err error

	// Извлекаем таблицы CRM
	extractedData.CRMCustomers, err = e.crmExtractor.ExtractCustomers()
	if err != nil {
		e.logger.Error("Ошибка при извлечении клиентов CRM: %v", err)
		return nil, fmt.Errorf("ошибка извлечения клиентов CRM: %w", err)
	}

	extractedData.CRMProducts, err = e.crmExtractor.ExtractProducts()
	if err != nil {
		e.logger.Error("Ошибка при извлечении товаров CRM: %v", err)
		return nil, fmt.Errorf("ошибка извлечения товаров CRM: %w", err)
	}

	extractedData.CRMSales, err = e.crmExtractor.ExtractSales()
	if err != nil {
		e.logger.Error("Ошибка при извлечении продаж CRM: %v", err)
		return nil, fmt.Errorf("ошибка извлечения продаж CRM: %w", err)
	}

	// Извлекаем таблицы ERP
	extractedData.ERPCustomers, err = e.erpExtractor.ExtractCustomers()
	if err != nil {
		e.logger.Error("Ошибка при извлечении клиентов ERP: %v", err)
		return nil, fmt.Errorf("ошибка извлечения клиентов ERP: %w", err)
	}

	extractedData.ERPLocations, err = e.erpExtractor.ExtractLocations()
	if err != nil {
		e.logger.Error("Ошибка при извлечении стран ERP: %v", err)
		return nil, fmt.Errorf("ошибка извлечения стран ERP: %w", err)
	}

	extractedData.ERPCategories, err = e.erpExtractor.ExtractCategories()
	if err != nil {
		e.logger.Error("Ошибка при извлечении категорий ERP: %v", err)
		return nil, fmt.Errorf("ошибка извлечения категорий ERP: %w", err)
	}

	extractedData.ExtractedAt = time.Now()

	crmRows := len(extractedData.CRMCustomers) + len(extractedData.CRMProducts) + len(extractedData.CRMSales)
	erpRows := len(extractedData.ERPCustomers) + len(extractedData.ERPLocations) + len(extractedData.ERPCategories)
	e.logger.LogExtractComplete(crmRows, erpRows, time.Since(startTime))

	return &extractedData, nil
}
