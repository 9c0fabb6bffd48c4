package transform

import (
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Transformer координирует процесс преобразования данных staging в звездную схему
type Transformer struct {
	logger          *utils.ETLLogger
	customerDim     *CustomerDimensionProcessor
	productDim      *ProductDimensionProcessor
	salesFProcessor *SalesFactsProcessor
	qualityChecker  *QualityChecker
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger:          logger,
		customerDim:     NewCustomerDimensionProcessor(logger),
		productDim:      NewProductDimensionProcessor(logger),
		salesFProcessor: NewSalesFactsProcessor(logger),
		qualityChecker:  NewQualityChecker(logger),
	}
}

// Transform выполняет полный процесс преобразования извлеченных данных.
// Стадии выполняются строго последовательно: очистка и дедупликация
// источников, согласование фактов, конформация измерений, конформация
// фактов и, в конце, проверки целостности поверх готовых данных.
func (t *Transformer) Transform(extractedData *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	transformedData := &models.TransformedData{}

	// 1. Очистка и дедупликация клиентов CRM: на каждый натуральный ID
	// остается последняя по дате создания запись, записи без ID отбрасываются
	t.logger.Info("Очистка данных клиентов CRM...")
	normalizedCustomers := make([]models.CustomerNormalized, 0, len(extractedData.CRMCustomers))
	for _, raw := range extractedData.CRMCustomers {
		if raw.ID == nil {
			// Без натурального ключа запись невозможно суррогатировать
			continue
		}
		normalizedCustomers = append(normalizedCustomers, NormalizeCustomer(raw))
	}

	dedupedCustomers := ResolveLatest(normalizedCustomers,
		func(c models.CustomerNormalized) (int, bool) {
			return c.ID, true
		},
		func(candidate, current models.CustomerNormalized) bool {
			if candidate.CreateDate == nil {
				return false
			}
			if current.CreateDate == nil {
				return true
			}
			return candidate.CreateDate.After(*current.CreateDate)
		})
	t.logger.Info("Клиентов после дедупликации: %d (из %d)", len(dedupedCustomers), len(normalizedCustomers))

	// 2. Очистка версий товаров и расчет окон действия
	t.logger.Info("Очистка данных товаров CRM...")
	normalizedProducts := make([]models.ProductNormalized, 0, len(extractedData.CRMProducts))
	for _, raw := range extractedData.CRMProducts {
		normalizedProducts = append(normalizedProducts, NormalizeProduct(raw))
	}
	productsWithWindows := ResolveValidityWindows(normalizedProducts)
	currentProducts := CurrentVersions(productsWithWindows)
	t.logger.Info("Актуальных версий товаров: %d (из %d)", len(currentProducts), len(productsWithWindows))

	// 3. Согласование измеримых полей продаж
	t.logger.Info("Согласование строк продаж...")
	reconciledSales := ReconcileSales(extractedData.CRMSales)

	// 4. Очистка обогащающих таблиц ERP
	now := time.Now()
	erpCustomers := make([]models.ERPCustomerNormalized, 0, len(extractedData.ERPCustomers))
	for _, raw := range extractedData.ERPCustomers {
		erpCustomers = append(erpCustomers, NormalizeERPCustomer(raw, now))
	}

	erpLocations := make([]models.ERPLocationNormalized, 0, len(extractedData.ERPLocations))
	for _, raw := range extractedData.ERPLocations {
		erpLocations = append(erpLocations, NormalizeERPLocation(raw))
	}

	erpCategories := make([]models.ERPCategoryNormalized, 0, len(extractedData.ERPCategories))
	for _, raw := range extractedData.ERPCategories {
		erpCategories = append(erpCategories, NormalizeERPCategory(raw))
	}

	// 5. Конформация измерения клиентов
	t.logger.Info("Конформация измерения клиентов...")
	transformedData.Customers = t.customerDim.ProcessCustomerDimension(dedupedCustomers, erpCustomers, erpLocations)

	// 6. Конформация измерения товаров
	t.logger.Info("Конформация измерения товаров...")
	transformedData.Products = t.productDim.ProcessProductDimension(currentProducts, erpCategories)

	// 7. Конформация фактов продаж
	t.logger.Info("Конформация фактов продаж...")
	transformedData.Sales = t.salesFProcessor.ProcessSalesFacts(reconciledSales, transformedData.Customers, transformedData.Products)

	// 8. Проверки целостности поверх готовых данных
	t.logger.Info("Проверки целостности...")
	transformedData.Violations = t.qualityChecker.Check(transformedData.Customers, transformedData.Products, transformedData.Sales)

	// Заполняем метаданные
	transformedData.Metadata = models.ETLMetadata{
		RunTimestamp:       time.Now(),
		CustomersProcessed: len(transformedData.Customers),
		ProductsProcessed:  len(transformedData.Products),
		SalesProcessed:     len(transformedData.Sales),
		ViolationsFound:    len(transformedData.Violations),
	}

	duration := time.Since(startTime)
	t.logger.Info("Фаза Transform завершена. Длительность: %v", duration)

	return transformedData, nil
}
