package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ERPExtractor извлекает обогащающие таблицы ERP из staging базы
type ERPExtractor struct {
	db        *sql.DB
	logger    *utils.ETLLogger
	batchSize int
}

// NewERPExtractor создает новый экземпляр ERPExtractor
func NewERPExtractor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *ERPExtractor {
	return &ERPExtractor{
		db:        db,
		logger:    logger,
		batchSize: batchSize,
	}
}

// ExtractCustomers извлекает демографические записи клиентов ERP
func (e *ERPExtractor) ExtractCustomers() ([]models.ERPCustomerRaw, error) {
	e.logger.Debug("Начало извлечения клиентов ERP")

	query := `
		SELECT cid, bdate, gen
		FROM sales_staging.erp_customers
		ORDER BY cid
		LIMIT ?
	`

	rows, err := e.db.Query(query, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса клиентов ERP: %w", err)
	}
	defer rows.Close()

	var customers []models.ERPCustomerRaw
	for rows.Next() {
		var customer models.ERPCustomerRaw
		var key, gender sql.NullString
		var birthDate sql.NullTime

		if err := rows.Scan(&key, &birthDate, &gender); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки клиента ERP: %w", err)
		}

		customer.CustomerKey = key.String
		customer.Gender = gender.String
		if birthDate.Valid {
			birthDateValue := birthDate.Time
			customer.BirthDate = &birthDateValue
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перебора клиентов ERP: %w", err)
	}

	e.logger.Debug("Извлечено клиентов ERP: %d", len(customers))
	return customers, nil
}

// ExtractLocations извлекает записи о странах клиентов ERP
func (e *ERPExtractor) ExtractLocations() ([]models.ERPLocationRaw, error) {
	e.logger.Debug("Начало извлечения стран ERP")

	query := `
		SELECT cid, cntry
		FROM sales_staging.erp_locations
		ORDER BY cid
		LIMIT ?
	`

	rows, err := e.db.Query(query, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса стран ERP: %w", err)
	}
	defer rows.Close()

	var locations []models.ERPLocationRaw
	for rows.Next() {
		var location models.ERPLocationRaw
		var key, country sql.NullString

		if err := rows.Scan(&key, &country); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки страны ERP: %w", err)
		}

		location.CustomerKey = key.String
		location.Country = country.String

		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перебора стран ERP: %w", err)
	}

	e.logger.Debug("Извлечено стран ERP: %d", len(locations))
	return locations, nil
}

// ExtractCategories извлекает справочник категорий товаров ERP
func (e *ERPExtractor) ExtractCategories() ([]models.ERPCategoryRaw, error) {
	e.logger.Debug("Начало извлечения категорий ERP")

	query := `
		SELECT id, cat, subcat, maintenance
		FROM sales_staging.erp_categories
		ORDER BY id
		LIMIT ?
	`

	rows, err := e.db.Query(query, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса категорий ERP: %w", err)
	}
	defer rows.Close()

	var categories []models.ERPCategoryRaw
	for rows.Next() {
		var category models.ERPCategoryRaw
		var id, cat, subcat, maintenance sql.NullString

		if err := rows.Scan(&id, &cat, &subcat, &maintenance); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки категории ERP: %w", err)
		}

		category.CategoryID = id.String
		category.Category = cat.String
		category.Subcategory = subcat.String
		category.Maintenance = maintenance.String

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перебора категорий ERP: %w", err)
	}

	e.logger.Debug("Извлечено категорий ERP: %d", len(categories))
	return categories, nil
}
