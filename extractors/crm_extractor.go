package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CRMExtractor извлекает данные таблиц CRM из staging базы
type CRMExtractor struct {
	db        *sql.DB
	logger    *utils.ETLLogger
	batchSize int
}

// NewCRMExtractor создает новый экземпляр CRMExtractor
func NewCRMExtractor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *CRMExtractor {
	return &CRMExtractor{
		db:        db,
		logger:    logger,
		batchSize: batchSize,
	}
}

// ExtractCustomers извлекает сырые записи клиентов CRM.
// Записи возвращаются как есть: с дубликатами, NULL-значениями
// и необрезанными строками — очистка выполняется фазой Transform.
func (e *CRMExtractor) ExtractCustomers() ([]models.CRMCustomerRaw, error) {
	e.logger.Debug("Начало извлечения клиентов CRM")

	query := `
		SELECT cst_id, cst_key, cst_firstname, cst_lastname, cst_marital_status, cst_gndr, cst_create_date
		FROM sales_staging.crm_customers
		ORDER BY cst_id
		LIMIT ?
	`

	rows, err := e.db.Query(query, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса клиентов CRM: %w", err)
	}
	defer rows.Close()

	var customers []models.CRMCustomerRaw
	for rows.Next() {
		var customer models.CRMCustomerRaw
		var id sql.NullInt64
		var key, firstName, lastName, maritalStatus, gender sql.NullString
		var createDate sql.NullTime

		if err := rows.Scan(&id, &key, &firstName, &lastName, &maritalStatus, &gender, &createDate); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки клиента CRM: %w", err)
		}

		if id.Valid {
			idValue := int(id.Int64)
			customer.ID = &idValue
		}
		customer.Key = key.String
		customer.FirstName = firstName.String
		customer.LastName = lastName.String
		customer.MaritalStatus = maritalStatus.String
		customer.Gender = gender.String
		if createDate.Valid {
			createDateValue := createDate.Time
			customer.CreateDate = &createDateValue
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перебора клиентов CRM: %w", err)
	}

	e.logger.Debug("Извлечено клиентов CRM: %d", len(customers))
	return customers, nil
}

// ExtractProducts извлекает сырые версии товаров CRM
func (e *CRMExtractor) ExtractProducts() ([]models.CRMProductRaw, error) {
	e.logger.Debug("Начало извлечения товаров CRM")

	query := `
		SELECT prd_id, prd_key, prd_nm, prd_cost, prd_line, prd_start_dt, prd_end_dt
		FROM sales_staging.crm_products
		ORDER BY prd_id
		LIMIT ?
	`

	rows, err := e.db.Query(query, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса товаров CRM: %w", err)
	}
	defer rows.Close()

	var products []models.CRMProductRaw
	for rows.Next() {
		var product models.CRMProductRaw
		var key, name, line sql.NullString
		var cost sql.NullFloat64
		var startDate, endDate sql.NullTime

		if err := rows.Scan(&product.ID, &key, &name, &cost, &line, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки товара CRM: %w", err)
		}

		product.Key = key.String
		product.Name = name.String
		product.Line = line.String
		if cost.Valid {
			costValue := cost.Float64
			product.Cost = &costValue
		}
		if startDate.Valid {
			startDateValue := startDate.Time
			product.StartDate = &startDateValue
		}
		if endDate.Valid {
			endDateValue := endDate.Time
			product.EndDate = &endDateValue
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перебора товаров CRM: %w", err)
	}

	e.logger.Debug("Извлечено товаров CRM: %d", len(products))
	return products, nil
}

// ExtractSales извлекает сырые строки продаж CRM.
// Даты остаются 8-значными числами источника — их разбор выполняет
// фаза Transform.
func (e *CRMExtractor) ExtractSales() ([]models.CRMSalesRaw, error) {
	e.logger.Debug("Начало извлечения продаж CRM")

	query := `
		SELECT sls_ord_num, sls_prd_key, sls_cust_id, sls_order_dt, sls_ship_dt, sls_due_dt, sls_sales, sls_quantity, sls_price
		FROM sales_staging.crm_sales
		ORDER BY sls_ord_num
		LIMIT ?
	`

	rows, err := e.db.Query(query, e.batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса продаж CRM: %w", err)
	}
	defer rows.Close()

	var sales []models.CRMSalesRaw
	for rows.Next() {
		var sale models.CRMSalesRaw
		var orderNumber, productNumber sql.NullString
		var orderDate, shipDate, dueDate sql.NullInt64
		var salesAmount, price sql.NullFloat64
		var quantity sql.NullInt64

		if err := rows.Scan(&orderNumber, &productNumber, &sale.CustomerID,
			&orderDate, &shipDate, &dueDate, &salesAmount, &quantity, &price); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки продажи CRM: %w", err)
		}

		sale.OrderNumber = orderNumber.String
		sale.ProductNumber = productNumber.String
		sale.OrderDateRaw = int(orderDate.Int64)
		sale.ShipDateRaw = int(shipDate.Int64)
		sale.DueDateRaw = int(dueDate.Int64)
		if salesAmount.Valid {
			salesValue := salesAmount.Float64
			sale.Sales = &salesValue
		}
		if quantity.Valid {
			quantityValue := int(quantity.Int64)
			sale.Quantity = &quantityValue
		}
		if price.Valid {
			priceValue := price.Float64
			sale.Price = &priceValue
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка перебора продаж CRM: %w", err)
	}

	e.logger.Debug("Извлечено продаж CRM: %d", len(sales))
	return sales, nil
}
