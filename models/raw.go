package models

import (
	"time"
)

// CRMCustomerRaw представляет строку таблицы crm_customers в staging базе данных.
// Данные загружаются из выгрузок CRM без какой-либо валидации:
// возможны дубликаты cst_id, NULL-значения и лишние пробелы в строках.
type CRMCustomerRaw struct {
	ID            *int // натуральный ключ клиента (может отсутствовать)
	Key           string
	FirstName     string
	LastName      string
	MaritalStatus string // код семейного положения ("S", "M", ...)
	Gender        string // код пола ("F", "M", ...)
	CreateDate    *time.Time
}

// CRMProductRaw представляет строку таблицы crm_products в staging базе данных.
// Поле Key составное: первые 5 символов кодируют категорию,
// остаток (с 7-го символа) — номер товара.
type CRMProductRaw struct {
	ID        int
	Key       string
	Name      string
	Cost      *float64
	Line      string // код товарной линейки ("M", "R", "S", "T")
	StartDate *time.Time
	EndDate   *time.Time
}

// CRMSalesRaw представляет строку таблицы crm_sales в staging базе данных.
// Даты хранятся в исходном формате — 8-значные целые числа вида YYYYMMDD,
// при этом встречаются нули и значения неправильной длины.
type CRMSalesRaw struct {
	OrderNumber   string
	ProductNumber string
	CustomerID    int
	OrderDateRaw  int
	ShipDateRaw   int
	DueDateRaw    int
	Sales         *float64
	Quantity      *int
	Price         *float64
}

// ERPCustomerRaw представляет строку таблицы erp_customers в staging базе данных.
// Идентификатор клиента может содержать технический префикс "NAS".
type ERPCustomerRaw struct {
	CustomerKey string
	BirthDate   *time.Time
	Gender      string // свободный текст ("F", "FEMALE", "Male", ...)
}

// ERPLocationRaw представляет строку таблицы erp_locations в staging базе данных
type ERPLocationRaw struct {
	CustomerKey string
	Country     string // код или название страны ("DE", "USA", "Germany", ...)
}

// ERPCategoryRaw представляет строку таблицы erp_categories в staging базе данных
type ERPCategoryRaw struct {
	CategoryID  string
	Category    string
	Subcategory string
	Maintenance string
}

// ExtractedData содержит данные, извлечённые из staging базы за один запуск
type ExtractedData struct {
	CRMCustomers  []CRMCustomerRaw
	CRMProducts   []CRMProductRaw
	CRMSales      []CRMSalesRaw
	ERPCustomers  []ERPCustomerRaw
	ERPLocations  []ERPLocationRaw
	ERPCategories []ERPCategoryRaw
	ExtractedAt   time.Time
}
