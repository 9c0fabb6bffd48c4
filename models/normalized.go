package models

import (
	"time"
)

// Unknown — каноническое значение для нераспознанных или отсутствующих
// категориальных кодов. Любой немаппируемый код деградирует до этого
// значения, а не до ошибки.
const Unknown = "n/a"

// Канонические значения семейного положения
const (
	MaritalSingle  = "Single"
	MaritalMarried = "Married"
)

// Канонические значения пола
const (
	GenderFemale = "Female"
	GenderMale   = "Male"
)

// Канонические значения товарной линейки
const (
	LineMountain   = "Mountain"
	LineRoad       = "Road"
	LineOtherSales = "Other Sales"
	LineTouring    = "Touring"
)

// CustomerNormalized представляет клиента CRM после очистки:
// строки обрезаны, коды приведены к каноническим значениям,
// дубликаты по ID ещё не устранены.
type CustomerNormalized struct {
	ID            int
	Key           string
	FirstName     string
	LastName      string
	MaritalStatus string
	Gender        string
	CreateDate    *time.Time
}

// ProductNormalized представляет версию товара CRM после очистки.
// CategoryID и ProductNumber выделены из составного ключа;
// EndDate пересчитывается резолвером окон действия.
type ProductNormalized struct {
	ID            int
	CategoryID    string
	ProductNumber string
	Name          string
	Cost          float64
	Line          string
	StartDate     *time.Time
	EndDate       *time.Time
}

// SalesReconciled представляет строку продажи после согласования измеримых полей.
// Даты распарсены из 8-значных чисел (или NULL), суммы и цены
// скорректированы по правилам кросс-полевой согласованности.
type SalesReconciled struct {
	OrderNumber   string
	ProductNumber string
	CustomerID    int
	OrderDate     *time.Time
	ShipDate      *time.Time
	DueDate       *time.Time
	Sales         *float64
	Quantity      *int
	Price         *float64
}

// ERPCustomerNormalized представляет демографические данные ERP после очистки:
// префикс "NAS" у ключа удалён, пол канонизирован, даты рождения
// из будущего заменены на NULL.
type ERPCustomerNormalized struct {
	CustomerKey string
	BirthDate   *time.Time
	Gender      string
}

// ERPLocationNormalized представляет страну клиента по данным ERP
type ERPLocationNormalized struct {
	CustomerKey string
	Country     string
}

// ERPCategoryNormalized представляет справочник категорий товаров ERP
type ERPCategoryNormalized struct {
	CategoryID  string
	Category    string
	Subcategory string
	Maintenance string
}
