package models

import (
	"time"
)

// CustomerDimension представляет измерение клиентов в хранилище (dim_customers).
// Ровно одна строка на натуральный ID клиента; CustomerKey — суррогатный ключ,
// плотная 1-based последовательность, пересобираемая при каждом запуске.
type CustomerDimension struct {
	CustomerKey    int        `json:"customer_key"`
	CustomerID     int        `json:"customer_id"`
	CustomerNumber string     `json:"customer_number"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Country        string     `json:"country"`
	MaritalStatus  string     `json:"marital_status"`
	Gender         string     `json:"gender"`
	BirthDate      *time.Time `json:"birth_date"`
	CreateDate     *time.Time `json:"create_date"`
}

// ProductDimension представляет измерение товаров в хранилище (dim_products).
// Содержит только актуальные версии товаров — те, чьё окно действия не закрыто.
type ProductDimension struct {
	ProductKey    int        `json:"product_key"`
	ProductID     int        `json:"product_id"`
	ProductNumber string     `json:"product_number"`
	Name          string     `json:"product_name"`
	CategoryID    string     `json:"category_id"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	Maintenance   string     `json:"maintenance"`
	Cost          float64    `json:"cost"`
	Line          string     `json:"product_line"`
	StartDate     *time.Time `json:"start_date"`
}

// SalesFact представляет факт продажи в хранилище (fact_sales).
// Суррогатные ключи измерений равны NULL, если натуральный ключ
// не нашёл соответствия в измерении (строка-сирота).
type SalesFact struct {
	OrderNumber string     `json:"order_number"`
	ProductKey  *int       `json:"product_key"`
	CustomerKey *int       `json:"customer_key"`
	OrderDate   *time.Time `json:"order_date"`
	ShipDate    *time.Time `json:"ship_date"`
	DueDate     *time.Time `json:"due_date"`
	Sales       *float64   `json:"sales_amount"`
	Quantity    *int       `json:"quantity"`
	Price       *float64   `json:"price"`
}
