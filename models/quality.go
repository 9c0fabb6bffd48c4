package models

// Имена проверок целостности хранилища
const (
	CheckCustomerKeyUnique   = "dim_customers_surrogate_unique"
	CheckProductKeyUnique    = "dim_products_surrogate_unique"
	CheckFactCustomerResolve = "fact_sales_customer_resolves"
	CheckFactProductResolve  = "fact_sales_product_resolves"
	CheckFactDateOrder       = "fact_sales_date_order"
)

// QualityViolation представляет одно нарушение, найденное проверками целостности.
// Проверки только сообщают о нарушениях — исправления выполняются выше по конвейеру.
type QualityViolation struct {
	CheckName    string `json:"check_name"`
	OffendingKey string `json:"offending_key"`
	Detail       string `json:"detail"`
}
