package load

import (
	"database/sql"
	"fmt"
)

// DDL таблиц хранилища. Таблицы пересоздаются только при отсутствии;
// содержимое заменяется загрузчиками при каждом запуске.
var warehouseTables = []struct {
	name string
	ddl  string
}{
	{
		name: "dim_customers",
		ddl: `
		CREATE TABLE IF NOT EXISTS sales_dwh.dim_customers (
			customer_key INT PRIMARY KEY,
			customer_id INT NOT NULL,
			customer_number VARCHAR(50) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			country VARCHAR(100) NOT NULL,
			marital_status VARCHAR(20) NOT NULL,
			gender VARCHAR(20) NOT NULL,
			birth_date DATE NULL,
			create_date DATE NULL
		);
		`,
	},
	{
		name: "dim_products",
		ddl: `
		CREATE TABLE IF NOT EXISTS sales_dwh.dim_products (
			product_key INT PRIMARY KEY,
			product_id INT NOT NULL,
			product_number VARCHAR(50) NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			category_id VARCHAR(50) NOT NULL,
			category VARCHAR(100) NOT NULL,
			subcategory VARCHAR(100) NOT NULL,
			maintenance VARCHAR(20) NOT NULL,
			cost DECIMAL(12, 2) NOT NULL,
			product_line VARCHAR(50) NOT NULL,
			start_date DATE NULL
		);
		`,
	},
	{
		name: "fact_sales",
		ddl: `
		CREATE TABLE IF NOT EXISTS sales_dwh.fact_sales (
			order_number VARCHAR(50) NOT NULL,
			product_key INT NULL,
			customer_key INT NULL,
			order_date DATE NULL,
			ship_date DATE NULL,
			due_date DATE NULL,
			sales_amount DECIMAL(12, 2) NULL,
			quantity INT NULL,
			price DECIMAL(12, 2) NULL
		);
		`,
	},
	{
		name: "quality_violations",
		ddl: `
		CREATE TABLE IF NOT EXISTS sales_dwh.quality_violations (
			check_name VARCHAR(64) NOT NULL,
			offending_key VARCHAR(100) NOT NULL,
			detail TEXT
		);
		`,
	},
}

// CreateWarehouseTables создает таблицы звездной схемы, если они не существуют
func CreateWarehouseTables(db *sql.DB) error {
	for _, table := range warehouseTables {
		if _, err := db.Exec(table.ddl); err != nil {
			return fmt.Errorf("ошибка при создании таблицы %s: %w", table.name, err)
		}
	}

	return nil
}
