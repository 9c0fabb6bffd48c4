package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

// buildExtractedData собирает небольшой, но полный набор staging данных:
// дубликаты клиентов, две версии товара, сироту среди продаж
func buildExtractedData() *models.ExtractedData {
	customerID := 17
	jan := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	birthDate := time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC)

	cost := 120.0
	quantity := 3
	price := 10.0
	zeroSales := 0.0

	return &models.ExtractedData{
		CRMCustomers: []models.CRMCustomerRaw{
			{ID: &customerID, Key: "AW00000017", FirstName: " Anna ", Gender: "F", MaritalStatus: "S", CreateDate: &jan},
			{ID: &customerID, Key: "AW00000017", FirstName: "Anna", Gender: "f", MaritalStatus: "M", CreateDate: &jun},
			{ID: nil, Key: "AW-GHOST", FirstName: "Ghost"},
		},
		CRMProducts: []models.CRMProductRaw{
			{ID: 1, Key: "AC-HE-HL-U509", Name: "Helmet v1", Cost: &cost, Line: "M", StartDate: dateOf(2020, 1, 1)},
			{ID: 2, Key: "AC-HE-HL-U509", Name: "Helmet v2", Cost: &cost, Line: "M", StartDate: dateOf(2020, 7, 1)},
		},
		CRMSales: []models.CRMSalesRaw{
			{
				OrderNumber:   "SO3001",
				ProductNumber: "HL-U509",
				CustomerID:    17,
				OrderDateRaw:  20210610,
				ShipDateRaw:   20210617,
				DueDateRaw:    0,
				Quantity:      &quantity,
				Price:         &price,
				Sales:         &zeroSales,
			},
			{
				OrderNumber:   "SO3002",
				ProductNumber: "NO-SUCH",
				CustomerID:    17,
				OrderDateRaw:  20210601,
			},
		},
		ERPCustomers: []models.ERPCustomerRaw{
			{CustomerKey: "NASAW00000017", BirthDate: &birthDate, Gender: "MALE"},
		},
		ERPLocations: []models.ERPLocationRaw{
			{CustomerKey: "AW00000017", Country: "DE"},
		},
		ERPCategories: []models.ERPCategoryRaw{
			{CategoryID: "AC_HE", Category: "Accessories", Subcategory: "Helmets", Maintenance: "No"},
		},
	}
}

func TestTransformEndToEnd(t *testing.T) {
	transformer := NewTransformer(testLogger())

	result, err := transformer.Transform(buildExtractedData())
	require.NoError(t, err)

	// Клиент: дубликаты схлопнулись в последнюю по дате создания запись,
	// запись без натурального ключа отброшена
	require.Len(t, result.Customers, 1)
	customer := result.Customers[0]
	assert.Equal(t, 1, customer.CustomerKey)
	assert.Equal(t, 17, customer.CustomerID)
	assert.Equal(t, models.MaritalMarried, customer.MaritalStatus)

	// Пол из CRM имеет приоритет над значением ERP
	assert.Equal(t, models.GenderFemale, customer.Gender)

	// Обогащение из ERP: дата рождения и страна
	require.NotNil(t, customer.BirthDate)
	assert.Equal(t, "Germany", customer.Country)

	// Товар: в измерении только актуальная версия с категорией из ERP
	require.Len(t, result.Products, 1)
	product := result.Products[0]
	assert.Equal(t, "Helmet v2", product.Name)
	assert.Equal(t, "Accessories", product.Category)

	// Факты: сумма пересчитана, сирота сохранена с NULL-ключом товара
	require.Len(t, result.Sales, 2)

	fact := result.Sales[0]
	require.NotNil(t, fact.Sales)
	assert.Equal(t, 30.0, *fact.Sales)
	assert.Nil(t, fact.DueDate)
	require.NotNil(t, fact.CustomerKey)
	require.NotNil(t, fact.ProductKey)

	orphan := result.Sales[1]
	assert.Nil(t, orphan.ProductKey)
	require.NotNil(t, orphan.CustomerKey)

	// Сирота попала в отчет о качестве
	require.Len(t, result.Violations, 1)
	assert.Equal(t, models.CheckFactProductResolve, result.Violations[0].CheckName)
	assert.Equal(t, "SO3002", result.Violations[0].OffendingKey)

	// Метаданные соответствуют объемам
	assert.Equal(t, 1, result.Metadata.CustomersProcessed)
	assert.Equal(t, 1, result.Metadata.ProductsProcessed)
	assert.Equal(t, 2, result.Metadata.SalesProcessed)
	assert.Equal(t, 1, result.Metadata.ViolationsFound)
}

func TestTransformIsIdempotent(t *testing.T) {
	transformer := NewTransformer(testLogger())

	first, err := transformer.Transform(buildExtractedData())
	require.NoError(t, err)

	second, err := transformer.Transform(buildExtractedData())
	require.NoError(t, err)

	// Повторный запуск на неизменных данных дает идентичный результат,
	// включая назначение суррогатных ключей
	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.Sales, second.Sales)
	assert.Equal(t, first.Violations, second.Violations)
}
