package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

func TestQualityCheckCleanData(t *testing.T) {
	checker := NewQualityChecker(testLogger())

	customerKey := 1
	productKey := 1

	customers := []models.CustomerDimension{{CustomerKey: 1, CustomerID: 100}}
	products := []models.ProductDimension{{ProductKey: 1, ProductNumber: "P1"}}
	facts := []models.SalesFact{
		{
			OrderNumber: "SO1",
			CustomerKey: &customerKey,
			ProductKey:  &productKey,
			OrderDate:   dateOf(2021, 1, 1),
			ShipDate:    dateOf(2021, 1, 8),
			DueDate:     dateOf(2021, 1, 15),
		},
	}

	violations := checker.Check(customers, products, facts)

	assert.Empty(t, violations)
}

func TestQualityCheckDuplicateSurrogateKeys(t *testing.T) {
	checker := NewQualityChecker(testLogger())

	customers := []models.CustomerDimension{
		{CustomerKey: 1, CustomerID: 100},
		{CustomerKey: 1, CustomerID: 200},
	}
	products := []models.ProductDimension{
		{ProductKey: 5, ProductNumber: "P1"},
		{ProductKey: 5, ProductNumber: "P2"},
	}

	violations := checker.Check(customers, products, nil)

	require.Len(t, violations, 2)
	assert.Equal(t, models.CheckCustomerKeyUnique, violations[0].CheckName)
	assert.Equal(t, "1", violations[0].OffendingKey)
	assert.Equal(t, models.CheckProductKeyUnique, violations[1].CheckName)
	assert.Equal(t, "5", violations[1].OffendingKey)
}

func TestQualityCheckOrphanFacts(t *testing.T) {
	checker := NewQualityChecker(testLogger())

	unknownCustomer := 99
	productKey := 1

	products := []models.ProductDimension{{ProductKey: 1, ProductNumber: "P1"}}
	facts := []models.SalesFact{
		// NULL-ключ клиента и разрешенный ключ товара
		{OrderNumber: "SO1", CustomerKey: nil, ProductKey: &productKey},
		// Ключ клиента не существует в измерении
		{OrderNumber: "SO2", CustomerKey: &unknownCustomer, ProductKey: &productKey},
	}

	violations := checker.Check(nil, products, facts)

	require.Len(t, violations, 2)
	assert.Equal(t, models.CheckFactCustomerResolve, violations[0].CheckName)
	assert.Equal(t, "SO1", violations[0].OffendingKey)
	assert.Equal(t, models.CheckFactCustomerResolve, violations[1].CheckName)
	assert.Equal(t, "SO2", violations[1].OffendingKey)
}

func TestQualityCheckDateOrder(t *testing.T) {
	checker := NewQualityChecker(testLogger())

	customerKey := 1
	productKey := 1
	customers := []models.CustomerDimension{{CustomerKey: 1, CustomerID: 100}}
	products := []models.ProductDimension{{ProductKey: 1, ProductNumber: "P1"}}

	facts := []models.SalesFact{
		{
			OrderNumber: "SO3",
			CustomerKey: &customerKey,
			ProductKey:  &productKey,
			OrderDate:   dateOf(2021, 2, 1),
			ShipDate:    dateOf(2021, 1, 1),
		},
	}

	violations := checker.Check(customers, products, facts)

	require.Len(t, violations, 1)
	assert.Equal(t, models.CheckFactDateOrder, violations[0].CheckName)
	assert.Equal(t, "SO3", violations[0].OffendingKey)
}
