package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

func TestProcessSalesFactsResolvesKeys(t *testing.T) {
	processor := NewSalesFactsProcessor(testLogger())

	customers := []models.CustomerDimension{
		{CustomerKey: 1, CustomerID: 11000},
	}
	products := []models.ProductDimension{
		{ProductKey: 7, ProductNumber: "HL-U509"},
	}

	sales := []models.SalesReconciled{
		{OrderNumber: "SO2001", CustomerID: 11000, ProductNumber: "HL-U509"},
	}

	facts := processor.ProcessSalesFacts(sales, customers, products)

	require.Len(t, facts, 1)
	require.NotNil(t, facts[0].CustomerKey)
	assert.Equal(t, 1, *facts[0].CustomerKey)
	require.NotNil(t, facts[0].ProductKey)
	assert.Equal(t, 7, *facts[0].ProductKey)
}

func TestProcessSalesFactsKeepsOrphans(t *testing.T) {
	processor := NewSalesFactsProcessor(testLogger())

	customers := []models.CustomerDimension{
		{CustomerKey: 1, CustomerID: 11000},
	}
	products := []models.ProductDimension{
		{ProductKey: 7, ProductNumber: "HL-U509"},
	}

	sales := []models.SalesReconciled{
		{OrderNumber: "SO2002", CustomerID: 99999, ProductNumber: "HL-U509"},
		{OrderNumber: "SO2003", CustomerID: 11000, ProductNumber: "NO-SUCH"},
	}

	facts := processor.ProcessSalesFacts(sales, customers, products)

	// Сироты сохраняются с NULL-ключами, а не отбрасываются
	require.Len(t, facts, 2)

	assert.Nil(t, facts[0].CustomerKey)
	require.NotNil(t, facts[0].ProductKey)

	require.NotNil(t, facts[1].CustomerKey)
	assert.Nil(t, facts[1].ProductKey)
}
