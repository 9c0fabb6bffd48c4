package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

func dateOf(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestResolveValidityWindowsTwoVersions(t *testing.T) {
	products := []models.ProductNormalized{
		{ID: 1, ProductNumber: "P1", StartDate: dateOf(2020, 1, 1)},
		{ID: 2, ProductNumber: "P1", StartDate: dateOf(2020, 7, 1)},
	}

	result := ResolveValidityWindows(products)

	require.Len(t, result, 2)

	// Первая версия закрывается днем перед началом второй
	require.NotNil(t, result[0].EndDate)
	assert.True(t, result[0].EndDate.Equal(*dateOf(2020, 6, 30)))

	// Последняя версия актуальна — окно открыто
	assert.Nil(t, result[1].EndDate)
}

func TestResolveValidityWindowsSingleVersion(t *testing.T) {
	products := []models.ProductNormalized{
		{ID: 1, ProductNumber: "P1", StartDate: dateOf(2021, 3, 15)},
	}

	result := ResolveValidityWindows(products)

	require.Len(t, result, 1)
	assert.Nil(t, result[0].EndDate)
}

func TestResolveValidityWindowsEqualStartDates(t *testing.T) {
	products := []models.ProductNormalized{
		{ID: 1, ProductNumber: "P1", StartDate: dateOf(2020, 1, 1)},
		{ID: 2, ProductNumber: "P1", StartDate: dateOf(2020, 1, 1)},
	}

	result := ResolveValidityWindows(products)

	require.Len(t, result, 2)

	// При равных датах порядок вставки решает: первая версия закрывается,
	// вторая остается актуальной. Окон отрицательной длины не возникает.
	require.NotNil(t, result[0].EndDate)
	assert.True(t, result[0].EndDate.Equal(*dateOf(2019, 12, 31)))
	assert.Nil(t, result[1].EndDate)
}

func TestResolveValidityWindowsContiguous(t *testing.T) {
	products := []models.ProductNormalized{
		{ID: 1, ProductNumber: "P1", StartDate: dateOf(2019, 1, 1)},
		{ID: 2, ProductNumber: "P1", StartDate: dateOf(2020, 1, 1)},
		{ID: 3, ProductNumber: "P1", StartDate: dateOf(2021, 1, 1)},
		{ID: 4, ProductNumber: "P2", StartDate: dateOf(2020, 5, 1)},
	}

	result := ResolveValidityWindows(products)
	require.Len(t, result, 4)

	// Окна P1 смежны и не пересекаются; ровно одно окно открыто
	openWindows := 0
	for i, product := range result[:3] {
		if product.EndDate == nil {
			openWindows++
			continue
		}
		// Конец окна — день перед началом следующей версии
		next := result[i+1]
		assert.True(t, product.EndDate.AddDate(0, 0, 1).Equal(*next.StartDate))
		assert.True(t, product.EndDate.After(*product.StartDate))
	}
	assert.Equal(t, 1, openWindows)

	// Независимый товар не влияет на окна P1
	assert.Nil(t, result[3].EndDate)
}

func TestCurrentVersions(t *testing.T) {
	products := []models.ProductNormalized{
		{ID: 1, ProductNumber: "P1", StartDate: dateOf(2020, 1, 1)},
		{ID: 2, ProductNumber: "P1", StartDate: dateOf(2020, 7, 1)},
		{ID: 3, ProductNumber: "P2", StartDate: dateOf(2021, 1, 1)},
	}

	current := CurrentVersions(ResolveValidityWindows(products))

	require.Len(t, current, 2)
	assert.Equal(t, 2, current[0].ID)
	assert.Equal(t, 3, current[1].ID)
}
