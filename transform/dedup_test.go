package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

func customerKeyFn(c models.CustomerNormalized) (int, bool) {
	return c.ID, true
}

func latestCreateDate(candidate, current models.CustomerNormalized) bool {
	if candidate.CreateDate == nil {
		return false
	}
	if current.CreateDate == nil {
		return true
	}
	return candidate.CreateDate.After(*current.CreateDate)
}

func TestResolveLatestKeepsNewestRecord(t *testing.T) {
	jan := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	records := []models.CustomerNormalized{
		{ID: 17, Gender: models.GenderFemale, CreateDate: &jan},
		{ID: 17, Gender: models.GenderFemale, CreateDate: &jun},
	}

	result := ResolveLatest(records, customerKeyFn, latestCreateDate)

	require.Len(t, result, 1)
	require.NotNil(t, result[0].CreateDate)
	assert.True(t, result[0].CreateDate.Equal(jun))
}

func TestResolveLatestTieKeepsFirstSeen(t *testing.T) {
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.CustomerNormalized{
		{ID: 5, FirstName: "first", CreateDate: &date},
		{ID: 5, FirstName: "second", CreateDate: &date},
	}

	result := ResolveLatest(records, customerKeyFn, latestCreateDate)

	require.Len(t, result, 1)
	assert.Equal(t, "first", result[0].FirstName)
}

func TestResolveLatestNilDateLosesToAnyDate(t *testing.T) {
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.CustomerNormalized{
		{ID: 7, FirstName: "dated", CreateDate: &date},
		{ID: 7, FirstName: "undated"},
	}

	result := ResolveLatest(records, customerKeyFn, latestCreateDate)

	require.Len(t, result, 1)
	assert.Equal(t, "dated", result[0].FirstName)
}

func TestResolveLatestDropsRecordsWithoutKey(t *testing.T) {
	records := []string{"keyed", "unkeyed"}

	result := ResolveLatest(records,
		func(s string) (string, bool) {
			return s, s != "unkeyed"
		},
		func(candidate, current string) bool {
			return false
		})

	require.Len(t, result, 1)
	assert.Equal(t, "keyed", result[0])
}

func TestResolveLatestPreservesFirstAppearanceOrder(t *testing.T) {
	jan := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	records := []models.CustomerNormalized{
		{ID: 30, CreateDate: &jan},
		{ID: 10, CreateDate: &jan},
		{ID: 20, CreateDate: &jan},
		{ID: 10, CreateDate: &jun},
	}

	result := ResolveLatest(records, customerKeyFn, latestCreateDate)

	require.Len(t, result, 3)
	assert.Equal(t, 30, result[0].ID)
	assert.Equal(t, 10, result[1].ID)
	assert.Equal(t, 20, result[2].ID)

	// Более поздняя версия ключа 10 заняла позицию первого появления
	require.NotNil(t, result[1].CreateDate)
	assert.True(t, result[1].CreateDate.Equal(jun))
}
