package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

func TestNormalizeMaritalStatus(t *testing.T) {
	assert.Equal(t, models.MaritalSingle, NormalizeMaritalStatus("S"))
	assert.Equal(t, models.MaritalMarried, NormalizeMaritalStatus("M"))

	// Регистр и пробелы не влияют на результат
	assert.Equal(t, models.MaritalSingle, NormalizeMaritalStatus("  s "))

	// Немаппируемые коды деградируют до n/a, а не до ошибки
	assert.Equal(t, models.Unknown, NormalizeMaritalStatus("X"))
	assert.Equal(t, models.Unknown, NormalizeMaritalStatus(""))
	assert.Equal(t, models.Unknown, NormalizeMaritalStatus("   "))
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, models.GenderFemale, NormalizeGender("F"))
	assert.Equal(t, models.GenderMale, NormalizeGender("M"))
	assert.Equal(t, models.GenderFemale, NormalizeGender("f"))

	// ERP присылает и полные значения
	assert.Equal(t, models.GenderFemale, NormalizeGender(" FEMALE "))
	assert.Equal(t, models.GenderMale, NormalizeGender("Male"))

	assert.Equal(t, models.Unknown, NormalizeGender(""))
	assert.Equal(t, models.Unknown, NormalizeGender("unknown"))
}

func TestNormalizeProductLine(t *testing.T) {
	assert.Equal(t, models.LineMountain, NormalizeProductLine("M"))
	assert.Equal(t, models.LineRoad, NormalizeProductLine("R"))
	assert.Equal(t, models.LineOtherSales, NormalizeProductLine("S"))
	assert.Equal(t, models.LineTouring, NormalizeProductLine("T"))
	assert.Equal(t, models.Unknown, NormalizeProductLine("Q"))
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "Germany", NormalizeCountry("DE"))
	assert.Equal(t, "United States", NormalizeCountry("US"))
	assert.Equal(t, "United States", NormalizeCountry("USA"))
	assert.Equal(t, "United States", NormalizeCountry(" usa "))

	// Неизвестные страны сохраняются, но обрезаются
	assert.Equal(t, "Australia", NormalizeCountry(" Australia "))

	assert.Equal(t, models.Unknown, NormalizeCountry(""))
	assert.Equal(t, models.Unknown, NormalizeCountry("  "))
}

func TestSplitProductKey(t *testing.T) {
	categoryID, productNumber := SplitProductKey("CO-RF-FR-R92B-58")
	assert.Equal(t, "CO_RF", categoryID)
	assert.Equal(t, "FR-R92B-58", productNumber)

	// Слишком короткий ключ не приводит к панике
	categoryID, productNumber = SplitProductKey("AB")
	assert.Equal(t, "", categoryID)
	assert.Equal(t, "", productNumber)
}

func TestNormalizeERPCustomerKey(t *testing.T) {
	assert.Equal(t, "AW00011000", NormalizeERPCustomerKey("NASAW00011000"))
	assert.Equal(t, "AW00011000", NormalizeERPCustomerKey(" AW00011000 "))
}

func TestNormalizeCustomerTrimsStrings(t *testing.T) {
	id := 17
	raw := models.CRMCustomerRaw{
		ID:            &id,
		Key:           " AW00000017 ",
		FirstName:     "  Anna ",
		LastName:      " Schmidt  ",
		MaritalStatus: " M ",
		Gender:        "f",
	}

	normalized := NormalizeCustomer(raw)

	assert.Equal(t, 17, normalized.ID)
	assert.Equal(t, "AW00000017", normalized.Key)
	assert.Equal(t, "Anna", normalized.FirstName)
	assert.Equal(t, "Schmidt", normalized.LastName)
	assert.Equal(t, models.MaritalMarried, normalized.MaritalStatus)
	assert.Equal(t, models.GenderFemale, normalized.Gender)
}

func TestNormalizeProductDefaults(t *testing.T) {
	raw := models.CRMProductRaw{
		ID:   101,
		Key:  "AC-HE-HL-U509-R",
		Name: " Sport-100 Helmet ",
		Line: "Z",
	}

	normalized := NormalizeProduct(raw)

	assert.Equal(t, "AC_HE", normalized.CategoryID)
	assert.Equal(t, "HL-U509-R", normalized.ProductNumber)
	assert.Equal(t, "Sport-100 Helmet", normalized.Name)

	// Отсутствующая себестоимость — ноль, неизвестная линейка — n/a
	assert.Equal(t, 0.0, normalized.Cost)
	assert.Equal(t, models.Unknown, normalized.Line)
}

func TestNormalizeERPCustomerFutureBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(-30, 0, 0)

	normalized := NormalizeERPCustomer(models.ERPCustomerRaw{
		CustomerKey: "NASAW00011000",
		BirthDate:   &future,
		Gender:      "FEMALE",
	}, now)

	// Дата рождения из будущего — ошибка ввода, заменяется на NULL
	assert.Nil(t, normalized.BirthDate)
	assert.Equal(t, "AW00011000", normalized.CustomerKey)
	assert.Equal(t, models.GenderFemale, normalized.Gender)

	normalized = NormalizeERPCustomer(models.ERPCustomerRaw{
		CustomerKey: "AW00011001",
		BirthDate:   &past,
	}, now)

	require.NotNil(t, normalized.BirthDate)
	assert.True(t, normalized.BirthDate.Equal(past))
}

func TestNormalizeERPLocationKeyDashes(t *testing.T) {
	normalized := NormalizeERPLocation(models.ERPLocationRaw{
		CustomerKey: "AW-00011000",
		Country:     "de",
	})

	assert.Equal(t, "AW00011000", normalized.CustomerKey)
	assert.Equal(t, "Germany", normalized.Country)
}
