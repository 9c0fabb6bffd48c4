package transform

import (
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
)

// Справочники канонизации кодов источников.
// Любой код, отсутствующий в справочнике, деградирует до models.Unknown —
// нормализация никогда не возвращает ошибку.
var (
	maritalStatusCodes = map[string]string{
		"S": models.MaritalSingle,
		"M": models.MaritalMarried,
	}

	genderCodes = map[string]string{
		"F": models.GenderFemale,
		"M": models.GenderMale,
	}

	productLineCodes = map[string]string{
		"M": models.LineMountain,
		"R": models.LineRoad,
		"S": models.LineOtherSales,
		"T": models.LineTouring,
	}

	countryCodes = map[string]string{
		"DE":  "Germany",
		"US":  "United States",
		"USA": "United States",
	}
)

// NormalizeCode приводит закодированное значение к каноническому виду:
// обрезает пробелы, приводит к верхнему регистру и ищет в справочнике.
// Пустое или немаппируемое значение дает models.Unknown.
func NormalizeCode(value string, codes map[string]string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return models.Unknown
	}
	if canonical, ok := codes[code]; ok {
		return canonical
	}
	return models.Unknown
}

// NormalizeMaritalStatus канонизирует код семейного положения CRM
func NormalizeMaritalStatus(value string) string {
	return NormalizeCode(value, maritalStatusCodes)
}

// NormalizeGender канонизирует код пола (CRM и ERP используют одни коды,
// но ERP может присылать и полные значения "FEMALE"/"MALE")
func NormalizeGender(value string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	switch code {
	case "FEMALE":
		return models.GenderFemale
	case "MALE":
		return models.GenderMale
	}
	return NormalizeCode(value, genderCodes)
}

// NormalizeProductLine канонизирует код товарной линейки CRM
func NormalizeProductLine(value string) string {
	return NormalizeCode(value, productLineCodes)
}

// NormalizeCountry канонизирует страну из ERP. Известные коды
// разворачиваются в полное название, прочие непустые значения
// сохраняются как есть (после обрезки пробелов).
func NormalizeCountry(value string) string {
	country := strings.TrimSpace(value)
	if country == "" {
		return models.Unknown
	}
	if canonical, ok := countryCodes[strings.ToUpper(country)]; ok {
		return canonical
	}
	return country
}

// SplitProductKey выделяет из составного ключа товара идентификатор категории
// (первые 5 символов, дефисы заменяются на подчеркивания — формат справочника ERP)
// и номер товара (с 7-го символа).
func SplitProductKey(key string) (categoryID, productNumber string) {
	key = strings.TrimSpace(key)
	if len(key) >= 5 {
		categoryID = strings.ReplaceAll(key[:5], "-", "_")
	}
	if len(key) >= 7 {
		productNumber = key[6:]
	}
	return categoryID, productNumber
}

// NormalizeERPCustomerKey удаляет технический префикс "NAS" у идентификатора
// клиента ERP, чтобы ключ совпадал с cst_key из CRM
func NormalizeERPCustomerKey(key string) string {
	key = strings.TrimSpace(key)
	return strings.TrimPrefix(key, "NAS")
}

// NormalizeCustomer очищает сырую запись клиента CRM.
// Записи без натурального ключа отбрасываются выше (см. ResolveLatest) —
// здесь ID обязателен.
func NormalizeCustomer(raw models.CRMCustomerRaw) models.CustomerNormalized {
	var id int
	if raw.ID != nil {
		id = *raw.ID
	}

	return models.CustomerNormalized{
		ID:            id,
		Key:           strings.TrimSpace(raw.Key),
		FirstName:     strings.TrimSpace(raw.FirstName),
		LastName:      strings.TrimSpace(raw.LastName),
		MaritalStatus: NormalizeMaritalStatus(raw.MaritalStatus),
		Gender:        NormalizeGender(raw.Gender),
		CreateDate:    raw.CreateDate,
	}
}

// NormalizeProduct очищает сырую версию товара CRM.
// Отсутствующая себестоимость заменяется нулем; окно действия
// пересчитывается позже резолвером (см. ResolveValidityWindows).
func NormalizeProduct(raw models.CRMProductRaw) models.ProductNormalized {
	categoryID, productNumber := SplitProductKey(raw.Key)

	var cost float64
	if raw.Cost != nil {
		cost = *raw.Cost
	}

	return models.ProductNormalized{
		ID:            raw.ID,
		CategoryID:    categoryID,
		ProductNumber: productNumber,
		Name:          strings.TrimSpace(raw.Name),
		Cost:          cost,
		Line:          NormalizeProductLine(raw.Line),
		StartDate:     raw.StartDate,
	}
}

// NormalizeERPCustomer очищает демографическую запись ERP.
// Даты рождения из будущего считаются ошибкой ввода и заменяются на NULL.
func NormalizeERPCustomer(raw models.ERPCustomerRaw, now time.Time) models.ERPCustomerNormalized {
	birthDate := raw.BirthDate
	if birthDate != nil && birthDate.After(now) {
		birthDate = nil
	}

	return models.ERPCustomerNormalized{
		CustomerKey: NormalizeERPCustomerKey(raw.CustomerKey),
		BirthDate:   birthDate,
		Gender:      NormalizeGender(raw.Gender),
	}
}

// NormalizeERPLocation очищает запись о стране клиента из ERP.
// Идентификаторы в erp_locations приходят с дефисами внутри ключа.
func NormalizeERPLocation(raw models.ERPLocationRaw) models.ERPLocationNormalized {
	key := strings.ReplaceAll(strings.TrimSpace(raw.CustomerKey), "-", "")

	return models.ERPLocationNormalized{
		CustomerKey: key,
		Country:     NormalizeCountry(raw.Country),
	}
}

// NormalizeERPCategory очищает запись справочника категорий ERP
func NormalizeERPCategory(raw models.ERPCategoryRaw) models.ERPCategoryNormalized {
	return models.ERPCategoryNormalized{
		CategoryID:  strings.TrimSpace(raw.CategoryID),
		Category:    strings.TrimSpace(raw.Category),
		Subcategory: strings.TrimSpace(raw.Subcategory),
		Maintenance: strings.TrimSpace(raw.Maintenance),
	}
}
