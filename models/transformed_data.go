package models

// TransformedData содержит конформированные данные для загрузки в хранилище
type TransformedData struct {
	// Измерения
	Customers []CustomerDimension
	Products  []ProductDimension

	// Факты
	Sales []SalesFact

	// Отчёт о качестве данных
	Violations []QualityViolation

	// Метаданные
	Metadata ETLMetadata
}
