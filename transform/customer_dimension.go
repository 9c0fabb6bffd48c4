package transform

import (
	"sort"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerDimensionProcessor отвечает за конформацию измерения клиентов
type CustomerDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewCustomerDimensionProcessor создает новый экземпляр CustomerDimensionProcessor
func NewCustomerDimensionProcessor(logger *utils.ETLLogger) *CustomerDimensionProcessor {
	return &CustomerDimensionProcessor{
		logger: logger,
	}
}

// ProcessCustomerDimension собирает измерение клиентов из очищенных данных CRM
// и обогащающих таблиц ERP.
//
// CRM — основной источник: каждая дедуплицированная запись CRM дает ровно
// одну строку измерения; записи ERP подключаются left-outer по ключу клиента
// и могут отсутствовать. Пол берется из CRM, а при неизвестном значении —
// из ERP; дата рождения и страна приходят только из ERP.
//
// Суррогатные ключи — плотная 1-based последовательность по возрастанию
// натурального ID. Ключи пересобираются при каждом запуске: измерение —
// полностью перестраиваемый снимок, а не историзированная таблица.
func (p *CustomerDimensionProcessor) ProcessCustomerDimension(
	customers []models.CustomerNormalized,
	erpCustomers []models.ERPCustomerNormalized,
	erpLocations []models.ERPLocationNormalized) []models.CustomerDimension {

	p.logger.Debug("Конформация измерения клиентов...")

	// Строим справочники обогащения по ключу клиента
	demographics := make(map[string]models.ERPCustomerNormalized, len(erpCustomers))
	for _, erpCustomer := range erpCustomers {
		demographics[erpCustomer.CustomerKey] = erpCustomer
	}

	countries := make(map[string]string, len(erpLocations))
	for _, erpLocation := range erpLocations {
		countries[erpLocation.CustomerKey] = erpLocation.Country
	}

	// Упорядочиваем клиентов по натуральному ID для назначения суррогатных ключей
	ordered := make([]models.CustomerNormalized, len(customers))
	copy(ordered, customers)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].ID < ordered[b].ID
	})

	dimension := make([]models.CustomerDimension, 0, len(ordered))

	for i, customer := range ordered {
		row := models.CustomerDimension{
			CustomerKey:    i + 1,
			CustomerID:     customer.ID,
			CustomerNumber: customer.Key,
			FirstName:      customer.FirstName,
			LastName:       customer.LastName,
			MaritalStatus:  customer.MaritalStatus,
			Gender:         customer.Gender,
			CreateDate:     customer.CreateDate,
			Country:        models.Unknown,
		}

		// Пол: CRM имеет приоритет, ERP — резервный источник
		if erpCustomer, ok := demographics[customer.Key]; ok {
			if row.Gender == models.Unknown {
				row.Gender = erpCustomer.Gender
			}
			row.BirthDate = erpCustomer.BirthDate
		}

		if country, ok := countries[customer.Key]; ok {
			row.Country = country
		}

		dimension = append(dimension, row)
	}

	p.logger.Info("Измерение клиентов конформировано. Строк: %d", len(dimension))
	return dimension
}
