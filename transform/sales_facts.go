package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesFactsProcessor отвечает за конформацию фактов продаж
type SalesFactsProcessor struct {
	logger *utils.ETLLogger
}

// NewSalesFactsProcessor создает новый экземпляр SalesFactsProcessor
func NewSalesFactsProcessor(logger *utils.ETLLogger) *SalesFactsProcessor {
	return &SalesFactsProcessor{
		logger: logger,
	}
}

// ProcessSalesFacts разрешает натуральные ключи согласованных продаж
// в суррогатные ключи измерений (left-outer).
//
// Строки, не нашедшие соответствия в измерении, сохраняются с NULL
// вместо суррогатного ключа, а не отбрасываются: сироты должны быть
// видны проверкам целостности, их молчаливая фильтрация скрывала бы
// проблему в источниках.
func (p *SalesFactsProcessor) ProcessSalesFacts(
	sales []models.SalesReconciled,
	customers []models.CustomerDimension,
	products []models.ProductDimension) []models.SalesFact {

	p.logger.Debug("Конформация фактов продаж...")

	// Строим справочники натуральный ключ → суррогатный ключ
	customerKeys := make(map[int]int, len(customers))
	for _, customer := range customers {
		customerKeys[customer.CustomerID] = customer.CustomerKey
	}

	productKeys := make(map[string]int, len(products))
	for _, product := range products {
		productKeys[product.ProductNumber] = product.ProductKey
	}

	facts := make([]models.SalesFact, 0, len(sales))
	orphans := 0

	for _, sale := range sales {
		fact := models.SalesFact{
			OrderNumber: sale.OrderNumber,
			OrderDate:   sale.OrderDate,
			ShipDate:    sale.ShipDate,
			DueDate:     sale.DueDate,
			Sales:       sale.Sales,
			Quantity:    sale.Quantity,
			Price:       sale.Price,
		}

		if key, ok := customerKeys[sale.CustomerID]; ok {
			customerKey := key
			fact.CustomerKey = &customerKey
		}

		if key, ok := productKeys[sale.ProductNumber]; ok {
			productKey := key
			fact.ProductKey = &productKey
		}

		if fact.CustomerKey == nil || fact.ProductKey == nil {
			orphans++
		}

		facts = append(facts, fact)
	}

	if orphans > 0 {
		p.logger.Info("Обнаружено фактов-сирот: %d (сохранены с NULL-ключами)", orphans)
	}

	p.logger.Info("Факты продаж конформированы. Строк: %d", len(facts))
	return facts
}
