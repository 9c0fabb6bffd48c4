package transform

import (
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// QualityChecker выполняет проверки целостности конформированных данных.
// Проверки только читают данные и сообщают о нарушениях — любые
// исправления выполняются выше по конвейеру.
type QualityChecker struct {
	logger *utils.ETLLogger
}

// NewQualityChecker создает новый экземпляр QualityChecker
func NewQualityChecker(logger *utils.ETLLogger) *QualityChecker {
	return &QualityChecker{
		logger: logger,
	}
}

// Check запускает все проверки целостности и возвращает найденные нарушения.
// Пустой результат означает, что хранилище прошло все проверки.
func (c *QualityChecker) Check(
	customers []models.CustomerDimension,
	products []models.ProductDimension,
	facts []models.SalesFact) []models.QualityViolation {

	c.logger.Debug("Запуск проверок целостности хранилища...")

	var violations []models.QualityViolation
	violations = append(violations, c.checkCustomerKeyUniqueness(customers)...)
	violations = append(violations, c.checkProductKeyUniqueness(products)...)
	violations = append(violations, c.checkFactReferences(customers, products, facts)...)
	violations = append(violations, c.checkFactDateOrder(facts)...)

	if len(violations) > 0 {
		c.logger.Error("Проверки целостности нашли нарушений: %d", len(violations))
	} else {
		c.logger.Info("Проверки целостности пройдены без нарушений")
	}

	return violations
}

// checkCustomerKeyUniqueness проверяет уникальность суррогатных ключей клиентов
func (c *QualityChecker) checkCustomerKeyUniqueness(customers []models.CustomerDimension) []models.QualityViolation {
	var violations []models.QualityViolation

	counts := make(map[int]int, len(customers))
	for _, customer := range customers {
		counts[customer.CustomerKey]++
	}

	for _, customer := range customers {
		if counts[customer.CustomerKey] > 1 {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckCustomerKeyUnique,
				OffendingKey: fmt.Sprintf("%d", customer.CustomerKey),
				Detail:       fmt.Sprintf("суррогатный ключ %d встречается %d раза", customer.CustomerKey, counts[customer.CustomerKey]),
			})
			// Одно нарушение на ключ
			counts[customer.CustomerKey] = 1
		}
	}

	return violations
}

// checkProductKeyUniqueness проверяет уникальность суррогатных ключей товаров
func (c *QualityChecker) checkProductKeyUniqueness(products []models.ProductDimension) []models.QualityViolation {
	var violations []models.QualityViolation

	counts := make(map[int]int, len(products))
	for _, product := range products {
		counts[product.ProductKey]++
	}

	for _, product := range products {
		if counts[product.ProductKey] > 1 {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckProductKeyUnique,
				OffendingKey: fmt.Sprintf("%d", product.ProductKey),
				Detail:       fmt.Sprintf("суррогатный ключ %d встречается %d раза", product.ProductKey, counts[product.ProductKey]),
			})
			counts[product.ProductKey] = 1
		}
	}

	return violations
}

// checkFactReferences проверяет, что каждый факт ссылается на существующие
// строки измерений. Факты с NULL-ключами (сироты) также попадают в отчет.
func (c *QualityChecker) checkFactReferences(
	customers []models.CustomerDimension,
	products []models.ProductDimension,
	facts []models.SalesFact) []models.QualityViolation {

	customerKeys := make(map[int]bool, len(customers))
	for _, customer := range customers {
		customerKeys[customer.CustomerKey] = true
	}

	productKeys := make(map[int]bool, len(products))
	for _, product := range products {
		productKeys[product.ProductKey] = true
	}

	var violations []models.QualityViolation

	for _, fact := range facts {
		if fact.CustomerKey == nil {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckFactCustomerResolve,
				OffendingKey: fact.OrderNumber,
				Detail:       "факт не разрешил ключ клиента (NULL)",
			})
		} else if !customerKeys[*fact.CustomerKey] {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckFactCustomerResolve,
				OffendingKey: fact.OrderNumber,
				Detail:       fmt.Sprintf("ключ клиента %d отсутствует в измерении", *fact.CustomerKey),
			})
		}

		if fact.ProductKey == nil {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckFactProductResolve,
				OffendingKey: fact.OrderNumber,
				Detail:       "факт не разрешил ключ товара (NULL)",
			})
		} else if !productKeys[*fact.ProductKey] {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckFactProductResolve,
				OffendingKey: fact.OrderNumber,
				Detail:       fmt.Sprintf("ключ товара %d отсутствует в измерении", *fact.ProductKey),
			})
		}
	}

	return violations
}

// checkFactDateOrder проверяет хронологию дат факта: дата заказа не может
// быть позже даты отгрузки или плановой даты
func (c *QualityChecker) checkFactDateOrder(facts []models.SalesFact) []models.QualityViolation {
	var violations []models.QualityViolation

	for _, fact := range facts {
		if fact.OrderDate == nil {
			continue
		}

		if fact.ShipDate != nil && fact.OrderDate.After(*fact.ShipDate) {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckFactDateOrder,
				OffendingKey: fact.OrderNumber,
				Detail: fmt.Sprintf("дата заказа %s позже даты отгрузки %s",
					fact.OrderDate.Format("2006-01-02"), fact.ShipDate.Format("2006-01-02")),
			})
		}

		if fact.DueDate != nil && fact.OrderDate.After(*fact.DueDate) {
			violations = append(violations, models.QualityViolation{
				CheckName:    models.CheckFactDateOrder,
				OffendingKey: fact.OrderNumber,
				Detail: fmt.Sprintf("дата заказа %s позже плановой даты %s",
					fact.OrderDate.Format("2006-01-02"), fact.DueDate.Format("2006-01-02")),
			})
		}
	}

	return violations
}
