package load

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func testLogger() *utils.ETLLogger {
	return utils.NewETLLogger(false)
}

func TestCustomerLoaderReplace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loader := NewCustomerLoader(db, testLogger())

	customers := []models.CustomerDimension{
		{CustomerKey: 1, CustomerID: 17, CustomerNumber: "AW17", FirstName: "Anna",
			Country: "Germany", MaritalStatus: "Married", Gender: "Female"},
		{CustomerKey: 2, CustomerID: 42, CustomerNumber: "AW42", FirstName: "Boris",
			Country: "n/a", MaritalStatus: "n/a", Gender: "n/a"},
	}

	// Замена снимка: удаление и вставки в одной транзакции
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales_dwh.dim_customers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prepare := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO sales_dwh.dim_customers"))
	prepare.ExpectExec().
		WithArgs(1, 17, "AW17", "Anna", "", "Germany", "Married", "Female", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prepare.ExpectExec().
		WithArgs(2, 42, "AW42", "Boris", "", "n/a", "n/a", "n/a", nil, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, loader.Replace(customers))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerLoaderReplaceEmptySnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loader := NewCustomerLoader(db, testLogger())

	// Пустой снимок тоже заменяет таблицу: truncate без вставок
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales_dwh.dim_customers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO sales_dwh.dim_customers"))
	mock.ExpectCommit()

	require.NoError(t, loader.Replace(nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerLoaderRollbackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loader := NewCustomerLoader(db, testLogger())

	customers := []models.CustomerDimension{
		{CustomerKey: 1, CustomerID: 17},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales_dwh.dim_customers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prepare := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO sales_dwh.dim_customers"))
	prepare.ExpectExec().WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	err = loader.Replace(customers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dim_customers")
	assert.NoError(t, mock.ExpectationsWereMet())
}
