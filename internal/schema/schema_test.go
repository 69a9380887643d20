package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fkondo/pos-receipts/internal/parsererror"
)

func testNames() ColumnNames {
	return ColumnNames{
		Member:      "member_id",
		Date:        "date",
		Time:        "time",
		ReceiptID:   "receipt_id",
		Store:       "store_name",
		Item:        "item_name",
		Amount:      "amount",
		Quantity:    "quantity",
		Maker:       "maker",
		Category1:   "category1",
		Category2:   "category2",
		Category3:   "category3",
		ProductCode: "product_code",
	}
}

func TestResolveSyntheticKeyMode(t *testing.T) {
	header := []string{"member_id", "date", "time", "store_name", "item_name", "amount"}
	s, err := Resolve(header, testNames())
	require.NoError(t, err)

	assert.False(t, s.NaturalKey)
	assert.True(t, s.Has(FieldTime))
	assert.False(t, s.Has(FieldQuantity))
	assert.False(t, s.Has(FieldMaker))

	i, ok := s.Index(FieldAmount)
	assert.True(t, ok)
	assert.Equal(t, 5, i)
}

func TestResolveNaturalKeyMode(t *testing.T) {
	// No time column, but receipt_id present: load must still resolve.
	header := []string{"member_id", "date", "receipt_id", "store_name", "item_name", "amount"}
	s, err := Resolve(header, testNames())
	require.NoError(t, err)

	assert.True(t, s.NaturalKey)
	assert.False(t, s.Has(FieldTime))
	assert.True(t, s.Has(FieldReceiptID))
}

func TestResolveMissingColumns(t *testing.T) {
	header := []string{"member_id", "store_name"}
	_, err := Resolve(header, testNames())
	require.Error(t, err)

	var schemaErr *parsererror.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.ElementsMatch(t,
		[]string{"date", "item_name", "amount", "time"},
		schemaErr.MissingColumns)
}

func TestResolveTrimsHeaderCells(t *testing.T) {
	header := []string{" member_id ", "date", "time", "store_name", "item_name", "amount "}
	_, err := Resolve(header, testNames())
	assert.NoError(t, err)
}

func TestResolveOptionalColumns(t *testing.T) {
	header := []string{
		"member_id", "date", "time", "store_name", "item_name", "amount",
		"quantity", "maker", "category1", "product_code",
	}
	s, err := Resolve(header, testNames())
	require.NoError(t, err)

	assert.True(t, s.Has(FieldQuantity))
	assert.True(t, s.Has(FieldMaker))
	assert.True(t, s.Has(FieldCategory1))
	assert.False(t, s.Has(FieldCategory2))
	assert.True(t, s.Has(FieldProductCode))
}

func TestCell(t *testing.T) {
	header := []string{"member_id", "date", "time", "store_name", "item_name", "amount"}
	s, err := Resolve(header, testNames())
	require.NoError(t, err)

	row := []string{" M1 ", "2024-01-05", "13:05:00", "S1", "Coffee", "300"}
	assert.Equal(t, "M1", s.Cell(row, FieldMember))
	assert.Equal(t, "", s.Cell(row, FieldMaker))

	// Short row: missing cells read as empty, not panic.
	assert.Equal(t, "", s.Cell([]string{"M1", "2024-01-05"}, FieldAmount))
}
