package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fkondo/pos-receipts/internal/models"
)

func line(member, date, timeOfDay, store, item string, amount, qty int64) models.LineItem {
	key := member + "|" + store + "|" + date + "|" + timeOfDay
	return models.LineItem{
		Member:         member,
		DateKey:        date,
		Time:           timeOfDay,
		Store:          store,
		Item:           item,
		Amount:         decimal.NewFromInt(amount),
		Quantity:       decimal.NewFromInt(qty),
		TransactionKey: key,
		DateTimeKey:    date + "T" + timeOfDay,
	}
}

func TestGroupPreservesFirstSeenOrder(t *testing.T) {
	lines := []models.LineItem{
		line("M1", "2024-01-06", "10:00:00", "S1", "Bread", 200, 1),
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", 300, 1),
		line("M1", "2024-01-06", "10:00:00", "S1", "Butter", 400, 1),
	}

	receipts := Group(lines)
	require.Len(t, receipts, 2)
	assert.Equal(t, "2024-01-06", receipts[0].DateKey)
	assert.Equal(t, "2024-01-05", receipts[1].DateKey)
	assert.Len(t, receipts[0].Lines, 2)
}

func TestGroupSingleReceiptTotals(t *testing.T) {
	lines := []models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", 300, 1),
		line("M1", "2024-01-05", "13:05:00", "S1", "Milk", 150, 1),
	}

	receipts := Group(lines)
	require.Len(t, receipts, 1)

	r := receipts[0]
	assert.True(t, decimal.NewFromInt(450).Equal(r.Sales))
	assert.True(t, decimal.NewFromInt(2).Equal(r.Quantity))
	require.Len(t, r.Items, 2)
	assert.Equal(t, "Coffee", r.Items[0].Item, "default order is amount descending")
	assert.Equal(t, "Coffee Milk", r.ItemText)
}

func TestGroupMergesSameItemName(t *testing.T) {
	lines := []models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", 300, 1),
		line("M1", "2024-01-05", "13:05:00", "S1", " Coffee ", 300, 2),
	}

	receipts := Group(lines)
	require.Len(t, receipts, 1)
	require.Len(t, receipts[0].Items, 1)
	assert.True(t, decimal.NewFromInt(600).Equal(receipts[0].Items[0].Amount))
	assert.True(t, decimal.NewFromInt(3).Equal(receipts[0].Items[0].Quantity))
}

func TestGroupUnknownItemPlaceholder(t *testing.T) {
	lines := []models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "", 100, 1),
		line("M1", "2024-01-05", "13:05:00", "S1", "  ", 50, 1),
	}

	receipts := Group(lines)
	require.Len(t, receipts, 1)
	require.Len(t, receipts[0].Items, 1)
	assert.Equal(t, models.UnknownItemLabel, receipts[0].Items[0].Item)
	assert.True(t, decimal.NewFromInt(150).Equal(receipts[0].Items[0].Amount))
}

func TestGroupingCompleteness(t *testing.T) {
	// Sum of amounts across receipts equals the sum across raw lines.
	lines := []models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", 300, 1),
		line("M1", "2024-01-05", "13:05:00", "S1", "Milk", 150, 1),
		line("M1", "2024-01-06", "09:00:00", "S2", "Bread", 200, 2),
		line("M1", "2024-01-07", "19:30:00", "S1", "Wine", 1200, 1),
	}

	raw := decimal.Zero
	for _, li := range lines {
		raw = raw.Add(li.Amount)
	}

	grouped := decimal.Zero
	for _, r := range Group(lines) {
		grouped = grouped.Add(r.Sales)
	}

	assert.True(t, raw.Equal(grouped))
}

func TestSummarize(t *testing.T) {
	receipts := Group([]models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", 300, 1),
		line("M1", "2024-01-05", "18:00:00", "S2", "Milk", 150, 1),
		line("M1", "2024-01-06", "09:00:00", "S1", "Bread", 150, 2),
	})

	s := Summarize(receipts)
	assert.Equal(t, 3, s.ReceiptCount)
	assert.True(t, decimal.NewFromInt(600).Equal(s.Sales))
	assert.True(t, decimal.NewFromInt(4).Equal(s.Quantity))
	assert.Equal(t, 2, s.VisitDays)
	assert.Equal(t, 2, s.StoreCount)
	assert.True(t, decimal.NewFromInt(200).Equal(s.AverageTransactionValue))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.ReceiptCount)
	assert.True(t, decimal.Zero.Equal(s.Sales))
	assert.True(t, decimal.Zero.Equal(s.AverageTransactionValue), "ATV is 0, not NaN, with no receipts")
}

func TestSortReceiptsModes(t *testing.T) {
	mk := func() []models.Receipt {
		return Group([]models.LineItem{
			line("M1", "2024-01-06", "10:00:00", "S1", "Bread", 200, 2),
			line("M1", "2024-01-05", "13:05:00", "S2", "Coffee", 300, 1),
			line("M1", "2024-01-07", "09:00:00", "S1", "Wine", 100, 3),
		})
	}

	receipts := mk()
	SortReceipts(receipts, models.ReceiptSortDateTimeAsc)
	assert.Equal(t, "2024-01-05", receipts[0].DateKey)
	assert.Equal(t, "2024-01-07", receipts[2].DateKey)

	receipts = mk()
	SortReceipts(receipts, models.ReceiptSortDateTimeDesc)
	assert.Equal(t, "2024-01-07", receipts[0].DateKey)

	receipts = mk()
	SortReceipts(receipts, models.ReceiptSortSalesDesc)
	assert.Equal(t, "Coffee", receipts[0].Items[0].Item)

	receipts = mk()
	SortReceipts(receipts, models.ReceiptSortQuantityAsc)
	assert.Equal(t, "Coffee", receipts[0].Items[0].Item)
}

func TestSortReceiptsDateTimeTieBreaks(t *testing.T) {
	receipts := Group([]models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S2", "Coffee", 300, 1),
		line("M1", "2024-01-05", "13:05:00", "S1", "Milk", 150, 1),
	})

	SortReceipts(receipts, models.ReceiptSortDateTimeAsc)
	assert.Equal(t, "S1", receipts[0].Store, "same datetime orders by store name")
}

func TestSortReceiptsStableUnderReapplication(t *testing.T) {
	receipts := Group([]models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", 300, 1),
		line("M1", "2024-01-05", "14:00:00", "S1", "Milk", 300, 1),
		line("M1", "2024-01-06", "09:00:00", "S2", "Bread", 300, 1),
	})

	SortReceipts(receipts, models.ReceiptSortSalesDesc)
	first := make([]string, len(receipts))
	for i, r := range receipts {
		first[i] = r.Key
	}

	SortReceipts(receipts, models.ReceiptSortSalesDesc)
	second := make([]string, len(receipts))
	for i, r := range receipts {
		second[i] = r.Key
	}

	assert.Equal(t, first, second)
}

func TestSortItemsModes(t *testing.T) {
	mk := func() []models.ItemAggregate {
		return []models.ItemAggregate{
			{Item: "Coffee", Amount: decimal.NewFromInt(300), Quantity: decimal.NewFromInt(1)},
			{Item: "Bread", Amount: decimal.NewFromInt(200), Quantity: decimal.NewFromInt(4)},
			{Item: "Apple", Amount: decimal.NewFromInt(500), Quantity: decimal.NewFromInt(2)},
		}
	}

	items := mk()
	SortItems(items, models.ItemSortAmountDesc)
	assert.Equal(t, "Apple", items[0].Item)

	items = mk()
	SortItems(items, models.ItemSortAmountAsc)
	assert.Equal(t, "Bread", items[0].Item)

	items = mk()
	SortItems(items, models.ItemSortQuantityDesc)
	assert.Equal(t, "Bread", items[0].Item)

	items = mk()
	SortItems(items, models.ItemSortNameAsc)
	assert.Equal(t, "Apple", items[0].Item)

	items = mk()
	SortItems(items, models.ItemSortNameDesc)
	assert.Equal(t, "Coffee", items[0].Item)
}

func TestSortItemsTiesKeepEncounterOrder(t *testing.T) {
	items := []models.ItemAggregate{
		{Item: "First", Amount: decimal.NewFromInt(100)},
		{Item: "Second", Amount: decimal.NewFromInt(100)},
		{Item: "Third", Amount: decimal.NewFromInt(100)},
	}

	SortItems(items, models.ItemSortAmountDesc)
	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{items[0].Item, items[1].Item, items[2].Item})
}
