package query

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fkondo/pos-receipts/internal/models"
)

func line(member, date, timeOfDay, store, item, maker string, amount int64) models.LineItem {
	key := member + "|" + store + "|" + date + "|" + timeOfDay
	return models.LineItem{
		Member:         member,
		DateKey:        date,
		Time:           timeOfDay,
		Store:          store,
		Item:           item,
		Maker:          maker,
		Amount:         decimal.NewFromInt(amount),
		Quantity:       decimal.NewFromInt(1),
		TransactionKey: key,
		DateTimeKey:    date + "T" + timeOfDay,
	}
}

func fixtureLines() []models.LineItem {
	return []models.LineItem{
		line("M1", "2024-01-05", "13:05:00", "S1", "Coffee", "AcmeRoast", 300),
		line("M1", "2024-01-05", "13:05:00", "S1", "Milk", "DairyCo", 150),
		line("M1", "2024-01-06", "09:00:00", "S2", "Bread", "BakeCo", 200),
		line("M2", "2024-01-05", "13:05:00", "S1", "Coffee", "AcmeRoast", 300),
	}
}

func TestQueryRequiresMember(t *testing.T) {
	e := New(nil)
	_, err := e.Query(fixtureLines(), Params{})
	assert.ErrorIs(t, err, ErrNoMemberSelected)
}

func TestQueryMemberOnly(t *testing.T) {
	e := New(nil)
	receipts, err := e.Query(fixtureLines(), Params{Member: "M1"})
	require.NoError(t, err)
	require.Len(t, receipts, 2)

	// Combined line count equals the member's raw row count.
	total := 0
	for _, r := range receipts {
		total += len(r.Lines)
	}
	assert.Equal(t, 3, total)
}

func TestQueryLineCountMatchesRawRowsPerMember(t *testing.T) {
	// With all filters empty, every member's receipts carry exactly that
	// member's raw lines.
	e := New(nil)
	lines := fixtureLines()

	perMember := map[string]int{}
	for _, li := range lines {
		perMember[li.Member]++
	}

	for member, want := range perMember {
		receipts, err := e.Query(lines, Params{Member: member})
		require.NoError(t, err)
		require.NotEmpty(t, receipts)

		got := 0
		for _, r := range receipts {
			got += len(r.Lines)
		}
		assert.Equal(t, want, got, "member %s", member)
	}
}

func TestQueryStoreAndDateFilters(t *testing.T) {
	e := New(nil)

	receipts, err := e.Query(fixtureLines(), Params{Member: "M1", Store: "S2"})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "S2", receipts[0].Store)

	receipts, err = e.Query(fixtureLines(), Params{Member: "M1", Date: "2024-01-05"})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "2024-01-05", receipts[0].DateKey)

	receipts, err = e.Query(fixtureLines(), Params{Member: "M1", Store: "S1", Date: "2024-01-06"})
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestQueryScopeDivergence(t *testing.T) {
	// Product filter matching a strict subset of a multi-item transaction.
	e := New(nil)
	product := ProductFilter{Item: "Coffee"}

	detail, err := e.Query(fixtureLines(), Params{
		Member:  "M1",
		Product: product,
		Scope:   models.ScopeDetailOnly,
	})
	require.NoError(t, err)
	require.Len(t, detail, 1)
	require.Len(t, detail[0].Lines, 1, "detail-only keeps only matching lines")
	assert.Equal(t, "Coffee", detail[0].Lines[0].Item)

	full, err := e.Query(fixtureLines(), Params{
		Member:  "M1",
		Product: product,
		Scope:   models.ScopeReceiptAll,
	})
	require.NoError(t, err)
	require.Len(t, full, 1)
	require.Len(t, full[0].Lines, 2, "receipt-all reveals co-purchased lines")

	items := []string{full[0].Items[0].Item, full[0].Items[1].Item}
	assert.Contains(t, items, "Milk")
}

func TestQueryScopesEquivalentWithoutProductFilter(t *testing.T) {
	e := New(nil)

	detail, err := e.Query(fixtureLines(), Params{Member: "M1", Scope: models.ScopeDetailOnly})
	require.NoError(t, err)
	full, err := e.Query(fixtureLines(), Params{Member: "M1", Scope: models.ScopeReceiptAll})
	require.NoError(t, err)

	assert.Equal(t, detail, full)
}

func TestQueryProductAttributeFilters(t *testing.T) {
	e := New(nil)

	receipts, err := e.Query(fixtureLines(), Params{
		Member:  "M1",
		Product: ProductFilter{Maker: "Dairy"},
		Scope:   models.ScopeDetailOnly,
	})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "Milk", receipts[0].Lines[0].Item)

	// Free text matches store names too.
	receipts, err = e.Query(fixtureLines(), Params{
		Member:  "M1",
		Product: ProductFilter{Text: "S2"},
		Scope:   models.ScopeDetailOnly,
	})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "Bread", receipts[0].Lines[0].Item)
}

func TestQueryItemSortApplied(t *testing.T) {
	e := New(nil)
	receipts, err := e.Query(fixtureLines(), Params{
		Member:   "M1",
		Date:     "2024-01-05",
		ItemSort: models.ItemSortNameAsc,
	})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "Coffee", receipts[0].Items[0].Item)
	assert.Equal(t, "Milk", receipts[0].Items[1].Item)
}

func TestTimelineSearch(t *testing.T) {
	e := New(nil)
	receipts, err := e.Query(fixtureLines(), Params{Member: "M1"})
	require.NoError(t, err)
	require.Len(t, receipts, 2)

	assert.Len(t, TimelineSearch(receipts, "Coffee"), 1)
	assert.Len(t, TimelineSearch(receipts, "S2"), 1)
	assert.Len(t, TimelineSearch(receipts, "nothing"), 0)

	// Empty and whitespace queries return the input unchanged.
	assert.Equal(t, receipts, TimelineSearch(receipts, ""))
	assert.Equal(t, receipts, TimelineSearch(receipts, "   "))
}

func TestProductFilterActive(t *testing.T) {
	assert.False(t, ProductFilter{}.Active())
	assert.True(t, ProductFilter{Item: "x"}.Active())
	assert.True(t, ProductFilter{Text: "x"}.Active())
}
