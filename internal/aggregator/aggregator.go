// Package aggregator groups line items into receipts and reduces receipts
// into member-level summaries. Everything here is a pure function over the
// models; receipts are rebuilt per query, never mutated.
package aggregator

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fkondo/pos-receipts/internal/models"
)

// Group partitions line items by transaction key into receipts, preserving
// the first-seen order of keys. Within each receipt, lines with the same
// trimmed item name merge into one ItemAggregate; an empty name is bucketed
// under models.UnknownItemLabel. Item aggregates come back in the default
// order (amount descending, encounter order on ties).
func Group(lines []models.LineItem) []models.Receipt {
	index := make(map[string]int)
	var receipts []models.Receipt

	for _, li := range lines {
		i, ok := index[li.TransactionKey]
		if !ok {
			i = len(receipts)
			index[li.TransactionKey] = i
			receipts = append(receipts, models.Receipt{
				Key:         li.TransactionKey,
				Member:      li.Member,
				DateKey:     li.DateKey,
				Time:        li.Time,
				Store:       li.Store,
				DateTimeKey: li.DateTimeKey,
			})
		}
		receipts[i].Lines = append(receipts[i].Lines, li)
	}

	for i := range receipts {
		finalize(&receipts[i])
	}

	return receipts
}

// finalize derives the item aggregates, totals and search text of a receipt
// from its lines.
func finalize(r *models.Receipt) {
	itemIndex := make(map[string]int)
	r.Sales = decimal.Zero
	r.Quantity = decimal.Zero

	for _, li := range r.Lines {
		r.Sales = r.Sales.Add(li.Amount)
		r.Quantity = r.Quantity.Add(li.Quantity)

		name := strings.TrimSpace(li.Item)
		if name == "" {
			name = models.UnknownItemLabel
		}
		j, ok := itemIndex[name]
		if !ok {
			j = len(r.Items)
			itemIndex[name] = j
			r.Items = append(r.Items, models.ItemAggregate{Item: name})
		}
		r.Items[j].Amount = r.Items[j].Amount.Add(li.Amount)
		r.Items[j].Quantity = r.Items[j].Quantity.Add(li.Quantity)
	}

	SortItems(r.Items, models.ItemSortAmountDesc)

	names := make([]string, len(r.Items))
	for i, it := range r.Items {
		names[i] = it.Item
	}
	r.ItemText = strings.Join(names, " ")
}

// Summarize reduces the currently visible receipts into member-level KPIs.
// The average transaction value is zero, not a division error, when the
// receipt set is empty.
func Summarize(receipts []models.Receipt) models.MemberSummary {
	s := models.MemberSummary{
		ReceiptCount:            len(receipts),
		Sales:                   decimal.Zero,
		Quantity:                decimal.Zero,
		AverageTransactionValue: decimal.Zero,
	}

	days := make(map[string]struct{})
	stores := make(map[string]struct{})
	for _, r := range receipts {
		s.Sales = s.Sales.Add(r.Sales)
		s.Quantity = s.Quantity.Add(r.Quantity)
		if r.DateKey != "" {
			days[r.DateKey] = struct{}{}
		}
		if r.Store != "" {
			stores[r.Store] = struct{}{}
		}
	}
	s.VisitDays = len(days)
	s.StoreCount = len(stores)

	if s.ReceiptCount > 0 {
		s.AverageTransactionValue = s.Sales.Div(decimal.NewFromInt(int64(s.ReceiptCount)))
	}

	return s
}

// SortReceipts orders a receipt list in place. Date/time modes tie-break by
// store name then key; sales and quantity modes tie-break by the date+time
// key. The sort is stable, so re-applying a mode never reorders.
func SortReceipts(receipts []models.Receipt, mode models.ReceiptSortMode) {
	var less func(a, b models.Receipt) bool

	byDateTime := func(a, b models.Receipt) bool {
		if a.DateTimeKey != b.DateTimeKey {
			return a.DateTimeKey < b.DateTimeKey
		}
		if a.Store != b.Store {
			return a.Store < b.Store
		}
		return a.Key < b.Key
	}

	switch mode {
	case models.ReceiptSortDateTimeDesc:
		less = func(a, b models.Receipt) bool { return byDateTime(b, a) }
	case models.ReceiptSortSalesAsc:
		less = func(a, b models.Receipt) bool {
			if c := a.Sales.Cmp(b.Sales); c != 0 {
				return c < 0
			}
			return a.DateTimeKey < b.DateTimeKey
		}
	case models.ReceiptSortSalesDesc:
		less = func(a, b models.Receipt) bool {
			if c := a.Sales.Cmp(b.Sales); c != 0 {
				return c > 0
			}
			return a.DateTimeKey < b.DateTimeKey
		}
	case models.ReceiptSortQuantityAsc:
		less = func(a, b models.Receipt) bool {
			if c := a.Quantity.Cmp(b.Quantity); c != 0 {
				return c < 0
			}
			return a.DateTimeKey < b.DateTimeKey
		}
	case models.ReceiptSortQuantityDesc:
		less = func(a, b models.Receipt) bool {
			if c := a.Quantity.Cmp(b.Quantity); c != 0 {
				return c > 0
			}
			return a.DateTimeKey < b.DateTimeKey
		}
	default:
		less = byDateTime
	}

	sort.SliceStable(receipts, func(i, j int) bool { return less(receipts[i], receipts[j]) })
}

// SortItems orders item aggregates in place. Ties keep encounter order; the
// sort is stable.
func SortItems(items []models.ItemAggregate, mode models.ItemSortMode) {
	var less func(a, b models.ItemAggregate) bool

	switch mode {
	case models.ItemSortAmountAsc:
		less = func(a, b models.ItemAggregate) bool { return a.Amount.Cmp(b.Amount) < 0 }
	case models.ItemSortQuantityDesc:
		less = func(a, b models.ItemAggregate) bool { return a.Quantity.Cmp(b.Quantity) > 0 }
	case models.ItemSortQuantityAsc:
		less = func(a, b models.ItemAggregate) bool { return a.Quantity.Cmp(b.Quantity) < 0 }
	case models.ItemSortNameAsc:
		less = func(a, b models.ItemAggregate) bool { return a.Item < b.Item }
	case models.ItemSortNameDesc:
		less = func(a, b models.ItemAggregate) bool { return a.Item > b.Item }
	default:
		less = func(a, b models.ItemAggregate) bool { return a.Amount.Cmp(b.Amount) > 0 }
	}

	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
