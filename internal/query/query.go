// Package query implements the filter/sort engine over a loaded line-item
// set. A query always re-derives its receipts from the full immutable
// dataset; nothing is updated incrementally.
package query

import (
	"errors"
	"strings"

	"fkondo/pos-receipts/internal/aggregator"
	"fkondo/pos-receipts/internal/logging"
	"fkondo/pos-receipts/internal/models"
)

// ErrNoMemberSelected marks a query issued without a member id. It is a
// defined guidance state rather than a failure; callers surface it as an
// empty result with a hint, and nothing aborts.
var ErrNoMemberSelected = errors.New("no member selected")

// ProductFilter narrows line items by product attributes. All non-empty
// fields must match; attribute fields match by substring, case-sensitive
// as-is. Text searches item name and store name together.
type ProductFilter struct {
	Item        string
	Maker       string
	Category1   string
	Category2   string
	Category3   string
	ProductCode string
	Text        string
}

// Active reports whether any product predicate is set. With no active
// predicate both filter scopes are equivalent.
func (f ProductFilter) Active() bool {
	return f != ProductFilter{}
}

// Matches reports whether a line item satisfies every set predicate.
func (f ProductFilter) Matches(li models.LineItem) bool {
	checks := []struct{ want, have string }{
		{f.Item, li.Item},
		{f.Maker, li.Maker},
		{f.Category1, li.Category1},
		{f.Category2, li.Category2},
		{f.Category3, li.Category3},
		{f.ProductCode, li.ProductCode},
	}
	for _, c := range checks {
		if c.want != "" && !strings.Contains(c.have, c.want) {
			return false
		}
	}
	if f.Text != "" && !strings.Contains(li.Item, f.Text) && !strings.Contains(li.Store, f.Text) {
		return false
	}
	return true
}

// Params are the inputs of one query. Member is mandatory; Store and Date
// are equality filters and empty means "all". Zero-valued sort modes and
// scope fall back to their defaults.
type Params struct {
	Member  string
	Store   string
	Date    string
	Product ProductFilter
	Scope   models.FilterScope

	ReceiptSort models.ReceiptSortMode
	ItemSort    models.ItemSortMode
}

// Engine runs queries over a dataset's line items.
type Engine struct {
	logger logging.Logger
}

// New creates a query engine.
func New(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{logger: logger}
}

// Query filters the full line-item set down to one member's receipts.
//
// Member, store and date filters always apply per line. When a product
// predicate is active the scope decides its granularity: detail-only keeps
// exactly the matching lines, receipt-all keeps every line of any
// transaction that has at least one match. The receipts come back sorted by
// the requested modes.
func (e *Engine) Query(lines []models.LineItem, p Params) ([]models.Receipt, error) {
	if p.Member == "" {
		return nil, ErrNoMemberSelected
	}

	base := make([]models.LineItem, 0, len(lines))
	for _, li := range lines {
		if li.Member != p.Member {
			continue
		}
		if p.Store != "" && li.Store != p.Store {
			continue
		}
		if p.Date != "" && li.DateKey != p.Date {
			continue
		}
		base = append(base, li)
	}

	selected := base
	if p.Product.Active() {
		switch p.Scope {
		case models.ScopeReceiptAll:
			keys := make(map[string]struct{})
			for _, li := range base {
				if p.Product.Matches(li) {
					keys[li.TransactionKey] = struct{}{}
				}
			}
			selected = selected[:0:0]
			for _, li := range base {
				if _, ok := keys[li.TransactionKey]; ok {
					selected = append(selected, li)
				}
			}
		default: // detail-only
			selected = selected[:0:0]
			for _, li := range base {
				if p.Product.Matches(li) {
					selected = append(selected, li)
				}
			}
		}
	}

	receipts := aggregator.Group(selected)
	aggregator.SortReceipts(receipts, p.ReceiptSort)
	if p.ItemSort != "" && p.ItemSort != models.ItemSortAmountDesc {
		for i := range receipts {
			aggregator.SortItems(receipts[i].Items, p.ItemSort)
		}
	}

	e.logger.Debug("Query complete",
		logging.Field{Key: "member", Value: p.Member},
		logging.Field{Key: "lines", Value: len(selected)},
		logging.Field{Key: "receipts", Value: len(receipts)})

	return receipts, nil
}

// TimelineSearch narrows an already-built receipt list by substring match
// against the store name or the concatenated item names. It never rebuilds
// receipts; an empty query returns the input list unchanged.
func TimelineSearch(receipts []models.Receipt, q string) []models.Receipt {
	q = strings.TrimSpace(q)
	if q == "" {
		return receipts
	}

	var out []models.Receipt
	for _, r := range receipts {
		if strings.Contains(r.Store, q) || strings.Contains(r.ItemText, q) {
			out = append(out, r)
		}
	}
	return out
}
