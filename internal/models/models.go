// Package models defines the core data types of the receipt pipeline:
// line items parsed from the CSV export, receipts grouped from them and the
// derived aggregates a view layer consumes.
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one row of the source data, representing one product line
// within a transaction. Line items are created once at load time and are
// immutable thereafter; a new load fully replaces them.
type LineItem struct {
	Member      string          `json:"member" yaml:"member"`
	DateKey     string          `json:"date" yaml:"date"`
	Time        string          `json:"time" yaml:"time"`
	Store       string          `json:"store" yaml:"store"`
	Item        string          `json:"item" yaml:"item"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Quantity    decimal.Decimal `json:"quantity" yaml:"quantity"`
	Maker       string          `json:"maker,omitempty" yaml:"maker,omitempty"`
	Category1   string          `json:"category1,omitempty" yaml:"category1,omitempty"`
	Category2   string          `json:"category2,omitempty" yaml:"category2,omitempty"`
	Category3   string          `json:"category3,omitempty" yaml:"category3,omitempty"`
	ProductCode string          `json:"product_code,omitempty" yaml:"product_code,omitempty"`

	// TransactionKey identifies the purchase event this line belongs to,
	// either the natural receipt id from the export or a synthetic key
	// derived from member, store, date and time. Never shown to the user.
	TransactionKey string `json:"-" yaml:"-"`

	// DateTimeKey is the lexicographically sortable date+time key.
	DateTimeKey string `json:"-" yaml:"-"`
}

// ItemAggregate sums the lines of one distinct item name within a receipt.
type ItemAggregate struct {
	Item     string          `json:"item" yaml:"item"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
}

// Receipt is the set of line items sharing one purchase event.
// Receipts are recomputed per query, never mutated in place.
type Receipt struct {
	Key         string          `json:"key" yaml:"key"`
	Member      string          `json:"member" yaml:"member"`
	DateKey     string          `json:"date" yaml:"date"`
	Time        string          `json:"time" yaml:"time"`
	Store       string          `json:"store" yaml:"store"`
	DateTimeKey string          `json:"-" yaml:"-"`
	Lines       []LineItem      `json:"lines" yaml:"lines"`
	Items       []ItemAggregate `json:"items" yaml:"items"`
	Sales       decimal.Decimal `json:"sales" yaml:"sales"`
	Quantity    decimal.Decimal `json:"quantity" yaml:"quantity"`

	// ItemText is the precomputed concatenation of aggregated item names,
	// used by the timeline free-text search.
	ItemText string `json:"-" yaml:"-"`
}

// MemberSummary holds the KPI reduction over the currently visible receipts.
// It is derived on demand and never stored.
type MemberSummary struct {
	ReceiptCount int             `json:"receipt_count" yaml:"receipt_count"`
	Sales        decimal.Decimal `json:"sales" yaml:"sales"`
	Quantity     decimal.Decimal `json:"quantity" yaml:"quantity"`
	VisitDays    int             `json:"visit_days" yaml:"visit_days"`
	StoreCount   int             `json:"store_count" yaml:"store_count"`

	// AverageTransactionValue is Sales / ReceiptCount, zero when there are
	// no receipts.
	AverageTransactionValue decimal.Decimal `json:"average_transaction_value" yaml:"average_transaction_value"`
}

// Dataset is one successfully loaded CSV export: the full immutable line-item
// set plus the distinct member and store lists derived from it. The ID ties
// log lines to a specific load.
type Dataset struct {
	ID      uuid.UUID
	Header  []string
	Lines   []LineItem
	Members []string
	Stores  []string
}
