package models

import "fmt"

// UnknownItemLabel buckets line items whose item name is empty.
const UnknownItemLabel = "(unknown item)"

// ReceiptSortMode selects the ordering of a receipt list.
type ReceiptSortMode string

const (
	ReceiptSortDateTimeAsc  ReceiptSortMode = "datetime-asc"
	ReceiptSortDateTimeDesc ReceiptSortMode = "datetime-desc"
	ReceiptSortSalesAsc     ReceiptSortMode = "sales-asc"
	ReceiptSortSalesDesc    ReceiptSortMode = "sales-desc"
	ReceiptSortQuantityAsc  ReceiptSortMode = "quantity-asc"
	ReceiptSortQuantityDesc ReceiptSortMode = "quantity-desc"
)

// ItemSortMode selects the ordering of item aggregates inside a receipt.
type ItemSortMode string

const (
	ItemSortAmountDesc   ItemSortMode = "amount-desc"
	ItemSortAmountAsc    ItemSortMode = "amount-asc"
	ItemSortQuantityDesc ItemSortMode = "quantity-desc"
	ItemSortQuantityAsc  ItemSortMode = "quantity-asc"
	ItemSortNameAsc      ItemSortMode = "name-asc"
	ItemSortNameDesc     ItemSortMode = "name-desc"
)

// FilterScope controls whether product filters narrow individual line items
// or whole transactions.
type FilterScope string

const (
	// ScopeDetailOnly keeps exactly the line items matching the product
	// predicate; receipts may show only the matching lines.
	ScopeDetailOnly FilterScope = "detail-only"

	// ScopeReceiptAll uses matching line items only to select which whole
	// transactions qualify; selected receipts keep all their original lines,
	// revealing co-purchases.
	ScopeReceiptAll FilterScope = "receipt-all"
)

// ParseReceiptSortMode validates a receipt sort mode string, defaulting the
// empty string to datetime ascending.
func ParseReceiptSortMode(s string) (ReceiptSortMode, error) {
	switch m := ReceiptSortMode(s); m {
	case "":
		return ReceiptSortDateTimeAsc, nil
	case ReceiptSortDateTimeAsc, ReceiptSortDateTimeDesc,
		ReceiptSortSalesAsc, ReceiptSortSalesDesc,
		ReceiptSortQuantityAsc, ReceiptSortQuantityDesc:
		return m, nil
	default:
		return "", fmt.Errorf("unknown receipt sort mode: %s", s)
	}
}

// ParseItemSortMode validates an item sort mode string, defaulting the empty
// string to amount descending.
func ParseItemSortMode(s string) (ItemSortMode, error) {
	switch m := ItemSortMode(s); m {
	case "":
		return ItemSortAmountDesc, nil
	case ItemSortAmountDesc, ItemSortAmountAsc,
		ItemSortQuantityDesc, ItemSortQuantityAsc,
		ItemSortNameAsc, ItemSortNameDesc:
		return m, nil
	default:
		return "", fmt.Errorf("unknown item sort mode: %s", s)
	}
}

// ParseFilterScope validates a filter scope string, defaulting the empty
// string to detail-only.
func ParseFilterScope(s string) (FilterScope, error) {
	switch m := FilterScope(s); m {
	case "":
		return ScopeDetailOnly, nil
	case ScopeDetailOnly, ScopeReceiptAll:
		return m, nil
	default:
		return "", fmt.Errorf("unknown filter scope: %s", s)
	}
}
