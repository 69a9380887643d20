// Package report renders the session view model for the terminal. It is the
// in-repo stand-in for the external view layer: it only consumes derived
// values and never reaches back into the pipeline.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fkondo/pos-receipts/internal/amountutils"
	"fkondo/pos-receipts/internal/models"
	"fkondo/pos-receipts/internal/session"
)

var hundred = decimal.NewFromInt(100)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Generator renders view models in one of the supported formats.
type Generator struct {
	format string
}

// NewGenerator creates a Generator, rejecting unknown formats up front.
func NewGenerator(format string) (*Generator, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return &Generator{format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s (use text, json or yaml)", format)
	}
}

// summaryDoc is the serializable shape of the KPI block.
type summaryDoc struct {
	Receipts     int    `json:"receipts" yaml:"receipts"`
	Sales        string `json:"sales" yaml:"sales"`
	Quantity     string `json:"quantity" yaml:"quantity"`
	VisitDays    int    `json:"visit_days" yaml:"visit_days"`
	Stores       int    `json:"stores" yaml:"stores"`
	AvgPerRcpt   string `json:"average_transaction_value" yaml:"average_transaction_value"`
	VisibleCount int    `json:"visible" yaml:"visible"`
	TotalCount   int    `json:"total" yaml:"total"`
}

// itemDoc is one line of the per-receipt item table.
type itemDoc struct {
	Item     string `json:"item" yaml:"item"`
	Amount   string `json:"amount" yaml:"amount"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Share    string `json:"share" yaml:"share"`
}

// receiptDoc is the serializable shape of one receipt.
type receiptDoc struct {
	Date     string    `json:"date" yaml:"date"`
	Time     string    `json:"time,omitempty" yaml:"time,omitempty"`
	Store    string    `json:"store" yaml:"store"`
	Member   string    `json:"member" yaml:"member"`
	Sales    string    `json:"sales" yaml:"sales"`
	Quantity string    `json:"quantity" yaml:"quantity"`
	Lines    int       `json:"lines" yaml:"lines"`
	Items    []itemDoc `json:"items" yaml:"items"`
}

// Summary renders the KPI block of a view model.
func (g *Generator) Summary(vm session.ViewModel) (string, error) {
	doc := summaryDoc{
		Receipts:     vm.Summary.ReceiptCount,
		Sales:        amountutils.FormatGrouped(vm.Summary.Sales),
		Quantity:     amountutils.FormatGrouped(vm.Summary.Quantity),
		VisitDays:    vm.Summary.VisitDays,
		Stores:       vm.Summary.StoreCount,
		AvgPerRcpt:   amountutils.FormatGrouped(vm.Summary.AverageTransactionValue),
		VisibleCount: vm.VisibleCount,
		TotalCount:   vm.TotalCount,
	}

	if g.format != FormatText {
		return g.marshal(doc)
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "receipts\t%s\n", amountutils.FormatCount(doc.Receipts))
	fmt.Fprintf(w, "sales\t%s\n", doc.Sales)
	fmt.Fprintf(w, "quantity\t%s\n", doc.Quantity)
	fmt.Fprintf(w, "visit days\t%d\n", doc.VisitDays)
	fmt.Fprintf(w, "stores\t%d\n", doc.Stores)
	fmt.Fprintf(w, "avg/receipt\t%s\n", doc.AvgPerRcpt)
	fmt.Fprintf(w, "showing\t%d / %d\n", doc.VisibleCount, doc.TotalCount)
	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Timeline renders the visible receipt list, marking the cursor position.
func (g *Generator) Timeline(vm session.ViewModel) (string, error) {
	if g.format != FormatText {
		docs := make([]receiptDoc, len(vm.Receipts))
		for i, r := range vm.Receipts {
			docs[i] = toReceiptDoc(r)
		}
		return g.marshal(docs)
	}

	if len(vm.Receipts) == 0 {
		return "no receipts\n", nil
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for i, r := range vm.Receipts {
		marker := " "
		if i == vm.Cursor {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %d\t%s %s\t%s\t%s\t%s items\n",
			marker, i+1, r.DateKey, r.Time, r.Store,
			amountutils.FormatGrouped(r.Sales),
			amountutils.FormatCount(len(r.Items)))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Receipt renders the detail view of the receipt under the cursor.
func (g *Generator) Receipt(vm session.ViewModel) (string, error) {
	if vm.Cursor >= len(vm.Receipts) {
		return "no receipt selected\n", nil
	}
	r := vm.Receipts[vm.Cursor]

	if g.format != FormatText {
		return g.marshal(toReceiptDoc(r))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d / %d  %s %s | %s | member=%s\n",
		vm.Cursor+1, len(vm.Receipts), r.DateKey, r.Time, r.Store, r.Member)
	fmt.Fprintf(&b, "sales=%s quantity=%s lines=%d\n\n",
		amountutils.FormatGrouped(r.Sales),
		amountutils.FormatGrouped(r.Quantity),
		len(r.Lines))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "item\tamount\tqty\tshare\n")
	for _, it := range r.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			it.Item,
			amountutils.FormatGrouped(it.Amount),
			amountutils.FormatGrouped(it.Quantity),
			share(it, r))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Lists renders member or store pick lists.
func (g *Generator) Lists(label string, values []string) (string, error) {
	if g.format != FormatText {
		return g.marshal(map[string][]string{label: values})
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", label, amountutils.FormatCount(len(values)))
	for _, v := range values {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	return b.String(), nil
}

func toReceiptDoc(r models.Receipt) receiptDoc {
	doc := receiptDoc{
		Date:     r.DateKey,
		Time:     r.Time,
		Store:    r.Store,
		Member:   r.Member,
		Sales:    amountutils.FormatGrouped(r.Sales),
		Quantity: amountutils.FormatGrouped(r.Quantity),
		Lines:    len(r.Lines),
		Items:    make([]itemDoc, len(r.Items)),
	}
	for i, it := range r.Items {
		doc.Items[i] = itemDoc{
			Item:     it.Item,
			Amount:   amountutils.FormatGrouped(it.Amount),
			Quantity: amountutils.FormatGrouped(it.Quantity),
			Share:    share(it, r),
		}
	}
	return doc
}

// share is the item's fraction of the receipt sales, for the detail table.
func share(it models.ItemAggregate, r models.Receipt) string {
	if r.Sales.IsZero() {
		return "0.0%"
	}
	ratio := it.Amount.Div(r.Sales).Mul(hundred)
	return ratio.StringFixed(1) + "%"
}

func (g *Generator) marshal(v interface{}) (string, error) {
	switch g.format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", g.format)
	}
}
