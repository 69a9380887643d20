// Package inspect implements the command that runs a full receipt query and
// renders the timeline plus the selected receipt.
package inspect

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fkondo/pos-receipts/cmd/common"
	"fkondo/pos-receipts/cmd/root"
	"fkondo/pos-receipts/internal/models"
	"fkondo/pos-receipts/internal/query"
	"fkondo/pos-receipts/internal/report"
)

var (
	memberFlag      string
	storeFlag       string
	dateFlag        string
	itemFlag        string
	makerFlag       string
	category1Flag   string
	category2Flag   string
	category3Flag   string
	productCodeFlag string
	textFlag        string
	scopeFlag       string
	receiptSortFlag string
	itemSortFlag    string
	searchFlag      string
	indexFlag       int
)

// Cmd is the inspect command.
var Cmd = &cobra.Command{
	Use:   "inspect",
	Short: "Query one member's receipts and show the timeline and a receipt detail.",
	Long: `inspect filters the export down to one member's receipts, applies the
product filters under the chosen scope, sorts the result and renders the
receipt timeline plus the receipt selected with --index.

With --scope detail-only a product filter keeps only matching line items;
with --scope receipt-all it selects whole transactions, revealing
co-purchased items.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")

		gen, err := report.NewGenerator(format)
		if err != nil {
			return err
		}

		scope, err := models.ParseFilterScope(scopeFlag)
		if err != nil {
			return err
		}
		receiptSort, err := models.ParseReceiptSortMode(receiptSortFlag)
		if err != nil {
			return err
		}
		itemSort, err := models.ParseItemSortMode(itemSortFlag)
		if err != nil {
			return err
		}

		s, _, err := common.LoadSession(file, root.Cfg, root.Log)
		if err != nil {
			return err
		}

		err = s.Apply(query.Params{
			Member: memberFlag,
			Store:  storeFlag,
			Date:   dateFlag,
			Product: query.ProductFilter{
				Item:        itemFlag,
				Maker:       makerFlag,
				Category1:   category1Flag,
				Category2:   category2Flag,
				Category3:   category3Flag,
				ProductCode: productCodeFlag,
				Text:        textFlag,
			},
			Scope:       scope,
			ReceiptSort: receiptSort,
			ItemSort:    itemSort,
		})
		if errors.Is(err, query.ErrNoMemberSelected) {
			fmt.Println("select a member first, use --member (see the members command)")
			return nil
		}
		if err != nil {
			return err
		}

		s.SetTimelineSearch(searchFlag)
		s.Select(indexFlag)

		vm := s.ViewModel()

		out, err := gen.Summary(vm)
		if err != nil {
			return err
		}
		fmt.Print(out)
		fmt.Println()

		out, err = gen.Timeline(vm)
		if err != nil {
			return err
		}
		fmt.Print(out)
		fmt.Println()

		out, err = gen.Receipt(vm)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&memberFlag, "member", "m", "", "member id (required for output)")
	Cmd.Flags().StringVar(&storeFlag, "store", "", "filter by exact store name")
	Cmd.Flags().StringVar(&dateFlag, "date", "", "filter by date key (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&itemFlag, "item", "", "product filter: item name substring")
	Cmd.Flags().StringVar(&makerFlag, "maker", "", "product filter: maker substring")
	Cmd.Flags().StringVar(&category1Flag, "category1", "", "product filter: category level 1 substring")
	Cmd.Flags().StringVar(&category2Flag, "category2", "", "product filter: category level 2 substring")
	Cmd.Flags().StringVar(&category3Flag, "category3", "", "product filter: category level 3 substring")
	Cmd.Flags().StringVar(&productCodeFlag, "product-code", "", "product filter: product code substring")
	Cmd.Flags().StringVar(&textFlag, "text", "", "product filter: free text over item and store names")
	Cmd.Flags().StringVar(&scopeFlag, "scope", "detail-only", "product filter scope: detail-only or receipt-all")
	Cmd.Flags().StringVar(&receiptSortFlag, "receipt-sort", "", "receipt order: datetime|sales|quantity -asc|-desc")
	Cmd.Flags().StringVar(&itemSortFlag, "item-sort", "", "item order: amount|quantity|name -asc|-desc")
	Cmd.Flags().StringVar(&searchFlag, "search", "", "timeline search over store and item names")
	Cmd.Flags().IntVar(&indexFlag, "index", 0, "receipt to show in the detail view (0-based)")
}
