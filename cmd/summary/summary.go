// Package summary implements the command that prints the KPI block for one
// member under the given filters.
package summary

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fkondo/pos-receipts/cmd/common"
	"fkondo/pos-receipts/cmd/root"
	"fkondo/pos-receipts/internal/query"
	"fkondo/pos-receipts/internal/report"
)

var (
	memberFlag string
	storeFlag  string
	dateFlag   string
	searchFlag string
)

// Cmd is the summary command.
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show receipt count, sales, quantity and ATV for one member.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")

		gen, err := report.NewGenerator(format)
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
		})
		if errors.Is(err, query.ErrNoMemberSelected) {
			fmt.Println("select a member first, use --member (see the members command)")
			return nil
		}
		if err != nil {
			return err
		}
		s.SetTimelineSearch(searchFlag)

		out, err := gen.Summary(s.ViewModel())
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
	Cmd.Flags().StringVar(&searchFlag, "search", "", "timeline search over store and item names")
}
