// Package members implements the command that lists the distinct members
// and stores of an export.
package members

import (
	"fmt"

	"github.com/spf13/cobra"

	"fkondo/pos-receipts/cmd/common"
	"fkondo/pos-receipts/cmd/root"
	"fkondo/pos-receipts/internal/report"
)

var searchFlag string

// Cmd is the members command.
var Cmd = &cobra.Command{
	Use:   "members",
	Short: "List distinct member ids and store names in a CSV export.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")

		gen, err := report.NewGenerator(format)
		if err != nil {
			return err
		}

		s, stats, err := common.LoadSession(file, root.Cfg, root.Log)
		if err != nil {
			return err
		}
		root.Log.WithField("rows", stats.Rows).Info("Export loaded")

		out, err := gen.Lists("members", s.Members(searchFlag))
		if err != nil {
			return err
		}
		fmt.Print(out)

		out, err = gen.Lists("stores", s.Stores(searchFlag))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&searchFlag, "search", "", "narrow lists by substring")
}
