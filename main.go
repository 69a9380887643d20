package main

import (
	"os"

	"fkondo/pos-receipts/cmd/inspect"
	"fkondo/pos-receipts/cmd/members"
	"fkondo/pos-receipts/cmd/root"
	"fkondo/pos-receipts/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(members.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
