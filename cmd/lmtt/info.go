package main

import (
	"github.com/spf13/cobra"
)

var listAll bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current theme and color source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.PrintStatus()
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules and whether they are enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.PrintModules(listAll)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include disabled and missing modules")
}
