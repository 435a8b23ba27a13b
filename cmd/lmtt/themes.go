package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renato0307/lmtt/internal/detect"
)

var themesFilter string

var themesCmd = &cobra.Command{
	Use:   "themes <gtk|icons|cursors|fonts|vscode|nvim>",
	Short: "List installed themes for use in theme_profiles",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var kinds []string
		for _, k := range detect.Kinds() {
			kinds = append(kinds, string(k))
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runThemes,
}

func init() {
	themesCmd.Flags().StringVarP(&themesFilter, "filter", "f", "", "fuzzy filter")
}

func runThemes(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := detect.New().Detect(cmd.Context(), detect.Kind(args[0]))
	if err != nil {
		return err
	}
	items = detect.Filter(items, themesFilter)

	p := a.Printer
	p.Title(fmt.Sprintf("%s (%d)", args[0], len(items)))
	for _, item := range items {
		p.Println("  " + item)
	}
	return nil
}
