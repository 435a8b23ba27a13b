package main

import (
	"github.com/spf13/cobra"
)

var noNotify bool

var switchCmd = &cobra.Command{
	Use:   "switch [light|dark|default]",
	Short: "Switch the desktop theme",
	Long: "Resolve the color scheme for the requested mode and apply it to every enabled\n" +
		"module. Without a mode the current theme is toggled; \"default\" uses\n" +
		"general.default_mode.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "default"},
	RunE:      runSwitch,
}

func init() {
	switchCmd.Flags().BoolVar(&noNotify, "no-notify", false, "do not send a desktop notification")
}

func runSwitch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	mode, err := a.TargetMode(arg)
	if err != nil {
		return err
	}

	report, err := a.Switch(cmd.Context(), mode, !noNotify)
	if err != nil {
		return err
	}
	if report.Failed() {
		return errReported
	}
	return nil
}
