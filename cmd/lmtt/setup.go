package main

import (
	"github.com/spf13/cobra"

	"github.com/renato0307/lmtt/internal/app"
	"github.com/renato0307/lmtt/internal/setup"
	"github.com/renato0307/lmtt/internal/ui"
)

var (
	setupDryRun   bool
	cleanupDryRun bool
	cleanupModule string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Add lmtt include lines to application config files",
	Long: "Check installed applications and offer to inject the line that makes each\n" +
		"config file load lmtt's generated colors.",
	Args: cobra.NoArgs,
	RunE: runSetup,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove lmtt include lines from application config files",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupDryRun, "dry-run", false, "show what would be changed without prompting")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "show what would be removed")
	cleanupCmd.Flags().StringVarP(&cleanupModule, "module", "m", "", "only clean this module")
}

func newSetupManager(cmd *cobra.Command, a *app.App) *setup.Manager {
	prompter := &ui.TerminalPrompter{Out: cmd.OutOrStdout(), Theme: a.Printer.Theme}
	return setup.NewManager(a.Registry, prompter, a.Printer)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m := newSetupManager(cmd, a)
	if setupDryRun {
		_, err = m.SetupDryRun(cmd.Context())
	} else {
		_, err = m.Setup(cmd.Context())
	}
	return err
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m := newSetupManager(cmd, a)
	if cleanupDryRun {
		_, err := m.CleanupDryRun(cmd.Context())
		return err
	}

	sum, err := m.Cleanup(cmd.Context(), cleanupModule)
	if err != nil {
		return err
	}
	if sum.Errors > 0 {
		return errReported
	}
	return nil
}
