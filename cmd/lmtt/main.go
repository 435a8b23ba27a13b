package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/renato0307/lmtt/internal/app"
	"github.com/renato0307/lmtt/internal/ui"
)

var (
	configPath string
	verbose    bool
	appVersion = "0.1.0"
)

// errReported is returned by commands that already printed their failure
var errReported = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:   "lmtt",
	Short: "lmtt - light/dark theme switcher for Linux desktops",
	Long: "lmtt generates a color scheme from your wallpaper (or static files) and applies\n" +
		"light or dark mode to GTK, Qt, the XDG portal, status bars, editors and any\n" +
		"application described in ~/.config/lmtt/modules.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/lmtt/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level to stderr")

	rootCmd.AddCommand(switchCmd, setupCmd, cleanupCmd, statusCmd, listCmd, initCmd, themesCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, ui.RenderMessage(err.Error(), ui.MessageError, ui.ThemeCharm()))
		}
		os.Exit(1)
	}
}

// loadApp builds the application for commands that need the configuration
func loadApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(app.Options{
		ConfigPath: configPath,
		Verbose:    verbose,
		Out:        cmd.OutOrStdout(),
	})
}
