package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config without asking")
}

func runInit(cmd *cobra.Command, _ []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout(), nil)

	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	_, err := os.Stat(path)
	switch {
	case err == nil && !initForce:
		p.Warning("config already exists at %s", path)
		prompter := &ui.TerminalPrompter{Out: cmd.OutOrStdout(), Theme: p.Theme}
		ok, err := ui.Confirm(prompter, "Overwrite?")
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			return err
		}
		if !ok {
			p.Info("cancelled")
			return nil
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return errs.IO("stat "+path, err)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(filepath.Dir(path), "modules"), 0o755); err != nil {
		return errs.IO("create modules directory", err)
	}

	p.Success("created config at %s", path)
	p.Println("")
	p.Println("Next steps:")
	p.Println("  1. Edit the config file to set your wallpaper path")
	p.Println("  2. Run 'lmtt setup' to configure application config files")
	p.Println("  3. Run 'lmtt switch dark' or 'lmtt switch light' to apply a theme")
	return nil
}
