package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/placesync/placesync/internal/config"
	"github.com/placesync/placesync/internal/model"
	"github.com/placesync/placesync/internal/sync"
	"github.com/placesync/placesync/internal/ui"
	"github.com/placesync/placesync/internal/ui/tui"
	"github.com/placesync/placesync/internal/util"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Sync bookmarks from one backend to the other two",
		UsageText: "placesync sync [options] [backend]",
		Description: `Project the bookmarks of one backend store into the other two.

   Supported backends: gtk, kde, qt

   With no backend argument, the configured default source is used, or an
   interactive picker when running in a terminal.

   Examples:
     placesync sync gtk
     placesync sync --dry-run kde`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-dir",
				Aliases: []string{"b"},
				Usage:   "Base directory the store paths resolve under (defaults to home)",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview the run without modifying files",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			source, err := resolveSource(cmd.Args().First(), cfg)
			if err != nil {
				return err
			}
			if source == "" {
				// Picker dismissed without a selection.
				return nil
			}

			opts := sync.Options{
				BaseDir: baseDir(cmd, cfg),
				DryRun:  cmd.Bool("dry-run"),
				Paths:   cfg.PathOverrides(),
			}

			result, err := sync.New().Sync(source, opts)
			if err != nil {
				return err
			}

			printResult(result)
			if !result.Success() {
				return errors.New("one or more targets failed")
			}
			return nil
		},
	}
}

func pathsCommand() *cli.Command {
	return &cli.Command{
		Name:  "paths",
		Usage: "Display the resolved store file paths",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-dir",
				Aliases: []string{"b"},
				Usage:   "Base directory the store paths resolve under (defaults to home)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			base := baseDir(cmd, cfg)
			overrides := cfg.PathOverrides()
			for _, b := range model.AllBackends() {
				path := util.StorePath(b, base)
				if p, ok := overrides[b]; ok {
					path = p
				}
				fmt.Printf("  %-4s %s\n", b, path)
			}
			return nil
		},
	}
}

// resolveSource picks the source backend: the command-line argument,
// then the configured default, then an interactive picker when stdin is
// a terminal. An empty backend with a nil error means the picker was
// dismissed.
func resolveSource(arg string, cfg *config.Config) (model.Backend, error) {
	if arg != "" {
		return model.ParseBackend(arg)
	}
	if cfg.Sync.DefaultSource != "" {
		return model.ParseBackend(cfg.Sync.DefaultSource)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no source backend given (supported: gtk, kde, qt)")
	}

	result, err := tui.RunBackendPicker()
	if err != nil {
		return "", fmt.Errorf("backend picker: %w", err)
	}
	if result.Action != tui.BackendPickerActionSelect {
		return "", nil
	}
	return result.Source, nil
}

// baseDir resolves the base directory: flag, then config, then home.
func baseDir(cmd *cli.Command, cfg *config.Config) string {
	if dir := cmd.String("base-dir"); dir != "" {
		return dir
	}
	return cfg.Sync.BaseDir
}

// printResult writes the per-target status lines to stdout.
func printResult(result *sync.Result) {
	if result.DryRun {
		fmt.Println(ui.Dim("Dry run - no changes made"))
	}
	fmt.Printf("Synced %d bookmark(s) from %s\n", result.Count, result.Source)

	for _, tr := range result.Targets {
		switch tr.Status {
		case sync.StatusWritten:
			fmt.Println("  " + ui.StatusSuccess(fmt.Sprintf("%s written (%s)", tr.Backend, tr.Path)))
		case sync.StatusSkipped:
			fmt.Println("  " + ui.StatusSkipped(fmt.Sprintf("%s skipped: %s", tr.Backend, tr.Message)))
		case sync.StatusFailed:
			fmt.Println("  " + ui.StatusError(fmt.Sprintf("%s failed: %v", tr.Backend, tr.Err)))
		}
	}

	for _, w := range result.Warnings {
		fmt.Println("  " + ui.StatusWarning(w.String()))
	}
}
