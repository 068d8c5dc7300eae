package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"skilltui/internal/debug"
	"skilltui/internal/version"
	"skilltui/pkg/catalog"
	"skilltui/pkg/config"
	"skilltui/pkg/runner"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("skilltui needs an interactive terminal; try `skilltui commands` to list commands")

type rootOptions struct {
	configFile  string
	debug       bool
	showVersion bool
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: opts.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newCatalog(cfg *config.Config) catalog.Provider {
	return catalog.NewHelpCatalog(cfg.Tool, cfg.Catalog.HelpTimeout)
}

func runTUI(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	logger, err := debug.NewDebugLogger(cfg.LogPath(), debug.ParseLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	debug.SetGlobal(logger)
	defer func() {
		debug.SetGlobal(nil)
		logger.Close()
	}()
	debug.Info("main", "starting %s with tool %q (config %q)", version.Short(), cfg.Tool, cfg.Source)

	controller := runner.NewController(runner.NewProcessFactory(cfg.Runner.Pty))
	controller.SetMaxLines(cfg.Output.MaxLines)
	defer controller.Close()

	m := newModel(deps{
		cfg:        cfg,
		controller: controller,
		catalog:    newCatalog(cfg),
		targets:    catalog.FileTargets{Path: cfg.Targets.File},
		logger:     logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func printCommands(ctx context.Context, w io.Writer, p catalog.Provider) error {
	cmds, err := p.Commands(ctx)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		_, err := fmt.Fprintln(w, "none found")
		return err
	}
	for _, c := range cmds {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", c.Name, c.Description); err != nil {
			return err
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "skilltui",
		Short: "A terminal UI for a skills package manager",
		Long: `skilltui lists the subcommands of a skills CLI, lets you pick one and
runs it in an output pane that passes your keystrokes through to it.

Commands that take a repository (such as "add") offer the entries of a
targets file, repos.txt by default. Space toggles between global (-g) and
project scope.

Press ? for help once running.

Examples:
  skilltui                          # drive "npx skills"
  skilltui --tool "skills"          # use an installed binary
  skilltui --targets ~/my-repos.txt # offer a different repository list`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Long())
				return nil
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("tool", config.DefaultTool, "Command line of the skills CLI")
	flags.String("targets", catalog.DefaultTargetsFile, "File listing one target repository per line")
	flags.Bool("pty", false, "Attach commands to a pseudo-terminal")
	flags.Bool("no-color", false, "Disable colors")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default ~/.skilltui/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug records to the log")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "commands",
		Short: "Print the subcommands discovered from the tool's help",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			debug.SetGlobal(debug.NewWriterLogger(cmd.ErrOrStderr(), debug.ParseLevel(cfg.Log.Level)))
			defer debug.SetGlobal(nil)
			return printCommands(cmd.Context(), cmd.OutOrStdout(), newCatalog(cfg))
		},
	})

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
