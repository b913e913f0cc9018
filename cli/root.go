// Package cli implements the ftc command-line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitalvas/forthecity/apiclient"
)

type options struct {
	configPath string
	jsonOutput bool
	noColor    bool
	verbose    bool
}

// app carries the flags and writers shared by every command.
type app struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand returns the ftc root command writing to stdout and
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   "ftc",
		Short: "Query the For The City API",
		Long:  "A command-line client for the For The City API. Requests are signed with Hawk credentials read from a config file or the FTC_TOKEN and FTC_SECRET environment variables.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.opts.noColor {
				color.NoColor = true
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&a.opts.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&a.opts.jsonOutput, "json", false, "Output as JSON")
	root.PersistentFlags().BoolVar(&a.opts.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "Log each request to stderr")

	root.AddCommand(
		a.getCommand(),
		a.listCommand(),
		a.searchCommand(),
		a.signupTemplateCommand(),
		a.signCommand(),
	)

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	root := NewRootCommand(os.Stdout, os.Stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		return err
	}

	return nil
}

func (a *app) config() (apiclient.Config, error) {
	cfg, err := apiclient.LoadConfig(a.opts.configPath)
	if err != nil {
		return apiclient.Config{}, err
	}

	if a.opts.verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return cfg, nil
}

func (a *app) client() (*apiclient.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	client, err := apiclient.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}
