package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tagsort/internal/categorize"
	"tagsort/internal/completion"
	"tagsort/internal/config"
	"tagsort/internal/logging"
	"tagsort/internal/prompt"
	"tagsort/internal/session"
	"tagsort/internal/tokens"
	"tagsort/internal/ui"
)

// newRootCommand creates the root cobra command
func newRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "tagsort [flags] FILE",
		Short: "Sort Stable Diffusion prompt tags into categories",
		Long: `Split a comma separated prompt into top-level tags, sort them into
categories with tab completion, and write the reordered prompt to FILE.

The prompt is read from ./prompt.txt when it exists, otherwise it is asked for.
Commas inside (parentheses) or [brackets] do not split tags.

Examples:
  tagsort out.txt                          # Default categories
  tagsort -c categories.txt out.txt        # One category name per line
  tagsort --preset extended out.txt        # Finer-grained categories
  tagsort --index-selection out.txt        # Allow "3, 5" to pick listed tags`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, configFile, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (default: tagsort.yaml in . or $HOME)")
	flags.StringP("categories-file", "c", "", "File with category names, one per line (or a YAML list)")
	flags.StringSlice("categories", nil, "Comma separated category names")
	flags.String("preset", "", "Category preset: "+strings.Join(categorize.PresetNames(), ", "))
	flags.String("prompt-file", config.DefaultPromptFile, "Read the prompt from this file when it exists")
	flags.StringSlice("exempt-keywords", tokens.DefaultExemptKeywords, "Tags allowed to repeat")
	flags.Bool("sort-listing", true, "Sort the token listing shown before categorizing")
	flags.Bool("index-selection", false, "Accept listing numbers as category input")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("debug", "d", false, "Write a debug log")
	flags.String("log-file", "", "Debug log path (default "+config.DefaultLogFile+" with --debug)")
	flags.String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(newSplitCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runSession(cmd *cobra.Command, configFile, outputPath string) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	fileLogger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	fileLogger = fileLogger.WithRunID(logging.NewRunID())
	userLogger := ui.NewPrinter(cmd.ErrOrStderr(), cfg.NoColor).Logger()
	runLogger := logging.Multi(fileLogger, userLogger)
	if cfg.ConfigFile != "" {
		runLogger.Info("loaded config from %s", cfg.ConfigFile)
	}

	names, err := categorize.Resolve(categorize.Source{
		File:   cfg.CategoriesFile,
		Names:  cfg.Categories,
		Preset: cfg.Preset,
	})
	if err != nil {
		return err
	}
	runLogger.Debug("categories: %v", names)

	engine := completion.NewEngine(completion.WithLogger(fileLogger.Component("completion")))

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	out := cmd.OutOrStdout()
	prompter := prompt.Open(prompt.Options{
		In:         cmd.InOrStdin(),
		Out:        out,
		Completer:  engine.CompleteWord,
		Interrupts: interrupts,
	})
	if history, ok := prompter.(completion.HistoryClearer); ok {
		engine.Bind(history)
	}

	printer := ui.NewPrinter(out, cfg.NoColor)
	sess := session.New(session.Options{
		OutputPath:     outputPath,
		PromptFile:     cfg.PromptFile,
		Categories:     names,
		ExemptKeywords: cfg.ExemptKeywords,
		SortListing:    cfg.SortListing,
		IndexSelection: cfg.IndexSelection,
	}, prompter, engine, printer, logging.Multi(fileLogger.Component("session"), userLogger))

	outcome, runErr := sess.Run()
	if err := prompter.Close(); err != nil {
		runLogger.Warn("closing prompter: %v", err)
	}
	if runErr != nil {
		return runErr
	}
	printer.Info("Wrote %d tokens to %s", len(outcome.Tokens), outputPath)
	return nil
}

// openLogger returns a file logger when a log file is configured and a
// discarding one otherwise.
func openLogger(cfg config.Config) (*logging.SlogLogger, func(), error) {
	if cfg.LogFile == "" {
		return logging.New(logging.Config{}), func() {}, nil
	}
	file, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	logger := logging.New(logging.Config{Level: level, Format: cfg.LogFormat, Output: file})
	return logger, func() { _ = file.Close() }, nil
}

// readAll reads FILE, or stdin when path is empty or "-".
func readAll(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	return string(data), nil
}
