package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/csheth/rephrase/internal/config"
	"github.com/csheth/rephrase/internal/form"
	"github.com/csheth/rephrase/internal/logging"
	"github.com/csheth/rephrase/internal/processing"
	"github.com/csheth/rephrase/internal/source"
	"github.com/csheth/rephrase/internal/tui"
)

type rootFlags struct {
	configPath  string
	endpoint    string
	inputPath   string
	watch       bool
	noAltScreen bool
	paraphrase  bool
	removeAI    bool
	humanize    bool
	logLevel    string
	logFile     string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "rephrase",
		Short: "Clean AI artifacts out of text with a processing service",
		Long: `Rephrase sends text to a processing service that can paraphrase it,
strip stock AI phrases, and make it read more naturally.

Without a subcommand it opens an interactive form in the terminal.

Examples:
  rephrase
  rephrase --endpoint http://localhost:5000 --input draft.txt --watch
  rephrase process --paraphrase < draft.txt
  rephrase health`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, flags)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.Path(), "Path to a TOML, YAML, or JSON config file")
	pf.StringVar(&flags.endpoint, "endpoint", "", "Base URL of the processing service (eg. http://localhost:5000)")
	pf.BoolVar(&flags.paraphrase, "paraphrase", false, "Enable the paraphrase option")
	pf.BoolVar(&flags.removeAI, "remove-ai-phrases", true, "Enable the remove AI phrases option")
	pf.BoolVar(&flags.humanize, "humanize", true, "Enable the humanize option")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error, disabled)")
	pf.StringVar(&flags.logFile, "log-file", "", "File that receives logs")
	pf.StringVarP(&flags.inputPath, "input", "i", "", "Text or PDF file to load as input")

	root.Flags().BoolVar(&flags.watch, "watch", false, "Reload --input whenever the file changes")
	root.Flags().BoolVar(&flags.noAltScreen, "no-alt-screen", false, "Disable the alternate screen buffer")

	root.AddCommand(newProcessCmd(flags), newHealthCmd(flags))
	return root
}

func newProcessCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "process [text]",
		Short: "Process text once and print the result",
		Long: `Process sends text from the argument, --input, or standard input (in that
order) and prints the processed text on stdout. The applied options are
reported on stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, flags, false)
			if err != nil {
				return err
			}
			defer closeLog()

			text, err := readInput(cmd, flags, args)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			return processOnce(cmd.Context(), client, optionsFromConfig(cfg), text, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func newHealthCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the processing service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, flags, false)
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			timeout := cfg.Timeout.Duration
			if timeout <= 0 {
				timeout = config.Default().Timeout.Duration
			}
			ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), timeout)
			defer cancel()
			health, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("%s is unhealthy: %w", client.Endpoint(), err)
			}
			line := fmt.Sprintf("%s: %s", client.Endpoint(), health.Status)
			if health.Version != "" {
				line += " (version " + health.Version + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

// setup loads config, applies flag overrides, and starts logging. The TUI
// owns the terminal, so console logging is only enabled for one-shot commands.
func setup(cmd *cobra.Command, flags *rootFlags, interactive bool) (*config.Config, func(), error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	applyFlagOverrides(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate flags: %w", err)
	}

	logFile := cfg.Logging.File
	if !interactive && !cmd.Flags().Changed("log-file") && os.Getenv("REPHRASE_LOG_FILE") == "" {
		logFile = ""
	}
	closeFn, err := logging.Init(logging.Options{
		Level:   cfg.Logging.Level,
		File:    logFile,
		Console: !interactive && cfg.Logging.Level == "debug",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, func() { _ = closeFn() }, nil
}

func applyFlagOverrides(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if flags.endpoint != "" {
		cfg.Endpoint = flags.endpoint
	}
	if changed("paraphrase") {
		cfg.Options.Paraphrase = flags.paraphrase
	}
	if changed("remove-ai-phrases") {
		cfg.Options.RemoveAIPhrases = flags.removeAI
	}
	if changed("humanize") {
		cfg.Options.Humanize = flags.humanize
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Logging.File = flags.logFile
	}
	if flags.noAltScreen {
		cfg.UI.AltScreen = false
	}
}

func optionsFromConfig(cfg *config.Config) processing.Options {
	return processing.Options{
		Paraphrase:      cfg.Options.Paraphrase,
		RemoveAIPhrases: cfg.Options.RemoveAIPhrases,
		Humanize:        cfg.Options.Humanize,
	}
}

func newClient(cfg *config.Config) (processing.Client, error) {
	client, err := processing.NewFromEnv(processing.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.Timeout.Duration,
	})
	if err != nil {
		return nil, fmt.Errorf("create processing client: %w", err)
	}
	return client, nil
}

func readInput(cmd *cobra.Command, flags *rootFlags, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case flags.inputPath != "":
		return source.Load(flags.inputPath)
	default:
		return source.Read(cmd.InOrStdin())
	}
}

// processOnce drives the form controller without a UI so validation and
// error messages match the interactive form.
func processOnce(ctx context.Context, client processing.Client, options processing.Options, text string, stdout, stderr io.Writer) error {
	f := form.New(options)
	f.SetInput(text)
	sub, err := f.Submit()
	if err != nil {
		return err
	}
	result, reqErr := client.Process(contextOrBackground(ctx), sub.Request)
	f.Complete(sub.Generation, result, reqErr)

	view := f.Render()
	if view.State == form.StateError {
		return errors.New(view.Banner)
	}
	fmt.Fprintln(stdout, view.Output)
	fmt.Fprintf(stderr, "%s (%s)\n", view.Summary, view.OutputCount)
	return nil
}

func runInteractive(cmd *cobra.Command, flags *rootFlags) error {
	if flags.watch && flags.inputPath == "" {
		return errors.New("--watch requires --input")
	}
	cfg, closeLog, err := setup(cmd, flags, true)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "processing disabled:", err)
	}

	tuiConfig := tui.Config{
		Processor:      client,
		Options:        optionsFromConfig(cfg),
		HistoryPath:    cfg.HistoryFile,
		RequestTimeout: cfg.Timeout.Duration,
		BannerDuration: cfg.UI.BannerDuration.Duration,
		CopyFeedback:   cfg.UI.CopyFeedback.Duration,
	}
	if flags.inputPath != "" {
		text, err := source.Load(flags.inputPath)
		if err != nil {
			return err
		}
		tuiConfig.InitialInput = strings.TrimRight(text, "\n")
		if flags.watch {
			watcher, err := source.Watch(flags.inputPath)
			if err != nil {
				return fmt.Errorf("watch input: %w", err)
			}
			defer watcher.Close()
			tuiConfig.InputWatcher = watcher
		}
	}

	log.Info().
		Str("endpoint", cfg.Endpoint).
		Str("input", flags.inputPath).
		Bool("watch", flags.watch).
		Msg("starting interactive form")

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(tuiConfig), opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
