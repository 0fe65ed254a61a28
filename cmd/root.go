package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kvdiff-project/kvdiff/internal/document"
	"github.com/kvdiff-project/kvdiff/internal/filter"
	"github.com/kvdiff-project/kvdiff/internal/report"
	"github.com/kvdiff-project/kvdiff/internal/ui"
	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

var (
	// persistent flags
	cfgFile         string
	enableDebugMode bool

	// local flags
	filterExpr    string
	outputFormat  string
	showUnchanged bool
	noColor       bool
	interactive   bool
	useExitCode   bool
)

var rootCmd = &cobra.Command{
	Use:   "kvdiff [FLAGS] LEFT RIGHT",
	Short: "Structural diff between two key-value documents",
	Long: `kvdiff compares two JSON or YAML documents key by key and classifies every
key as unchanged, added, removed, or modified. When a key disappears on the
left and a different key appears on the right carrying the identical value,
the pair is reported as a single rename instead of a delete plus an insert.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiff(args[0], args[1])
	},
	SilenceUsage: true,
}

var setupLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
	Timestamp().
	Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	cobra.OnInitialize(initConfig)

	// global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.kvdiff.yaml)")
	rootCmd.PersistentFlags().BoolVar(&enableDebugMode, "debug", false,
		"Enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// diff command flags
	rootCmd.Flags().StringVarP(&filterExpr, "filter", "f", "Changed()",
		"Filter expression to select which records to report (default: changes only)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "o", "text",
		"Output format: text or json")
	rootCmd.Flags().BoolVarP(&showUnchanged, "show-unchanged", "u", false,
		"Also print unchanged entries in text output")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"Browse the diff in an interactive TUI instead of printing it")
	rootCmd.Flags().BoolVar(&useExitCode, "exit-code", false,
		"Exit with status 1 when the documents differ")

	// allow some flags to be set via environment variables / config file
	mustBind("filter",
		viper.BindPFlag("filter", rootCmd.Flags().Lookup("filter")))
	mustBind("format",
		viper.BindPFlag("format", rootCmd.Flags().Lookup("format")))
	mustBind("no-color",
		viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color")))
	mustBind("debug",
		viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func mustBind(name string, err error) {
	if err != nil {
		setupLog.Fatal().Err(err).Msgf("Cannot bind flag %q", name)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kvdiff")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		setupLog.Info().Msgf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// setupLogging routes the package logger to stderr in debug mode and mutes
// it otherwise, so regular output stays clean.
func setupLogging() {
	if enableDebugMode || viper.GetBool("debug") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
			Timestamp().
			Logger().
			Level(zerolog.DebugLevel)
	} else {
		log.Logger = zerolog.Nop()
	}
}

// loadBoth loads the two documents up front; both must be valid before any
// diffing starts. Read failures and parse failures surface distinctly.
func loadBoth(leftPath, rightPath string) (left, right map[string]any, err error) {
	left, err = document.Load(leftPath)
	if err != nil {
		return nil, nil, describeLoadError(err)
	}
	right, err = document.Load(rightPath)
	if err != nil {
		return nil, nil, describeLoadError(err)
	}
	return left, right, nil
}

func describeLoadError(err error) error {
	switch {
	case errors.Is(err, document.ErrUnreadable):
		return fmt.Errorf("cannot read input: %w", err)
	case errors.Is(err, document.ErrMalformed):
		return fmt.Errorf("cannot parse input: %w", err)
	}
	return err
}

// runDiff is the main entry point for the root command.
func runDiff(leftPath, rightPath string) error {
	setupLogging()

	left, right, err := loadBoth(leftPath, rightPath)
	if err != nil {
		return err
	}
	log.Debug().
		Int("left-keys", len(left)).
		Int("right-keys", len(right)).
		Msg("documents loaded")

	all := mapdiff.DiffValues(left, right)

	expression := viper.GetString("filter")
	if showUnchanged && expression == "Changed()" {
		// keep the unchanged rows the default filter would drop
		expression = "All()"
	}
	recordFilter, err := filter.Compile(expression)
	if err != nil {
		return err
	}
	records, err := recordFilter.Apply(all)
	if err != nil {
		return err
	}
	log.Debug().
		Int("records", len(all)).
		Int("after-filter", len(records)).
		Str("expression", expression).
		Msg("diff computed")

	if interactive {
		title := fmt.Sprintf("%s → %s", leftPath, rightPath)
		if err := ui.NewBrowser(title, records).Run(); err != nil {
			return fmt.Errorf("running browser: %w", err)
		}
		return nil
	}

	switch viper.GetString("format") {
	case "json":
		if err := report.RenderJSON(os.Stdout, records); err != nil {
			return err
		}
	case "text":
		theme := report.DefaultTheme()
		if noColor || viper.GetBool("no-color") {
			theme = report.PlainTheme()
		}
		renderer := report.Renderer{Theme: theme, ShowUnchanged: showUnchanged}
		if err := renderer.Render(os.Stdout, records); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, report.Summary(all))
	default:
		return fmt.Errorf("unknown output format %q", viper.GetString("format"))
	}

	if useExitCode && len(mapdiff.Changes(all)) > 0 {
		os.Exit(1)
	}
	return nil
}
