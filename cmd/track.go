package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kvdiff-project/kvdiff/internal/document"
	"github.com/kvdiff-project/kvdiff/internal/report"
	"github.com/kvdiff-project/kvdiff/internal/service"
	"github.com/kvdiff-project/kvdiff/internal/store"
	bboltStore "github.com/kvdiff-project/kvdiff/internal/store/bbolt"
)

var (
	dbFile        string
	sourceName    string
	noDurableSync bool
	verboseDump   bool
)

var trackCmd = &cobra.Command{
	Use:   "track FILE",
	Short: "Commit a document revision and diff it against the previous one",
	Long: `track parses FILE, stores it as a new revision in the revision database and
prints how it differs from the revision committed before it. The first commit
of a source reports every key as added.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrack(cmd, args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().StringVar(&dbFile, "db", ".kvdiff.db",
		"Path to the revision database file")
	trackCmd.Flags().StringVar(&sourceName, "source", "",
		"Source name the revision is stored under (default: the cleaned file path)")
	trackCmd.Flags().BoolVar(&noDurableSync, "no-durable-sync", false,
		"Skip fsync on every commit to improve throughput (unsafe on crashes)")
	trackCmd.Flags().BoolVarP(&verboseDump, "verbose", "v", false,
		"Dump the parsed document to stderr before committing")
}

func runTrack(cmd *cobra.Command, path string) error {
	setupLogging()

	doc, err := document.Load(path)
	if err != nil {
		return describeLoadError(err)
	}
	if verboseDump {
		spew.Fdump(os.Stderr, map[string]any(doc))
	}

	source := sourceName
	if source == "" {
		source = filepath.Clean(path)
	}

	revisions, err := bboltStore.New(dbFile, nil, !noDurableSync)
	if err != nil {
		return fmt.Errorf("opening revision database: %w", err)
	}
	defer func(revisions store.RevisionStore) {
		_ = revisions.Close()
	}(revisions)

	tracker := service.NewTracker(revisions)
	revision, records, err := tracker.Commit(cmd.Context(), source, doc)
	if err != nil {
		return fmt.Errorf("committing revision: %w", err)
	}

	theme := report.DefaultTheme()
	if noColor || viper.GetBool("no-color") {
		theme = report.PlainTheme()
	}
	renderer := report.Renderer{Theme: theme}
	if err := renderer.Render(os.Stdout, records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "committed revision %s of %s (%s)\n",
		revision.ID, source, report.Summary(records))
	return nil
}
