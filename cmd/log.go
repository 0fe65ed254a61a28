package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/kvdiff-project/kvdiff/internal/service"
	"github.com/kvdiff-project/kvdiff/internal/store"
	bboltStore "github.com/kvdiff-project/kvdiff/internal/store/bbolt"
)

var logCmd = &cobra.Command{
	Use:   "log SOURCE",
	Short: "List the stored revisions of a tracked source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLog(cmd, args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVar(&dbFile, "db", ".kvdiff.db",
		"Path to the revision database file")
}

func runLog(cmd *cobra.Command, source string) error {
	setupLogging()

	revisions, err := bboltStore.New(dbFile, nil, true)
	if err != nil {
		return fmt.Errorf("opening revision database: %w", err)
	}
	defer func(revisions store.RevisionStore) {
		_ = revisions.Close()
	}(revisions)

	tracker := service.NewTracker(revisions)
	history, err := tracker.History(cmd.Context(), filepath.Clean(source))
	if err != nil {
		return fmt.Errorf("listing revisions: %w", err)
	}
	if len(history) == 0 {
		fmt.Fprintf(os.Stderr, "no revisions stored for %s\n", source)
		return nil
	}

	for _, revision := range history {
		fmt.Printf("%s  %-14s  %s\n",
			revision.ID,
			humanize.Time(revision.RecordedAt),
			english.Plural(len(revision.Document), "key", ""))
	}
	return nil
}
