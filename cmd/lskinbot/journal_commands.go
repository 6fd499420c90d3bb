package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lskinbot/internal/config"
	"lskinbot/internal/journal"
)

func newJournalCommand(configFlag *string) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect recorded packaging attempts",
	}

	journalCmd.AddCommand(newJournalListCommand(configFlag))
	journalCmd.AddCommand(newJournalClearCommand(configFlag))

	return journalCmd
}

func openJournal(configFlag *string) (*journal.Store, error) {
	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	store, err := journal.Open(cfg.Paths.LogDir)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

func newJournalListCommand(configFlag *string) *cobra.Command {
	var limit int
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent packaging attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			var statuses []journal.Status
			if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
				status, ok := journal.ParseStatus(trimmed)
				if !ok {
					return fmt.Errorf("unknown status %q (known: %v)", trimmed, journal.AllStatuses())
				}
				statuses = append(statuses, status)
			}

			entries, err := store.List(cmd.Context(), limit, statuses...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No journal entries")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					strconv.FormatInt(entry.UserID, 10),
					string(entry.Status),
					entry.ErrorMessage,
					formatTimestamp(entry.CreatedAt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "User", "Status", "Error", "Created"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
			))

			summary, err := store.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d total: %d delivered, %d rejected, %d failed, %d in flight\n",
				summary.Total, summary.Delivered, summary.Rejected, summary.Failed, summary.InFlight)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show (0 for all)")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show entries with this status")
	return cmd
}

func newJournalClearCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d journal entries\n", removed)
			return nil
		},
	}
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
