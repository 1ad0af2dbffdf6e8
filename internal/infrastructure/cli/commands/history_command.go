package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/raqm/internal/app"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/cli/helpers"
	"github.com/doeshing/raqm/internal/infrastructure/export"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect conversion and content history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		kind   string
		search string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := historyQuery(kind, search, limit)
			if err != nil {
				return err
			}
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, query, asJSON)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind: conversion|content")
	cmd.Flags().StringVar(&search, "search", "", "Only entries whose input or content contains this text")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear history",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := historyQuery(kind, "", 0)
			if err != nil {
				return err
			}
			if container.HistoryStore == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			if err := container.HistoryStore.Clear(cmd.Context(), query.Kind); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only clear one kind: conversion|content")
	return cmd
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	var (
		kind   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as JSON Lines or Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			query, err := historyQuery(kind, "", 0)
			if err != nil {
				return err
			}
			return exportHistory(cmd.Context(), cmd.OutOrStdout(), container, query, f, output)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only export one kind: conversion|content")
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSONL), "Export format: jsonl|markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func historyQuery(kind, search string, limit int) (domain.HistoryQuery, error) {
	q := domain.HistoryQuery{Kind: domain.HistoryKind(kind), Search: search, Limit: limit}
	switch q.Kind {
	case "", domain.HistoryConversion, domain.HistoryContent:
	default:
		return q, fmt.Errorf("unknown history kind %q (want conversion|content)", kind)
	}
	if limit < 0 {
		return q, fmt.Errorf(ErrInvalidLimit)
	}
	return q, nil
}

func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, query domain.HistoryQuery, asJSON bool) error {
	store := container.HistoryStore
	if store == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}

	entries, err := store.Records(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if asJSON {
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	helpers.RenderHistory(out, entries)
	return nil
}

func exportHistory(ctx context.Context, out io.Writer, container *app.Container, query domain.HistoryQuery, format export.Format, path string) error {
	store := container.HistoryStore
	if store == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}

	entries, err := store.Records(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}

	if path == "" {
		return export.Write(out, format, entries, time.Now())
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := export.Write(file, format, entries, time.Now()); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %d entries to %s\n", len(entries), path)
	return nil
}
