package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/shelf/internal/cli"
	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
	"github.com/Veraticus/shelf/internal/storage"
	"github.com/spf13/cobra"
)

const shortIDLength = 8

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent batches from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			batches, err := store.ListBatches(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No batches recorded yet"))
				return nil
			}
			fmt.Fprintln(out, historyTable(batches))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", storage.DefaultHistoryLimit, "number of batches to show")
	cmd.AddCommand(historyShowCmd())
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the moves and errors of one batch",
		Long:  "Show one batch from the journal. The id may be shortened to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetBatch(cmd.Context(), args[0])
			switch {
			case errors.Is(err, storage.ErrBatchNotFound):
				return common.NewUserError(fmt.Sprintf("No batch matches %q", args[0]), err)
			case errors.Is(err, storage.ErrAmbiguousBatch):
				return common.NewUserError(fmt.Sprintf("%q matches several batches; use a longer id", args[0]), err)
			case err != nil:
				return err
			}

			return renderBatch(cmd, record)
		},
	}
}

func historyTable(batches []model.BatchRecord) string {
	rows := make([][]string, 0, len(batches))
	for _, b := range batches {
		tag := b.Tag
		if tag == "" {
			tag = "-"
		}
		rows = append(rows, []string{
			shortID(b.ID),
			b.FinishedAt.Local().Format("2006-01-02 15:04"),
			string(b.Mode),
			tag,
			strconv.Itoa(b.Result.Moved),
			strconv.Itoa(b.Result.Skipped),
			strconv.Itoa(b.Result.ErrorCount()),
		})
	}
	return renderTable(
		[]string{"ID", "Finished", "Mode", "Tag", "Moved", "Skipped", "Errors"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func renderBatch(cmd *cobra.Command, record *model.BatchRecord) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderBox(fmt.Sprintf("Batch %s", record.ID), batchDetails(record)))
	fmt.Fprintln(out)

	if len(record.Result.Moves) > 0 {
		if err := cli.RenderMoves(out, record.BaseFolder, record.Result.Moves); err != nil {
			return err
		}
	}
	// Every error is shown; the journal is the full record.
	return cli.RenderReport(out, record.Result, max(record.Result.ErrorCount(), 1))
}

func batchDetails(record *model.BatchRecord) string {
	label := func(name string) string {
		return cli.BoldStyle.Render(fmt.Sprintf("%-9s", name+":"))
	}

	lines := []string{label("Mode") + " " + string(record.Mode)}
	if record.Tag != "" {
		lines = append(lines, label("Tag")+" "+record.Tag)
	}
	lines = append(lines,
		label("Folder")+" "+record.BaseFolder,
		fmt.Sprintf("%s %s (%s)", label("Finished"),
			record.FinishedAt.Local().Format(time.RFC3339),
			record.Duration().Round(time.Millisecond)),
	)
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}
