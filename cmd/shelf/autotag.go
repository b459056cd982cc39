package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/shelf/internal/app"
	"github.com/Veraticus/shelf/internal/cli"
	"github.com/Veraticus/shelf/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func autotagCmd() *cobra.Command {
	var (
		files     []string
		showMoves bool
		noBar     bool
	)

	cmd := &cobra.Command{
		Use:   "autotag [folder]",
		Short: "Let the LLM choose a tag folder for each document",
		Long: `Extract the text of each document, ask the configured LLM for a short
topic tag and move the document into <folder>/<tag>. Without --file every
document under the folder is processed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := resolveFolder(args)
			if err != nil {
				return err
			}
			selected, err := resolvePaths(files)
			if err != nil {
				return err
			}

			opts := engineOptions{classifier: true}
			if !noBar {
				opts.observer = cli.NewProgressObserver(cmd.ErrOrStderr())
			}
			eng, cleanup, err := newEngine(cmd, opts)
			if err != nil {
				return userFacing(err)
			}
			defer cleanup()

			session := app.NewSession(eng, app.WithLogger(slog.Default()))
			if err := session.Open(folder); err != nil {
				return userFacing(err)
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := handler.HandleInterrupts(cmd.Context(), "Auto-tagging",
				"Files already classified will still be moved.")
			defer stop()

			result, err := session.AutoTagSelected(ctx, selected)
			if err != nil {
				return userFacing(err)
			}

			out := cmd.OutOrStdout()
			if handler.WasInterrupted() {
				fmt.Fprintln(out, cli.FormatWarning("Batch interrupted; remaining files were left in place"))
			}
			if showMoves {
				if err := cli.RenderMoves(out, folder, result.Moves); err != nil {
					return err
				}
			}
			return cli.RenderReport(out, result, viper.GetInt(config.KeyReportMaxErrs))
		},
	}

	cmd.Flags().StringSliceVar(&files, "file", nil, "only process these files (repeatable)")
	cmd.Flags().BoolVar(&showMoves, "show-moves", false, "list every moved file")
	cmd.Flags().BoolVar(&noBar, "no-progress", false, "disable the progress bar")
	return cmd
}
