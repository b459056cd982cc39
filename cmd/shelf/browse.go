package main

import (
	"log/slog"

	"github.com/Veraticus/shelf/internal/app"
	"github.com/Veraticus/shelf/internal/config"
	"github.com/Veraticus/shelf/internal/tui"
	"github.com/Veraticus/shelf/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [folder]",
		Short: "Pick documents and tag them interactively",
		Long: `Open an interactive list of the documents under the folder. Select files
with space, press t to type a tag or T to let the LLM tag them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := resolveFolder(args)
			if err != nil {
				return err
			}

			// A missing LLM credential only disables auto-tagging.
			eng, cleanup, err := newEngine(cmd, engineOptions{classifier: true})
			if err != nil {
				slog.Warn("Auto-tagging unavailable", "error", err)
				eng, cleanup, err = newEngine(cmd, engineOptions{})
				if err != nil {
					return err
				}
			}
			defer cleanup()

			session := app.NewSession(eng, app.WithLogger(slog.Default()))
			if err := session.Open(folder); err != nil {
				return userFacing(err)
			}

			return tui.Run(cmd.Context(), session,
				tui.WithTheme(themes.ByName(viper.GetString(config.KeyTUITheme))),
				tui.WithMaxErrors(viper.GetInt(config.KeyReportMaxErrs)),
			)
		},
	}
}
