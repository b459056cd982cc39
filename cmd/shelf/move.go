package main

import (
	"github.com/Veraticus/shelf/internal/cli"
	"github.com/Veraticus/shelf/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func moveCmd() *cobra.Command {
	var showMoves bool

	cmd := &cobra.Command{
		Use:   "move <tag> <file>...",
		Short: "Move documents into a tag folder",
		Long: `Move the given files into <folder>/<tag>, creating the tag folder when
needed. Name collisions get a " (n)" suffix; files already in place are
skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := resolveFolder(nil)
			if err != nil {
				return err
			}
			paths, err := resolvePaths(args[1:])
			if err != nil {
				return err
			}

			eng, cleanup, err := newEngine(cmd, engineOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := eng.MoveWithTag(cmd.Context(), folder, args[0], paths)
			if err != nil {
				return userFacing(err)
			}

			out := cmd.OutOrStdout()
			if showMoves {
				if err := cli.RenderMoves(out, folder, result.Moves); err != nil {
					return err
				}
			}
			return cli.RenderReport(out, result, viper.GetInt(config.KeyReportMaxErrs))
		},
	}

	cmd.Flags().BoolVar(&showMoves, "show-moves", false, "list every moved file")
	return cmd
}
