package main

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/cli"
	"github.com/Veraticus/shelf/internal/organizer"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [folder]",
		Short: "List the documents under a folder",
		Long: `List every PDF, DOCX and TXT document found recursively under the
folder, with its type and path relative to the folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := resolveFolder(args)
			if err != nil {
				return err
			}

			entries, err := organizer.Scan(folder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s %s", cli.FolderIcon, folder)))
			if len(entries) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No documents found"))
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rel, relErr := filepath.Rel(folder, entry.Path)
				if relErr != nil {
					rel = entry.Path
				}
				rows = append(rows, []string{entry.Kind.Label(), rel})
			}
			fmt.Fprintln(out, renderTable([]string{"Type", "Path"}, rows, nil))
			fmt.Fprintf(out, "%d documents\n", len(entries))
			return nil
		},
	}
}
