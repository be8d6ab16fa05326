package cli

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"documents"},
		Short:   "Browse the document library",
	}

	var filter domain.DocumentFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List documents grouped into technical docs and guides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Documents.Library(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDocumentLibrary(lib))
			return nil
		},
	}
	list.Flags().StringVarP(&filter.Search, "search", "s", "", "Match name or category")
	list.Flags().Var(documentTypeFlag(&filter.Type), "type", "technical or guide")

	cmd.AddCommand(list)
	return cmd
}
