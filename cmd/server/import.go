package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/wordflow/internal/importer"
	"github.com/vytor/wordflow/internal/logger"
)

func newImportCommand() *cobra.Command {
	var (
		sheet          string
		wordCol        int
		translationCol int
		noHeader       bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import words into the catalogue, updating translations of known words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			a := newApp(cfg, newRepositories(database))

			icfg := importer.DefaultConfig(args[0])
			icfg.Sheet = sheet
			icfg.WordColumn = wordCol
			icfg.TranslationColumn = translationCol
			icfg.SkipHeader = !noHeader

			ctx := logger.NewContext(cmd.Context(), logger.Default())
			res, err := importer.Import(ctx, a.catalog, icfg)
			if err != nil {
				return err
			}
			total, err := a.catalog.CountWords(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rows=%d created=%d updated=%d skipped=%d total_words=%d\n",
				res.Rows, res.Created, res.Updated, res.Skipped, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (default: first sheet)")
	cmd.Flags().IntVar(&wordCol, "word-col", 0, "zero-based column holding the word")
	cmd.Flags().IntVar(&translationCol, "translation-col", 1, "zero-based column holding the translation")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first row as data")
	return cmd
}
