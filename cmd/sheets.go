package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/worksheet-lab/ruiji/internal/printdoc"
	"github.com/worksheet-lab/ruiji/internal/sections"
	"github.com/worksheet-lab/ruiji/internal/storage"
)

func newSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Manage saved worksheets",
	}

	cmd.AddCommand(newSheetsListCmd())
	cmd.AddCommand(newSheetsDeleteCmd())
	cmd.AddCommand(newSheetsPrintCmd())
	cmd.AddCommand(newSheetsExportCmd())

	return cmd
}

func newSheetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved worksheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := storage.NewSheetStore(dataDir).List()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tTITLE\tSTUDENT\tDATE")
			for _, sheet := range sheets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					sheet.ID,
					sheet.CreatedAt.Local().Format("2006-01-02 15:04"),
					sheet.Title,
					sheet.StudentName,
					sheet.Date)
			}
			return tw.Flush()
		},
	}
}

func newSheetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID [ID...]",
		Short: "Delete saved worksheets by ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewSheetStore(dataDir)
			for _, id := range args {
				if err := store.Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return nil
		},
	}
}

func newSheetsPrintCmd() *cobra.Command {
	var output string
	var selection string

	cmd := &cobra.Command{
		Use:     "print ID",
		Short:   "Write the print document for a saved worksheet",
		Example: `  ruiji sheets print 1775035800000 --sections all -o sheet.html`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := printdoc.ParseSections(selection)
			if err != nil {
				return err
			}

			sheet, err := storage.NewSheetStore(dataDir).Get(args[0])
			if err != nil {
				return err
			}

			doc, err := printdoc.Build(sections.Split(sheet.Result), printdoc.Options{
				Title:          sheet.Title,
				StudentName:    sheet.StudentName,
				InstructorName: sheet.InstructorName,
				Date:           sheet.Date,
				Sections:       selected,
			})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&selection, "sections", "problems", "Sections to print (problems, solutions, guide, all)")

	return cmd
}

func newSheetsExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export saved worksheets to a Parquet file",
		Example: `  ruiji sheets export -o sheets.parquet`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := storage.NewSheetStore(dataDir).List()
			if err != nil {
				return err
			}
			return storage.ExportParquet(output, sheets)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sheets.parquet", "Path to output Parquet file")

	return cmd
}
