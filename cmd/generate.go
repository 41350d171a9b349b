package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/worksheet-lab/ruiji/internal/generation"
	"github.com/worksheet-lab/ruiji/internal/images"
	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/printdoc"
	"github.com/worksheet-lab/ruiji/internal/render"
	"github.com/worksheet-lab/ruiji/internal/storage"
)

func newGenerateCmd() *cobra.Command {
	var (
		provider   string
		model      string
		format     string
		output     string
		sections   string
		title      string
		student    string
		instructor string
		date       string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "generate IMAGE [IMAGE...]",
		Short: "Generate similar problems from image files",
		Long: `Sends the given problem images to the model in a single request and writes
the result as markdown, rendered HTML, or a printable worksheet document.`,
		Example: `  # Print markdown to stdout
  ruiji generate page1.jpg page2.png

  # Write a printable worksheet with problems and solutions
  ruiji generate page1.jpg --format print --sections problems,solutions -o worksheet.html

  # Use OpenAI and keep the result in the saved sheet list
  ruiji generate page1.jpg --provider openai --model gpt-4o --save --title "一次方程式"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := printdoc.ParseSections(sections)
			if err != nil {
				return err
			}

			imgs := make([]models.Image, 0, len(args))
			for _, path := range args {
				img, err := images.ReadFile(path)
				if err != nil {
					return err
				}
				imgs = append(imgs, *img)
			}

			settings, err := storage.NewSettingsStore(dataDir).Load()
			if err != nil {
				return err
			}
			opts := generation.OptionsFromSettings(settings, provider, model)
			result, err := generation.NewService().Generate(cmd.Context(), imgs, opts)
			if err != nil {
				return err
			}

			if student == "" {
				student = settings.StudentName
			}
			if instructor == "" {
				instructor = settings.InstructorName
			}

			var out string
			switch format {
			case "markdown", "md":
				out = result.Text
			case "html":
				out, err = render.Rich(result.Text)
			case "print":
				out, err = printdoc.Build(result.Sections, printdoc.Options{
					Title:          title,
					StudentName:    student,
					InstructorName: instructor,
					Date:           date,
					Sections:       selected,
				})
			default:
				return fmt.Errorf("unsupported format: %s (supported: markdown, html, print)", format)
			}
			if err != nil {
				return err
			}

			if save {
				sheet, err := storage.NewSheetStore(dataDir).Append(models.SavedSheet{
					Title:          title,
					StudentName:    student,
					InstructorName: instructor,
					Date:           date,
					Result:         result.Text,
				})
				if err != nil {
					return err
				}
				slog.Info("Sheet saved", "sheet_id", sheet.ID)
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(output, []byte(out), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			slog.Info("Wrote output", "path", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, openai, or ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format (markdown, html, print)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&sections, "sections", "problems", "Sections to print (problems, solutions, guide, all)")
	cmd.Flags().StringVar(&title, "title", "", "Worksheet title")
	cmd.Flags().StringVar(&student, "student", "", "Student name (defaults to saved settings)")
	cmd.Flags().StringVar(&instructor, "instructor", "", "Instructor name (defaults to saved settings)")
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "Date shown on the worksheet")
	cmd.Flags().BoolVar(&save, "save", false, "Append the result to the saved sheet list")

	return cmd
}
