package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	analyzeFile string
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Classify an ingredient list",
	Long: `Classifies every ingredient in a label without saving anything.

The text is taken from the argument, from --file, or from stdin:

  ingrecheck analyze "Water, Sugar, Red 40"
  ingrecheck analyze --file label.txt
  tesseract label.jpg - | ingrecheck analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read text from file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	text, err := readText(cmd, args, analyzeFile)
	if err != nil {
		return err
	}

	analysis, err := analysisService.Analyze(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return printJSON(cmd, analysisJSON{
			Ingredients: toIngredientsJSON(analysis.Ingredients),
			Counts:      toCountsJSON(analysis.Counts),
		})
	}

	printIngredients(cmd, analysis.Ingredients)
	if len(analysis.Ingredients) > 0 {
		cmd.Println()
		printCounts(cmd, analysis.Counts)
	}
	return nil
}
