package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driving/styles"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

const dateLayout = "2006-01-02 15:04"

var styleSet = styles.DefaultStyles()

type ingredientJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Safety      string  `json:"safety"`
	MatchedWith *string `json:"matched_with,omitempty"`
}

type countsJSON struct {
	Safe        int `json:"safe"`
	Conditional int `json:"conditional"`
	Harmful     int `json:"harmful"`
	Unknown     int `json:"unknown"`
	Total       int `json:"total"`
}

type analysisJSON struct {
	Ingredients []ingredientJSON `json:"ingredients"`
	Counts      countsJSON       `json:"counts"`
}

type scanJSON struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"date"`
	RecognizedText string           `json:"recognized_text"`
	Ingredients    []ingredientJSON `json:"ingredients"`
	ImageRef       string           `json:"image_file_name"`
	Counts         countsJSON       `json:"counts"`
}

func toIngredientsJSON(ingredients []domain.ClassifiedIngredient) []ingredientJSON {
	out := make([]ingredientJSON, len(ingredients))
	for i, ing := range ingredients {
		out[i] = ingredientJSON{
			ID:          ing.ID,
			Name:        ing.Name,
			Safety:      ing.Safety.String(),
			MatchedWith: ing.MatchedWith,
		}
	}
	return out
}

func toCountsJSON(c domain.TierCounts) countsJSON {
	return countsJSON{
		Safe:        c.Safe,
		Conditional: c.Conditional,
		Harmful:     c.Harmful,
		Unknown:     c.Unknown,
		Total:       c.Total(),
	}
}

func toScanJSON(r *domain.ScanRecord) scanJSON {
	return scanJSON{
		ID:             r.ID,
		Date:           r.Timestamp.UTC(),
		RecognizedText: r.RecognizedText,
		Ingredients:    toIngredientsJSON(r.Ingredients),
		ImageRef:       r.ImageRef,
		Counts:         toCountsJSON(r.Counts()),
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printIngredients(cmd *cobra.Command, ingredients []domain.ClassifiedIngredient) {
	if len(ingredients) == 0 {
		cmd.Println("No ingredients found.")
		return
	}

	width := 0
	for i := range ingredients {
		width = max(width, len(ingredients[i].Name))
	}

	for i := range ingredients {
		line := fmt.Sprintf("  %-*s  %s", width, ingredients[i].Name, styleSet.TierLabel(ingredients[i].Safety))
		if m := ingredients[i].Matched(); m != "" && !strings.EqualFold(m, ingredients[i].Name) {
			line += " " + styleSet.Muted.Render("("+m+")")
		}
		cmd.Println(line)
	}
}

func printCounts(cmd *cobra.Command, c domain.TierCounts) {
	parts := make([]string, 0, len(domain.AllSafeties))
	for _, s := range domain.AllSafeties {
		parts = append(parts, fmt.Sprintf("%s: %d", styleSet.TierLabel(s), c.Count(s)))
	}
	cmd.Println(styleSet.Box.Render(strings.Join(parts, "   ")))
}

// countsSummary is a compact single-line tally for lists.
func countsSummary(c domain.TierCounts) string {
	return fmt.Sprintf("%d safe, %d caution, %d harmful, %d unknown",
		c.Safe, c.Conditional, c.Harmful, c.Unknown)
}

// readText returns ingredient text from the first argument, a file, or stdin.
// Stdin is only read when it is not an interactive terminal.
func readText(cmd *cobra.Command, args []string, path string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no ingredient text: pass it as an argument, with --file, or on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
