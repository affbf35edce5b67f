package mcp

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_ingredients tool.
type AnalyzeInput struct {
	Text string `json:"text" jsonschema:"raw ingredient label text, for example OCR output"`
}

// AnalyzeOutput is the output schema for the analyze_ingredients tool.
type AnalyzeOutput struct {
	Ingredients []IngredientOutput `json:"ingredients"`
	Counts      CountsOutput       `json:"counts"`
}

// IngredientOutput is one classified ingredient.
type IngredientOutput struct {
	Name        string `json:"name"`
	Safety      string `json:"safety"`
	MatchedWith string `json:"matched_with,omitempty"`
}

// CountsOutput holds per-tier totals.
type CountsOutput struct {
	Safe        int `json:"safe"`
	Conditional int `json:"conditional"`
	Harmful     int `json:"harmful"`
	Unknown     int `json:"unknown"`
}

// ListScansInput is the input schema for the list_scans tool.
type ListScansInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of most recent scans to return (default 20)"`
}

// ListScansOutput is the output schema for the list_scans tool.
type ListScansOutput struct {
	Scans []ScanSummary `json:"scans"`
	Count int           `json:"count"`
	Total int           `json:"total"`
}

// ScanSummary is a saved scan without its full ingredient list.
type ScanSummary struct {
	ID     string       `json:"id"`
	Date   string       `json:"date"`
	Counts CountsOutput `json:"counts"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_ingredients",
		Description: "Classify each ingredient in a label as safe, use with caution, potentially harmful or unknown",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_scans",
		Description: "List the most recent saved scans with their safety counts",
	}, s.handleListScans)
}

func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	analysis, err := s.ports.Analysis.Analyze(ctx, input.Text)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	output := AnalyzeOutput{
		Ingredients: make([]IngredientOutput, len(analysis.Ingredients)),
		Counts:      countsOutput(analysis.Counts),
	}
	for i, ing := range analysis.Ingredients {
		output.Ingredients[i] = IngredientOutput{
			Name:   ing.Name,
			Safety: ing.Safety.String(),
		}
		if ing.MatchedWith != nil {
			output.Ingredients[i].MatchedWith = *ing.MatchedWith
		}
	}

	return nil, output, nil
}

func (s *Server) handleListScans(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListScansInput,
) (*mcp.CallToolResult, ListScansOutput, error) {
	output := ListScansOutput{Scans: []ScanSummary{}}
	if s.ports.Scan == nil {
		return nil, output, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := s.ports.Scan.List(ctx)
	if err != nil {
		return nil, ListScansOutput{}, err
	}

	output.Total = len(records)
	for _, r := range newestFirst(records) {
		if len(output.Scans) == limit {
			break
		}
		output.Scans = append(output.Scans, scanSummary(&r))
	}
	output.Count = len(output.Scans)

	return nil, output, nil
}

// newestFirst returns a copy of records ordered by capture time, latest first.
// The collection order is user-arranged, so it says nothing about recency.
// Ties keep the later collection position first.
func newestFirst(records []domain.ScanRecord) []domain.ScanRecord {
	sorted := make([]domain.ScanRecord, len(records))
	for i := range records {
		sorted[len(records)-1-i] = records[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}

func countsOutput(c domain.TierCounts) CountsOutput {
	return CountsOutput{
		Safe:        c.Safe,
		Conditional: c.Conditional,
		Harmful:     c.Harmful,
		Unknown:     c.Unknown,
	}
}

func scanSummary(r *domain.ScanRecord) ScanSummary {
	return ScanSummary{
		ID:     r.ID,
		Date:   r.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Counts: countsOutput(r.Counts()),
	}
}
