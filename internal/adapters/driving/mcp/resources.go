package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// uriScheme is the custom URI scheme for ingrecheck resources.
const uriScheme = "ingrecheck://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "scans",
		Name:        "scans",
		Description: "All saved scans with their safety counts",
		MIMEType:    "application/json",
	}, s.handleScansResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "scans/{scanId}",
		Name:        "scan",
		Description: "A saved scan with its recognised text and classified ingredients",
		MIMEType:    "application/json",
	}, s.handleScanResource)
}

// scanDetail is the JSON body of a single scan resource.
type scanDetail struct {
	ID             string             `json:"id"`
	Date           string             `json:"date"`
	RecognizedText string             `json:"recognized_text"`
	Ingredients    []IngredientOutput `json:"ingredients"`
	Counts         CountsOutput       `json:"counts"`
}

func (s *Server) handleScansResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summaries := []ScanSummary{}
	if s.ports.Scan != nil {
		records, err := s.ports.Scan.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing scans: %w", err)
		}
		for i := range records {
			summaries = append(summaries, scanSummary(&records[i]))
		}
	}

	return jsonResource(req.Params.URI, summaries)
}

func (s *Server) handleScanResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Scan == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	scanID := extractScanID(req.Params.URI)
	if scanID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Scan.Get(ctx, scanID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting scan: %w", err)
	}

	summary := scanSummary(record)
	detail := scanDetail{
		ID:             summary.ID,
		Date:           summary.Date,
		RecognizedText: record.RecognizedText,
		Ingredients:    make([]IngredientOutput, len(record.Ingredients)),
		Counts:         summary.Counts,
	}
	for i, ing := range record.Ingredients {
		detail.Ingredients[i] = IngredientOutput{Name: ing.Name, Safety: ing.Safety.String()}
		if ing.MatchedWith != nil {
			detail.Ingredients[i].MatchedWith = *ing.MatchedWith
		}
	}

	return jsonResource(req.Params.URI, detail)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractScanID extracts the scan ID from a URI like ingrecheck://scans/{scanId}.
func extractScanID(uri string) string {
	const prefix = uriScheme + "scans/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
