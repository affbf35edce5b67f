package mcp

import (
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Analysis classifies ingredient text.
	Analysis driving.AnalysisService

	// Scan exposes saved scans. Optional; without it the scan tool and
	// resources report an empty collection.
	Scan driving.ScanService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
