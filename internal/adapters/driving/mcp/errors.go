// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants classify ingredient lists and browse saved scans.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
