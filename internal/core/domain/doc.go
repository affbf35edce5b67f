// Package domain defines the core business entities for ingrecheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Safety: The safety tier assigned to an ingredient
//   - ClassifiedIngredient: One extracted phrase and its verdict
//   - ReferenceDataset: The three curated canonical ingredient lists
//   - ScanRecord: A completed capture-classify-save cycle
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
