// Package domain defines the core business entities for repotrawl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: A discovered repository with provenance
//   - Scope: An identity-keyed aggregation of repositories
//   - Query: A single search instruction for one modality
//   - Window: A closed date interval for windowed queries
//   - Profile: The assistant under study and its derived search inputs
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
