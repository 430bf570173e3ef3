// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RepoSearcher: Runs one search query against the provider
//   - CatalogWriter: Persists harvested records under a phase label
//   - CatalogReader: Loads catalogs back for post-processing
//   - TableWriter: Persists post-processed tabular catalogs
//
// # Optional Interfaces
//
//   - RepoInspector: Per-repository statistics for catalog enrichment.
//     Only the stats command needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
