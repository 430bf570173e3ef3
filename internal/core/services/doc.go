// Package services implements the core application logic.
//
// Services implement the driving ports and depend only on domain types
// and driven ports. The concrete search provider and catalog sinks are
// injected, so every service is testable with in-memory fakes.
//
// Services:
//   - Harvester: runs the phased search sweep and writes catalogs
//   - Curator: filters, merges, and enriches written catalogs
package services
