// Package file provides the CSV-backed catalog adapters.
//
// Adapters:
//   - Writer: timestamped catalog snapshots for harvest phases
//   - Store: catalog reading and raw table writes for post-processing
//
// Catalogs are plain CSV with the header "name,url,description,
// found_by". Post-processing outputs may carry extra columns; Store
// round-trips those untouched.
package file
