package domain

import "strings"

// FoundBySeparator joins provenance tags inside a Repository's FoundBy field.
const FoundBySeparator = ", "

// NoDescription is recorded when a search surface carries no description
// for a repository. Issue-derived records are the exception and stay empty,
// since that surface never exposes one.
const NoDescription = "No description"

// Repository is a discovered repository candidate.
// Records are created on first sighting, updated in place on later
// sightings, and never removed during a run.
type Repository struct {
	// Name is the "owner/name" full name and the identity key.
	// Two hits with the same Name are the same repository.
	Name string

	// URL is the canonical web URL for the repository.
	URL string

	// Description is the repository description as reported by the
	// search surface that most recently saw it. May be empty.
	Description string

	// FoundBy is the provenance: every query that surfaced this
	// repository, rendered as tags joined by FoundBySeparator.
	// The joined string is also the storage form.
	FoundBy string
}

// AddFoundBy appends a provenance tag unless the joined provenance
// already contains it. The membership test is substring containment on
// the joined string, so a tag that happens to appear inside a longer
// tag is treated as already present.
func (r *Repository) AddFoundBy(tag string) {
	if tag == "" {
		return
	}
	if strings.Contains(r.FoundBy, tag) {
		return
	}
	if r.FoundBy == "" {
		r.FoundBy = tag
		return
	}
	r.FoundBy += FoundBySeparator + tag
}

// FoundByTags splits the joined provenance back into individual tags.
// Returns nil for a record with no provenance.
func (r *Repository) FoundByTags() []string {
	if r.FoundBy == "" {
		return nil
	}
	return strings.Split(r.FoundBy, FoundBySeparator)
}
