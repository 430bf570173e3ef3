package domain

import "sort"

// Scope is an identity-keyed aggregation of repositories. A harvest run
// maintains two: a batch scope flushed after each phase and a global
// scope flushed once at the end. Merge is the only mutation besides
// Clear; nothing removes an individual record.
//
// Scopes are not safe for concurrent use. The harvest pipeline is
// single-threaded; a parallel caller must serialise Merge itself.
type Scope struct {
	repos map[string]*Repository
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{repos: make(map[string]*Repository)}
}

// Merge records a sighting of a repository. On first sighting the
// record is inserted with the tag as its sole provenance. On later
// sightings the tag is added (subject to the containment rule in
// AddFoundBy) and url and description are overwritten with the incoming
// values. Later queries win on metadata.
func (s *Scope) Merge(name, url, description, tag string) {
	if name == "" {
		return
	}
	if r, ok := s.repos[name]; ok {
		r.AddFoundBy(tag)
		r.URL = url
		r.Description = description
		return
	}
	s.repos[name] = &Repository{
		Name:        name,
		URL:         url,
		Description: description,
		FoundBy:     tag,
	}
}

// Get returns a copy of the record for name, if present.
func (s *Scope) Get(name string) (Repository, bool) {
	r, ok := s.repos[name]
	if !ok {
		return Repository{}, false
	}
	return *r, true
}

// Len reports the number of unique repositories in the scope.
func (s *Scope) Len() int {
	return len(s.repos)
}

// Clear resets the scope to empty. Used between harvest phases on the
// batch scope.
func (s *Scope) Clear() {
	s.repos = make(map[string]*Repository)
}

// Records returns a snapshot of all records sorted by provenance string,
// with name as the tiebreaker so output order is reproducible.
func (s *Scope) Records() []Repository {
	out := make([]Repository, 0, len(s.repos))
	for _, r := range s.repos {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FoundBy != out[j].FoundBy {
			return out[i].FoundBy < out[j].FoundBy
		}
		return out[i].Name < out[j].Name
	})
	return out
}
