package domain

// Modality identifies the search surface a query runs against.
type Modality string

const (
	// ModalityCode searches indexed file contents for a quoted phrase.
	ModalityCode Modality = "code_search"
	// ModalityCommit searches commit messages for a quoted phrase.
	ModalityCommit Modality = "commit_search"
	// ModalityIssue searches issues and pull requests for a quoted
	// phrase within a creation window.
	ModalityIssue Modality = "issue_search"
	// ModalityDescription searches repository descriptions within a
	// creation window.
	ModalityDescription Modality = "repo_description"
	// ModalityFingerprint searches for a characteristic file path.
	ModalityFingerprint Modality = "config_search"
)

// Query is one immutable search instruction. A query is consumed by
// exactly one search invocation; reusing one issues the same search
// again.
type Query struct {
	// Modality selects the search surface.
	Modality Modality

	// Text is the raw search text: a keyword phrase for code, commit
	// and issue queries, the assistant name for description queries,
	// and a repository path for fingerprint queries. Quoting and
	// qualifiers are applied by the search adapter, not stored here.
	Text string

	// Sort and Order hint result ordering where the surface supports
	// it ("indexed" asc/desc for code, "stars" desc for descriptions).
	// Empty means the surface default.
	Sort  string
	Order string

	// Window restricts the query to repositories or items created
	// inside the interval. Zero means unwindowed.
	Window Window
}

// CodeQuery builds a code search for a keyword phrase with an explicit
// sort order.
func CodeQuery(keyword, sort, order string) Query {
	return Query{Modality: ModalityCode, Text: keyword, Sort: sort, Order: order}
}

// CommitQuery builds a commit message search for a keyword phrase.
func CommitQuery(keyword string) Query {
	return Query{Modality: ModalityCommit, Text: keyword}
}

// IssueQuery builds an issue and pull request search for a keyword
// phrase within a creation window.
func IssueQuery(keyword string, w Window) Query {
	return Query{Modality: ModalityIssue, Text: keyword, Window: w}
}

// DescriptionQuery builds a repository description search within a
// creation window, ordered by stars so the densest results surface
// before the result cap cuts off.
func DescriptionQuery(text string, w Window) Query {
	return Query{Modality: ModalityDescription, Text: text, Sort: "stars", Order: "desc", Window: w}
}

// FingerprintQuery builds a code search for a characteristic file path.
func FingerprintQuery(path string) Query {
	return Query{Modality: ModalityFingerprint, Text: path}
}

// Tag renders the provenance tag recorded against every repository this
// query surfaces. Tags are stable across runs so catalogs from
// different runs can be merged on them.
func (q Query) Tag() string {
	switch q.Modality {
	case ModalityCode:
		return string(ModalityCode) + ": \"" + q.Text + "\" (" + q.Sort + " " + q.Order + ")"
	case ModalityCommit:
		return string(ModalityCommit) + ": \"" + q.Text + "\""
	case ModalityIssue:
		return string(ModalityIssue) + ": \"" + q.Text + "\" (" + q.Window.String() + ")"
	case ModalityDescription:
		return string(ModalityDescription) + ": " + q.Text + " (" + q.Window.String() + ")"
	case ModalityFingerprint:
		return string(ModalityFingerprint) + ": path:" + q.Text
	}
	return string(q.Modality) + ": " + q.Text
}
