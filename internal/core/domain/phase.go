package domain

// TimestampLayout stamps catalog file names down to the second, so
// back to back runs never overwrite each other.
const TimestampLayout = "20060102_150405"

// Phase labels under which harvest catalogs are written. The label is
// part of the catalog file name, so it stays stable across releases.
const (
	// PhaseDescriptions searches repository descriptions per window.
	PhaseDescriptions = "repo_descriptions"

	// PhaseCodeKeywords searches indexed code per keyword, once per
	// sort direction.
	PhaseCodeKeywords = "code_keywords"

	// PhaseCommits searches commit messages per keyword.
	PhaseCommits = "commit_messages"

	// PhaseIssues searches issues and pull requests per keyword and
	// window.
	PhaseIssues = "issues_and_prs"

	// PhaseFingerprints searches for characteristic repository paths.
	PhaseFingerprints = "config_fingerprints"

	// PhaseAll labels the cumulative catalog written after every
	// phase has run.
	PhaseAll = "all_repositories"
)
