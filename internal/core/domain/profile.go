package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default coverage for windowed searches. Monthly windows from the
// start of the range, half-month windows from DefaultFineAfter onward
// where result volume outgrows a full month.
var (
	DefaultWindowStart = Date(2023, time.July, 1)
	DefaultWindowEnd   = Date(2025, time.April, 30)
	DefaultFineAfter   = Date(2025, time.March, 1)
)

// keywordTemplates are the attribution phrases searched for in code,
// commit messages, and issues. %s is replaced by the assistant name.
var keywordTemplates = []string{
	"generated by %s",
	"edited using %s",
	"developed with %s",
	"powered by %s",
	"AI coding with %s",
	"%s suggestion",
	"applied %s edit",
	"auto refactor by %s",
	"refactored with %s",
	"%s-assisted change",
	"accept suggestion from %s",
	"used %s for this part",
	"Generated using %s",
	"Auto-generated with %s AI",
}

// includeTemplates seed the description filter: a row survives when its
// description contains at least one of these, case-insensitively. The
// CJK terms match the common phrasing of Chinese-language descriptions
// ("made", "implemented", "written", "generated", "created",
// "developed").
var includeTemplates = []string{
	"%s IDE", "%s AI",
	"using %s", "%s Agent", "use %s", "with %s", "by %s", "in %s", "through %s", "via %s",
	"claude", "sonnet 3.7", "deepseek",
	"制作", "实现", "编写", "生成", "创建", "开发",
	"built", "build",
	"基于%s", "通过%s", "借助%s", "用%l", "由%l",
}

// excludeTemplates drop rows whose description marks them as practice
// projects, tutorials, or false positives on the assistant name.
var excludeTemplates = []string{
	"test", "demo", "learn", "practice", "rule", "rules", "mouse", "pagination",
	"a %l", "重置", "无限试用", "3D %l", "your %l",
	"custom %l", "教程", "%l navigation", "%l move", "学习",
	"资源", "会员", "付费", "订阅", "example", "教学", "指南", "练习",
	"awesome", "示例", "movement", "keyboard", "custom", "position", "animation",
}

// Profile describes the assistant under study and every input derived
// from it: search keywords, path fingerprints, filter term lists, and
// the window coverage. A profile is built from defaults and then
// selectively overridden by configuration.
type Profile struct {
	// Assistant is the display name of the assistant, e.g. "Copilot".
	// Used verbatim in keyword phrases and description queries, and
	// lowercased in catalog file prefixes.
	Assistant string

	// Keywords are the phrases searched in code, commits, and issues.
	Keywords []string

	// Fingerprints are repository paths characteristic of the
	// assistant's tooling, searched as path qualifiers. Empty skips
	// the fingerprint phase.
	Fingerprints []string

	// IncludeTerms and ExcludeTerms drive catalog filtering. A row is
	// kept when its description contains an include term and no
	// exclude term, case-insensitively.
	IncludeTerms []string
	ExcludeTerms []string

	// WindowStart, WindowEnd, and FineAfter control the window
	// partitioner for the windowed search phases.
	WindowStart time.Time
	WindowEnd   time.Time
	FineAfter   time.Time
}

// NewProfile builds a profile for an assistant with every derived input
// at its default.
func NewProfile(assistant string) Profile {
	return Profile{
		Assistant:    assistant,
		Keywords:     DefaultKeywords(assistant),
		IncludeTerms: DefaultIncludeTerms(assistant),
		ExcludeTerms: DefaultExcludeTerms(assistant),
		WindowStart:  DefaultWindowStart,
		WindowEnd:    DefaultWindowEnd,
		FineAfter:    DefaultFineAfter,
	}
}

// Validate reports whether the profile can drive a harvest.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Assistant) == "" {
		return ErrNoAssistant
	}
	if len(p.Keywords) == 0 {
		return fmt.Errorf("profile for %q: %w", p.Assistant, ErrNoKeywords)
	}
	if p.WindowStart.After(p.WindowEnd) {
		return fmt.Errorf("profile for %q: %w", p.Assistant, ErrInvalidWindowRange)
	}
	return nil
}

// Windows partitions the profile's coverage range.
func (p Profile) Windows() []Window {
	return PartitionWindows(p.WindowStart, p.WindowEnd, p.FineAfter)
}

// Slug is the lowercased assistant name used in catalog file names.
func (p Profile) Slug() string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(p.Assistant), " ", "_"))
}

// DefaultKeywords expands the keyword templates for an assistant.
func DefaultKeywords(assistant string) []string {
	return expand(keywordTemplates, assistant)
}

// DefaultIncludeTerms expands the include filter templates for an
// assistant.
func DefaultIncludeTerms(assistant string) []string {
	return expand(includeTemplates, assistant)
}

// DefaultExcludeTerms expands the exclude filter templates for an
// assistant.
func DefaultExcludeTerms(assistant string) []string {
	return expand(excludeTemplates, assistant)
}

// expand substitutes the assistant name into templates: %s is the name
// verbatim, %l its lowercase form (used where descriptions mention the
// tool in running text).
func expand(templates []string, assistant string) []string {
	lower := strings.ToLower(assistant)
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		t = strings.ReplaceAll(t, "%s", assistant)
		t = strings.ReplaceAll(t, "%l", lower)
		out = append(out, t)
	}
	return out
}
