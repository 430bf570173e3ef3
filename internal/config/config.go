// Package config loads runtime configuration from the environment and
// an optional TOML profile file. Everything is read once at startup;
// there is no reload.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/provenlabs/repotrawl/internal/core/domain"
)

// envPrefix namespaces every variable except GITHUB_TOKEN, which keeps
// its conventional unprefixed name.
const envPrefix = "REPOTRAWL_"

// Catalog sink names accepted by REPOTRAWL_CATALOG.
const (
	CatalogCSV    = "csv"
	CatalogSQLite = "sqlite"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Token is the GitHub bearer token from GITHUB_TOKEN. May be
	// empty at load time; commands that talk to the API check it via
	// RequireToken before doing anything else.
	Token string

	// OutputDir is where catalogs are written.
	OutputDir string

	// Catalog selects the catalog sink, CatalogCSV or CatalogSQLite.
	Catalog string

	// MaxResults caps accumulated items per query, mirroring the
	// search API's hard result limit.
	MaxResults int

	// PerPage is the page size for search requests, at most 100.
	PerPage int

	// PageDelay is the fixed delay between consecutive page fetches.
	PageDelay time.Duration

	// SafetyMargin pads the wait when stalling on an exhausted quota.
	SafetyMargin time.Duration

	// LogLevel and LogFormat configure the root logger.
	LogLevel  string
	LogFormat string

	// ProfilePath is the TOML profile file path, when one was given.
	ProfilePath string

	// Profile is the assistant profile: defaults derived from the
	// assistant name, overridden by the profile file where set.
	Profile domain.Profile
}

// Load resolves configuration from the environment and the optional
// profile file. The assistant name must come from REPOTRAWL_ASSISTANT
// or the profile file; when both are set the environment wins.
func Load() (*Config, error) {
	cfg := &Config{
		Token:        strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		OutputDir:    envString("OUTPUT_DIR", "."),
		Catalog:      strings.ToLower(envString("CATALOG", CatalogCSV)),
		MaxResults:   envInt("MAX_RESULTS", 1000),
		PerPage:      envInt("PER_PAGE", 100),
		PageDelay:    envDuration("PAGE_DELAY", time.Second),
		SafetyMargin: envDuration("SAFETY_MARGIN", 10*time.Second),
		LogLevel:     envString("LOG_LEVEL", "info"),
		LogFormat:    envString("LOG_FORMAT", "console"),
		ProfilePath:  envString("PROFILE", ""),
	}

	if cfg.Catalog != CatalogCSV && cfg.Catalog != CatalogSQLite {
		return nil, fmt.Errorf("config: unknown catalog sink %q", cfg.Catalog)
	}
	if cfg.PerPage < 1 || cfg.PerPage > 100 {
		cfg.PerPage = 100
	}
	if cfg.MaxResults < 1 {
		cfg.MaxResults = 1000
	}

	pf, err := loadProfileFile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}

	assistant := envString("ASSISTANT", "")
	if assistant == "" && pf != nil {
		assistant = strings.TrimSpace(pf.Assistant)
	}
	if assistant == "" {
		return nil, domain.ErrNoAssistant
	}

	profile := domain.NewProfile(assistant)
	if pf != nil {
		if err := pf.apply(&profile); err != nil {
			return nil, fmt.Errorf("config: profile %s: %w", cfg.ProfilePath, err)
		}
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Profile = profile

	return cfg, nil
}

// RequireToken rejects configurations without a GitHub token. There is
// no anonymous mode; commands that reach the API call this first.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("%w: set GITHUB_TOKEN in the environment", domain.ErrMissingToken)
	}
	return nil
}

// profileFile is the TOML profile schema. Every field is optional;
// unset fields keep their assistant-derived defaults. Dates use the
// 2006-01-02 layout.
type profileFile struct {
	Assistant    string   `toml:"assistant"`
	Keywords     []string `toml:"keywords"`
	Fingerprints []string `toml:"fingerprints"`
	IncludeTerms []string `toml:"include_terms"`
	ExcludeTerms []string `toml:"exclude_terms"`
	WindowStart  string   `toml:"window_start"`
	WindowEnd    string   `toml:"window_end"`
	FineAfter    string   `toml:"fine_after"`
}

// loadProfileFile reads and parses the profile at path. An empty path
// means no profile; a missing or malformed file at an explicit path is
// an error.
func loadProfileFile(path string) (*profileFile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profile: %w", err)
	}
	var pf profileFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("config: parse profile %s: %w", path, err)
	}
	return &pf, nil
}

// apply overlays the file's set fields onto an assistant-derived
// profile.
func (pf *profileFile) apply(p *domain.Profile) error {
	if len(pf.Keywords) > 0 {
		p.Keywords = pf.Keywords
	}
	if len(pf.Fingerprints) > 0 {
		p.Fingerprints = pf.Fingerprints
	}
	if len(pf.IncludeTerms) > 0 {
		p.IncludeTerms = pf.IncludeTerms
	}
	if len(pf.ExcludeTerms) > 0 {
		p.ExcludeTerms = pf.ExcludeTerms
	}
	var err error
	if p.WindowStart, err = overlayDate(pf.WindowStart, p.WindowStart); err != nil {
		return fmt.Errorf("window_start: %w", err)
	}
	if p.WindowEnd, err = overlayDate(pf.WindowEnd, p.WindowEnd); err != nil {
		return fmt.Errorf("window_end: %w", err)
	}
	if p.FineAfter, err = overlayDate(pf.FineAfter, p.FineAfter); err != nil {
		return fmt.Errorf("fine_after: %w", err)
	}
	return nil
}

func overlayDate(s string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return time.Parse(domain.DateLayout, strings.TrimSpace(s))
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}
