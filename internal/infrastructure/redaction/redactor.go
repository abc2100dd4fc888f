// Package redaction finds and scrubs credentials embedded in options
// documents, such as tokens in export URLs or custom code.
package redaction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/reglet-dev/chartopts/internal/application/ports"
)

const redacted = "[REDACTED]"

// Redactor detects credentials in document strings. Safe for concurrent use.
type Redactor struct {
	patterns []*regexp.Regexp
	paths    []string

	// Gitleaks detector for secret detection (222+ patterns)
	// If nil, falls back to regex patterns only
	mu               sync.Mutex
	gitleaksDetector *detect.Detector
}

// Config holds the configuration for the Redactor.
type Config struct {
	// Custom patterns to detect (e.g. "INT-[A-Z0-9]{16}")
	Patterns []string `mapstructure:"patterns" yaml:"patterns,omitempty"`
	// Keys whose string values are always credentials (e.g. "password"
	// matches "exporting.password").
	Paths []string `mapstructure:"paths" yaml:"paths,omitempty"`
	// If true, disable gitleaks detector and use only the built-in and
	// custom patterns
	DisableGitleaks bool `mapstructure:"disable_gitleaks" yaml:"disable_gitleaks,omitempty"`
}

// New creates a new Redactor with the given configuration.
func New(cfg Config) (*Redactor, error) {
	r := &Redactor{
		paths:    cfg.Paths,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)+len(defaultPatterns)),
	}

	if !cfg.DisableGitleaks {
		detector, err := newGitleaksDetector()
		if err != nil {
			return nil, err
		}
		r.gitleaksDetector = detector
	}

	for _, p := range defaultPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile default pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile custom pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	return r, nil
}

// newGitleaksDetector creates a new gitleaks detector with default configuration.
func newGitleaksDetector() (*detect.Detector, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return detect.NewDetector(cfg), nil
}

// match is one credential found in a string.
type match struct {
	secret      string
	description string
}

// find returns the credentials in s, gitleaks findings first.
func (r *Redactor) find(s string) []match {
	if s == "" {
		return nil
	}

	var out []match
	if r.gitleaksDetector != nil {
		r.mu.Lock()
		findings := r.gitleaksDetector.Detect(detect.Fragment{Raw: s})
		r.mu.Unlock()
		for _, f := range findings {
			out = append(out, match{secret: f.Secret, description: f.Description})
		}
	}

	for _, re := range r.patterns {
		for _, m := range re.FindAllString(s, -1) {
			out = append(out, match{secret: m, description: "matches " + re.String()})
		}
	}
	return out
}

// ScrubString replaces every credential in input with [REDACTED].
func (r *Redactor) ScrubString(input string) string {
	result := input
	for _, m := range r.find(input) {
		if m.secret != "" {
			result = strings.ReplaceAll(result, m.secret, redacted)
		}
	}
	return result
}

// Redact returns a copy of doc with credentials scrubbed. doc is not modified.
func (r *Redactor) Redact(doc map[string]any) map[string]any {
	out, _ := r.redact(doc, "").(map[string]any)
	return out
}

func (r *Redactor) redact(v any, path string) any {
	switch x := v.(type) {
	case string:
		if r.isPathMatch(path) {
			return redacted
		}
		return r.ScrubString(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = r.redact(item, join(path, k))
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = r.redact(item, path+"["+strconv.Itoa(i)+"]")
		}
		return out
	}
	return v
}

// Scan reports the credentials in doc, ordered by path. Secret values are
// never part of the result.
func (r *Redactor) Scan(doc map[string]any) []ports.Leak {
	var out []ports.Leak
	r.scan(doc, "", &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (r *Redactor) scan(v any, path string, out *[]ports.Leak) {
	switch x := v.(type) {
	case string:
		if r.isPathMatch(path) && x != "" {
			*out = append(*out, ports.Leak{Path: path, Description: "credential key"})
			return
		}
		seen := map[string]bool{}
		for _, m := range r.find(x) {
			if seen[m.description] {
				continue
			}
			seen[m.description] = true
			*out = append(*out, ports.Leak{Path: path, Description: m.description})
		}
	case map[string]any:
		for k, item := range x {
			r.scan(item, join(path, k), out)
		}
	case []any:
		for i, item := range x {
			r.scan(item, path+"["+strconv.Itoa(i)+"]", out)
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// isPathMatch checks if the current path matches any of the configured paths.
//
// Matching rules:
// - Exact match: path="exporting.password" matches "exporting.password"
// - Suffix match: path="password" matches "*.password" (any.nested.password)
func (r *Redactor) isPathMatch(path string) bool {
	for _, p := range r.paths {
		if p == path || strings.HasSuffix(path, "."+p) {
			return true
		}
	}
	return false
}

// defaultPatterns contains regexes for common secrets.
var defaultPatterns = []string{
	// AWS Access Key ID
	`\b((?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16})\b`,
	// Generic Private Key Header
	`-----BEGIN [A-Z ]+ PRIVATE KEY-----`,
	// Github Token
	`gh[pousr]_[A-Za-z0-9_]{36,255}`,
	// Slack Token
	`xox[baprs]-([0-9a-zA-Z]{10,48})?`,
}
