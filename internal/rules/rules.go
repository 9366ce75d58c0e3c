// Package rules implements the pattern cascade used to identify the owning
// customer of a page: two ordered rule lists (account, name) evaluated
// first-match-wins, plus fallback heuristics for the name when only the
// account identifier was found.
package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one compiled extraction rule. Patterns are evaluated
// case-insensitively; rule order encodes precedence.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// CompileRule compiles pattern with case-insensitive matching.
func CompileRule(name, pattern string) (Rule, error) {
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", name, err)
	}
	return Rule{Name: name, re: re}, nil
}

// MustRule is CompileRule for the built-in rule set.
func MustRule(name, pattern string) Rule {
	r, err := CompileRule(name, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Match returns the rule's first non-empty capture group in text.
// A rule without capture groups yields its whole match.
func (r Rule) Match(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) == 1 {
		if s := strings.TrimSpace(m[0]); s != "" {
			return s, true
		}
		return "", false
	}
	for _, g := range m[1:] {
		if s := strings.TrimSpace(g); s != "" {
			return s, true
		}
	}
	return "", false
}

// FirstMatch evaluates rules in order and returns the first capture.
func FirstMatch(list []Rule, text string) (string, bool) {
	for _, r := range list {
		if v, ok := r.Match(text); ok {
			return v, true
		}
	}
	return "", false
}

// Set holds the two independent cascades.
type Set struct {
	Account []Rule
	Name    []Rule
}

// Extraction is the per-page identity result. Missing lists the fields still
// empty after the primary pass and fallback heuristics; a page with missing
// fields is a structured failure, not an error.
type Extraction struct {
	AccountID    string
	CustomerName string
	Missing      []string
}

func (e Extraction) OK() bool {
	return len(e.Missing) == 0
}

// Matcher evaluates a rule set against page text.
type Matcher struct {
	set Set
}

func NewMatcher(set Set) *Matcher {
	return &Matcher{set: set}
}

// Extract runs the account cascade and the name cascade independently, then
// the name fallback heuristics when an account was found without a name.
func (m *Matcher) Extract(text string) Extraction {
	account, _ := FirstMatch(m.set.Account, text)
	name, _ := FirstMatch(m.set.Name, text)

	if account != "" && name == "" {
		name = fallbackName(text, account)
	}

	var missing []string
	if account == "" {
		missing = append(missing, "account identifier")
	}
	if name == "" {
		missing = append(missing, "customer name")
	}
	return Extraction{AccountID: account, CustomerName: name, Missing: missing}
}
