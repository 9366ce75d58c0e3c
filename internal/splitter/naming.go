package splitter

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeName converts a raw captured name into a filename-safe token.
//
// Joint names (containing an ampersand) collapse to one token: the joiner,
// all internal whitespace, and possessive apostrophes are stripped and the
// remaining letters concatenated, e.g. "Celia & Felipe Ramirez's" ->
// "CeliaFelipeRamirezs". Otherwise runs of whitespace become a single
// underscore and characters are preserved as captured.
func NormalizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "&") {
		s := strings.ReplaceAll(raw, "&", " ")
		s = strings.ReplaceAll(s, "'", "")
		s = strings.ReplaceAll(s, "’", "")
		return strings.Join(strings.Fields(s), "")
	}
	return whitespaceRe.ReplaceAllString(raw, "_")
}

// FileName derives the artifact filename. Pure function of its inputs:
// {account}_{normalizedName}[_{period}].pdf, with whitespace in the period
// label collapsed to underscores and the segment omitted when empty.
func FileName(accountID, normalizedName, period string) string {
	base := accountID + "_" + normalizedName
	if p := strings.TrimSpace(period); p != "" {
		base += "_" + whitespaceRe.ReplaceAllString(p, "_")
	}
	return base + ".pdf"
}
