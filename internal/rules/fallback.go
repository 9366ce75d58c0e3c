package rules

import (
	"regexp"
	"strings"
)

// Fallback heuristics for the customer name, used only when the account
// cascade matched but the name cascade did not. Evaluated in order, first
// hit wins. Unlike the cascades these are capitalization-sensitive: a
// name-shaped token is two or three capitalized words.

var (
	// name-shaped token ending right before the account identifier
	beforeAccountRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}(?:'s)?)[\s:,.-]*$`)

	// name-shaped token following a role keyword
	roleKeywordRe = regexp.MustCompile(`(?i:dear|customer|account\s+holder|attn|attention)[:,]?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}(?:'s)?)`)

	// any generic two-or-three-capitalized-word token
	genericNameRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}(?:'s)?\b`)
)

// window of text considered "immediately before" the account identifier
const beforeAccountWindow = 64

func fallbackName(text, account string) string {
	if name := nameBeforeAccount(text, account); name != "" {
		return name
	}
	if m := roleKeywordRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := genericNameRe.FindString(text); m != "" {
		return m
	}
	return ""
}

func nameBeforeAccount(text, account string) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(account))
	if idx <= 0 {
		return ""
	}
	prefix := text[:idx]
	if len(prefix) > beforeAccountWindow {
		prefix = prefix[len(prefix)-beforeAccountWindow:]
	}
	// a window cut mid-word must not fabricate a capitalized token
	if i := strings.IndexAny(prefix, " \t\n"); i >= 0 && len(prefix) == beforeAccountWindow {
		prefix = prefix[i:]
	}
	if m := beforeAccountRe.FindStringSubmatch(prefix); m != nil {
		return m[1]
	}
	return ""
}
