package rules

import (
	"strings"
	"testing"
)

func TestFirstMatchPrecedence(t *testing.T) {
	// the specific rule is listed first and must win even though the generic
	// catch-all also matches the same text
	specific := MustRule("specific", `statement\s+ref\s+([A-Z]{2}\d{6})`)
	generic := MustRule("generic", `\b([A-Z]{2}\d{6})\b`)

	text := "AA111111 filler statement ref BB222222"
	got, ok := FirstMatch([]Rule{specific, generic}, text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "BB222222" {
		t.Errorf("specific rule should win: got %q, want %q", got, "BB222222")
	}

	// reversed order flips the winner
	got, ok = FirstMatch([]Rule{generic, specific}, text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "AA111111" {
		t.Errorf("generic-first should capture first occurrence: got %q", got)
	}
}

func TestRuleCaseInsensitive(t *testing.T) {
	r := MustRule("labeled", `account\s*#\s*[:]\s*([A-Z]{2,10}\d{4,12})`)
	got, ok := r.Match("ACCOUNT # : fbnwstx123456")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if got != "fbnwstx123456" {
		t.Errorf("got %q", got)
	}
}

func TestRuleFirstNonEmptyGroup(t *testing.T) {
	r := MustRule("alt", `(?:id\s+(\d+)|ref\s+([A-Z]+))`)
	got, ok := r.Match("ref ABC")
	if !ok || got != "ABC" {
		t.Errorf("want second group %q, got %q ok=%t", "ABC", got, ok)
	}
}

func TestDefaultSetExtract(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		wantAccount string
		wantName    string
	}{
		{
			name:        "labeled account and holder",
			text:        "Account #: FBNWSTX123456\nAccount Holder: John Smith\nAmount due: $41.20",
			wantAccount: "FBNWSTX123456",
			wantName:    "John Smith",
		},
		{
			name:        "customer name label",
			text:        "Customer Name: Celia & Felipe Ramirez's\nAccount Number: FBNWSTX654321",
			wantAccount: "FBNWSTX654321",
			wantName:    "Celia & Felipe Ramirez's",
		},
		{
			name:        "billed to",
			text:        "Billed to: Ada Lovelace\nmember id: AB12345678",
			wantAccount: "AB12345678",
			wantName:    "Ada Lovelace",
		},
	}

	m := NewMatcher(DefaultSet())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Extract(tc.text)
			if !got.OK() {
				t.Fatalf("missing fields: %v", got.Missing)
			}
			if got.AccountID != tc.wantAccount {
				t.Errorf("account: got %q, want %q", got.AccountID, tc.wantAccount)
			}
			if got.CustomerName != tc.wantName {
				t.Errorf("name: got %q, want %q", got.CustomerName, tc.wantName)
			}
		})
	}
}

func TestFallbackHeuristicOrder(t *testing.T) {
	m := NewMatcher(DefaultSet())

	t.Run("name before account wins first", func(t *testing.T) {
		got := m.Extract("John Smith FBNWSTX123456\nDear Margaret Atwood")
		if !got.OK() {
			t.Fatalf("missing fields: %v", got.Missing)
		}
		if got.CustomerName != "John Smith" {
			t.Errorf("got %q, want %q", got.CustomerName, "John Smith")
		}
	})

	t.Run("role keyword when nothing precedes the account", func(t *testing.T) {
		got := m.Extract("ref: WXYZ100200300\nDear Margaret Atwood, your statement is enclosed")
		if !got.OK() {
			t.Fatalf("missing fields: %v", got.Missing)
		}
		if got.CustomerName != "Margaret Atwood" {
			t.Errorf("got %q, want %q", got.CustomerName, "Margaret Atwood")
		}
	})

	t.Run("generic capitalized token last", func(t *testing.T) {
		got := m.Extract("monthly summary period ending\nJane Doe Consulting\nref: WXYZ100200300")
		if !got.OK() {
			t.Fatalf("missing fields: %v", got.Missing)
		}
		if got.CustomerName != "Jane Doe Consulting" {
			t.Errorf("got %q, want %q", got.CustomerName, "Jane Doe Consulting")
		}
	})
}

func TestExtractMissingFields(t *testing.T) {
	m := NewMatcher(DefaultSet())

	got := m.Extract("no identifying information on this page at all")
	if got.OK() {
		t.Fatal("expected failure")
	}
	joined := strings.Join(got.Missing, " or ")
	if !strings.Contains(joined, "account identifier") || !strings.Contains(joined, "customer name") {
		t.Errorf("missing fields should name both: %v", got.Missing)
	}

	got = m.Extract("Account Holder: John Smith\nnothing that looks like an account id")
	if got.OK() {
		t.Fatal("expected failure")
	}
	if len(got.Missing) != 1 || got.Missing[0] != "account identifier" {
		t.Errorf("want only account identifier missing, got %v", got.Missing)
	}
}
