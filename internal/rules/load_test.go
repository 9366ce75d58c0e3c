package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestLoadSet(t *testing.T) {
	path := writeTempRules(t, `{
		"account": [
			{"name": "invoice-ref", "pattern": "invoice\\s+ref\\s*[:]\\s*([A-Z]{2}\\d{6})"},
			{"name": "bare", "pattern": "\\b([A-Z]{2}\\d{6})\\b"}
		],
		"name": [
			{"name": "for", "pattern": "prepared\\s+for\\s*[:]\\s*([A-Za-z ]+?)\\s*(?:\\n|$)"}
		]
	}`)

	set, err := LoadSet(path)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if len(set.Account) != 2 || len(set.Name) != 1 {
		t.Fatalf("cascade sizes: account=%d name=%d", len(set.Account), len(set.Name))
	}

	// file order is precedence order
	got := NewMatcher(set).Extract("AA111111 noise invoice ref: BB222222\nprepared for: Jane Doe")
	if !got.OK() {
		t.Fatalf("missing: %v", got.Missing)
	}
	if got.AccountID != "BB222222" {
		t.Errorf("account = %q, want the specific rule's capture", got.AccountID)
	}
	if got.CustomerName != "Jane Doe" {
		t.Errorf("name = %q", got.CustomerName)
	}
}

func TestLoadSetRejectsBadShape(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing name cascade", `{"account": [{"name": "a", "pattern": "x"}]}`},
		{"empty cascade", `{"account": [], "name": [{"name": "n", "pattern": "y"}]}`},
		{"extra field", `{"account": [{"name": "a", "pattern": "x", "flags": "g"}], "name": [{"name": "n", "pattern": "y"}]}`},
		{"not json", `account: []`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadSet(writeTempRules(t, tc.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSetRejectsBadPattern(t *testing.T) {
	path := writeTempRules(t, `{
		"account": [{"name": "broken", "pattern": "(["}],
		"name": [{"name": "n", "pattern": "y"}]
	}`)
	if _, err := LoadSet(path); err == nil {
		t.Error("expected compile error")
	}
}

func TestLoadSetMissingFile(t *testing.T) {
	if _, err := LoadSet(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected read error")
	}
}
