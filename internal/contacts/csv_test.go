package contacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	path := writeTempCSV(t, "account_id,name,email\nA1,Alice,a@x.com\nB2,Bob,b@x.com\n")
	got, err := NewCSVSource(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d contacts", len(got))
	}
	if got[0].AccountID != "A1" || got[0].Name != "Alice" || got[0].Email != "a@x.com" {
		t.Errorf("first contact = %+v", got[0])
	}
}

func TestCSVSourceHeaderOrderFree(t *testing.T) {
	path := writeTempCSV(t, "Email,Account ID,Name\nc@x.com,C3,Carol\n")
	got, err := NewCSVSource(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d contacts", len(got))
	}
	if got[0].AccountID != "C3" || got[0].Email != "c@x.com" || got[0].Name != "Carol" {
		t.Errorf("contact = %+v", got[0])
	}
}

func TestCSVSourceSkipsRowsWithoutAccount(t *testing.T) {
	path := writeTempCSV(t, "account_id,name,email\n,NoAccount,x@x.com\nD4,Dan,d@x.com\n")
	got, err := NewCSVSource(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].AccountID != "D4" {
		t.Errorf("contacts = %+v", got)
	}
}

func TestCSVSourceMissingAccountColumn(t *testing.T) {
	path := writeTempCSV(t, "name,email\nAlice,a@x.com\n")
	if _, err := NewCSVSource(path, nil).Load(context.Background()); err == nil {
		t.Fatal("expected header error")
	}
}

func TestCSVSourceRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "account_id,name,email\nE5,Eve\n")
	got, err := NewCSVSource(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Email != "" {
		t.Errorf("short row should read missing cells as empty: %+v", got)
	}
}
