// Package contacts loads external contact records for a matching run. Lists
// are supplied wholesale per run; there is no incremental contract.
package contacts

import (
	"context"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// Source produces a complete contact list.
type Source interface {
	Load(ctx context.Context) ([]entity.Contact, error)
}

// header column names accepted in CSV and XLSX uploads, case-insensitive
const (
	colAccount = "account_id"
	colName    = "name"
	colEmail   = "email"
)

// columnIndexes resolves the header row into column positions. account_id is
// required; name and email return -1 when absent.
func columnIndexes(header []string) (account, name, email int, err error) {
	account, name, email = -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case colAccount, "account", "account id":
			account = i
		case colName, "customer", "customer_name", "customer name":
			name = i
		case colEmail, "email_address", "email address":
			email = i
		}
	}
	if account == -1 {
		return 0, 0, 0, fmt.Errorf("header has no account_id column: %v", header)
	}
	return account, name, email, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// recordFromRow builds one contact from a data row; rows without an account
// id are skipped by callers.
func recordFromRow(row []string, account, name, email int) entity.Contact {
	return entity.Contact{
		AccountID: cell(row, account),
		Name:      cell(row, name),
		Email:     cell(row, email),
	}
}
