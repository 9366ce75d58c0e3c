package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

func TestMatchReportXLSX(t *testing.T) {
	result := entity.MatchResult{
		Matched: []entity.MatchPair{
			{
				Artifact: entity.Artifact{FileName: "A1_Alice.pdf", AccountID: "A1", PageIndex: 0},
				Contact:  entity.Contact{AccountID: "A1", Name: "Alice", Email: "a@x.com"},
			},
		},
		Unmatched: []entity.MatchPair{
			{
				Artifact: entity.Artifact{FileName: "B2_Bob.pdf", AccountID: "B2", Customer: "Bob", PageIndex: 3},
				Contact:  entity.Contact{AccountID: "B2", Name: "Bob"},
			},
		},
		Stats: entity.MatchStats{Total: 2, Matched: 1, Unmatched: 1},
	}

	data, err := NewService(nil).MatchReportXLSX(result)
	if err != nil {
		t.Fatalf("MatchReportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	mustCell := func(sheet, cell, want string) {
		t.Helper()
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", sheet, cell, err)
		}
		if got != want {
			t.Errorf("%s!%s = %q, want %q", sheet, cell, got, want)
		}
	}

	mustCell("Matched", "A1", "File")
	mustCell("Matched", "A2", "A1_Alice.pdf")
	mustCell("Matched", "D2", "a@x.com")
	mustCell("Matched", "E2", "1") // 1-based page number
	mustCell("Matched", "H1", "2") // total
	mustCell("Unmatched", "A2", "B2_Bob.pdf")
	mustCell("Unmatched", "C2", "Bob")
	mustCell("Unmatched", "D2", "4")
}
