package splitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/joseph-ayodele/statement-splitter/constants"
	"github.com/joseph-ayodele/statement-splitter/internal/rules"
)

type fakePage struct {
	text    string
	textErr error
	copyErr error
}

// fakeSource is an in-memory PageSource; each page's "payload" is its text.
type fakeSource struct {
	pages   []fakePage
	openErr error
}

func (f *fakeSource) PageCount(_ context.Context, _ string) (int, error) {
	if f.openErr != nil {
		return 0, f.openErr
	}
	return len(f.pages), nil
}

func (f *fakeSource) PageText(_ context.Context, _ string, page int) (string, error) {
	p := f.pages[page]
	if p.textErr != nil {
		return "", p.textErr
	}
	return p.text, nil
}

func (f *fakeSource) ExtractPage(_ context.Context, _ string, page int) ([]byte, error) {
	p := f.pages[page]
	if p.copyErr != nil {
		return nil, p.copyErr
	}
	return []byte(p.text), nil
}

func pageText(account, holder string) string {
	return fmt.Sprintf("Account #: %s\nAccount Holder: %s\nAmount due: $10.00", account, holder)
}

func newTestEngine(t *testing.T, src *fakeSource) *Engine {
	t.Helper()
	return NewEngine(src, rules.DefaultSet(), nil)
}

func TestSplitPartialFailure(t *testing.T) {
	src := &fakeSource{pages: []fakePage{
		{text: pageText("FBNWSTX111111", "John Smith")},
		{text: "nothing identifiable on this page"},
		{text: pageText("FBNWSTX222222", "Ada Lovelace")},
	}}
	e := newTestEngine(t, src)

	var progress []int
	res, err := e.Split(context.Background(), "in.pdf", Options{
		Period:     "May 2025",
		OnProgress: func(p int) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if res.Status != constants.RunStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", res.Status)
	}
	if len(res.Artifacts)+len(res.Errors) != res.Pages {
		t.Errorf("postcondition violated: %d artifacts + %d errors != %d pages",
			len(res.Artifacts), len(res.Errors), res.Pages)
	}
	if len(res.Artifacts) != 2 || len(res.Errors) != 1 {
		t.Fatalf("got %d artifacts, %d errors", len(res.Artifacts), len(res.Errors))
	}
	if !strings.Contains(res.Errors[0], "page 2") {
		t.Errorf("error not tagged with page number: %q", res.Errors[0])
	}
	if got := res.Artifacts[0].FileName; got != "FBNWSTX111111_John_Smith_May_2025.pdf" {
		t.Errorf("filename = %q", got)
	}
	if res.Artifacts[1].PageIndex != 2 {
		t.Errorf("page index = %d, want 2", res.Artifacts[1].PageIndex)
	}
	if len(progress) == 0 || progress[len(progress)-1] != 100 {
		t.Errorf("progress must end at 100: %v", progress)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Errorf("progress not monotonic: %v", progress)
		}
	}
}

func TestSplitPageCopyFailure(t *testing.T) {
	src := &fakeSource{pages: []fakePage{
		{text: pageText("FBNWSTX111111", "John Smith"), copyErr: errors.New("damaged xref")},
	}}
	e := newTestEngine(t, src)

	res, err := e.Split(context.Background(), "in.pdf", Options{})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(res.Artifacts) != 0 || len(res.Errors) != 1 {
		t.Fatalf("got %d artifacts, %d errors", len(res.Artifacts), len(res.Errors))
	}
	if !strings.Contains(res.Errors[0], "damaged xref") {
		t.Errorf("copy error not surfaced: %q", res.Errors[0])
	}
}

func TestSplitWholeDocumentFailure(t *testing.T) {
	src := &fakeSource{openErr: errors.New("not a pdf")}
	e := newTestEngine(t, src)

	res, err := e.Split(context.Background(), "in.pdf", Options{})
	if err == nil {
		t.Fatal("expected whole-document error")
	}
	if res.Status != constants.RunStatusFailed {
		t.Errorf("status = %s, want FAILED", res.Status)
	}
	if len(res.Artifacts) != 0 {
		t.Errorf("no artifacts expected, got %d", len(res.Artifacts))
	}
}

func TestSplitCancelledBetweenPages(t *testing.T) {
	src := &fakeSource{pages: []fakePage{
		{text: pageText("FBNWSTX111111", "John Smith")},
		{text: pageText("FBNWSTX222222", "Ada Lovelace")},
		{text: pageText("FBNWSTX333333", "Mary Shelley")},
	}}
	e := newTestEngine(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	res, err := e.Split(ctx, "in.pdf", Options{
		OnProgress: func(p int) {
			// cancel once the first page is done; the loop must stop before
			// the second page starts
			cancel()
		},
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if res.Status != constants.RunStatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", res.Status)
	}
	if len(res.Artifacts) != 1 {
		t.Errorf("got %d artifacts, want the one completed page", len(res.Artifacts))
	}
}

func TestSplitFilenameCollision(t *testing.T) {
	same := pageText("FBNWSTX111111", "John Smith")
	src := &fakeSource{pages: []fakePage{{text: same}, {text: same}}}
	e := newTestEngine(t, src)

	res, err := e.Split(context.Background(), "in.pdf", Options{})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(res.Artifacts) != 2 {
		t.Fatalf("got %d artifacts", len(res.Artifacts))
	}
	if res.Artifacts[0].FileName != "FBNWSTX111111_John_Smith.pdf" {
		t.Errorf("first filename = %q", res.Artifacts[0].FileName)
	}
	if res.Artifacts[1].FileName != "FBNWSTX111111_John_Smith_p2.pdf" {
		t.Errorf("second filename = %q, want page-tagged", res.Artifacts[1].FileName)
	}
}

func TestSplitMaxPages(t *testing.T) {
	src := &fakeSource{pages: []fakePage{
		{text: pageText("FBNWSTX111111", "John Smith")},
		{text: pageText("FBNWSTX222222", "Ada Lovelace")},
	}}
	e := newTestEngine(t, src)
	e.SetMaxPages(1)

	res, err := e.Split(context.Background(), "in.pdf", Options{})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if res.Pages != 1 || len(res.Artifacts) != 1 {
		t.Errorf("pages = %d, artifacts = %d, want 1 and 1", res.Pages, len(res.Artifacts))
	}
}
