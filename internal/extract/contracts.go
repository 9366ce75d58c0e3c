package extract

import "context"

// PageSource is the external text-extraction and page-copy primitive the
// splitting engine drives. Page indices are 0-based.
type PageSource interface {
	// PageCount opens the document and returns its page count.
	PageCount(ctx context.Context, path string) (int, error)
	// PageText returns the plain text of one page.
	PageText(ctx context.Context, path string, page int) (string, error)
	// ExtractPage copies one page into a standalone single-page document
	// and returns its bytes.
	ExtractPage(ctx context.Context, path string, page int) ([]byte, error)
}
