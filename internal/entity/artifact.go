package entity

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is one single-page extracted document produced by a splitting run.
// It is owned by the batch that produced it until the batch is evicted.
type Artifact struct {
	ID          uuid.UUID `json:"id"`
	AccountID   string    `json:"account_id"`
	Customer    string    `json:"customer"` // raw captured form
	FileName    string    `json:"file_name"`
	PageIndex   int       `json:"page_index"` // 0-based, stable within the source document
	Content     []byte    `json:"-"`
	ContentSize int       `json:"content_size"`
}

// Batch is a named, time-ordered group of artifacts from one splitting run.
// Artifact order is insertion order, which equals page order.
type Batch struct {
	ID        string     `json:"id"`
	Artifacts []Artifact `json:"artifacts"`
	CreatedAt time.Time  `json:"created_at"`
}

// UsageSnapshot summarizes current store contents. Derived on demand,
// never cached.
type UsageSnapshot struct {
	FileCount  int       `json:"file_count"`
	TotalBytes int64     `json:"total_bytes"`
	HumanSize  string    `json:"human_size"`
	ComputedAt time.Time `json:"computed_at"`
}

// BatchInfo summarizes one live batch.
type BatchInfo struct {
	ID        string    `json:"id"`
	Count     int       `json:"count"`
	SizeLabel string    `json:"size_label"`
	CreatedAt time.Time `json:"created_at"`
}
