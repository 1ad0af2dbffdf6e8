package domain

import "time"

// HistoryKind separates conversion history from generated content history.
type HistoryKind string

const (
	HistoryConversion HistoryKind = "conversion"
	HistoryContent    HistoryKind = "content"
)

// HistoryEntry is one remembered request. Conversion entries carry Input,
// SourceRadix and Result; content entries carry Input, Platform, ContentType
// and Content.
type HistoryEntry struct {
	ID          string            `json:"id"`
	Kind        HistoryKind       `json:"kind"`
	Input       string            `json:"input"`
	SourceRadix Radix             `json:"sourceRadix,omitempty"`
	Result      *ConversionResult `json:"result,omitempty"`
	Platform    Platform          `json:"platform,omitempty"`
	ContentType ContentType       `json:"contentType,omitempty"`
	Content     string            `json:"content,omitempty"`
	Model       string            `json:"model,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// HistoryQuery filters history reads. An empty Kind matches every kind and a
// non-positive Limit means no limit.
type HistoryQuery struct {
	Kind   HistoryKind
	Limit  int
	Search string
}

// CacheEntry stores a generated response.
type CacheEntry struct {
	Key       string    `json:"key"`
	Response  string    `json:"response"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}
