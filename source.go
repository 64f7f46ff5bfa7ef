package flatfiles

import (
	"context"
	"io"

	"github.com/dariosoltani/FlatFiles/internal/scan"
)

// RecordSource yields one physical record (line) at a time. Implementations
// only demarcate records and detect exhaustion: no filtering, no windowing,
// no conversion, no lookahead beyond one record, no reordering.
type RecordSource interface {
	// EndOfStream reports whether no further record is available.
	EndOfStream() (bool, error)
	// ReadRecord returns the next record. Behavior after exhaustion is
	// undefined; callers check EndOfStream first.
	ReadRecord() (string, error)
}

// ContextRecordSource is implemented by sources that can suspend at the fetch
// boundary. Both forms must produce identical results for identical input;
// the context is consulted at the fetch and nowhere else.
type ContextRecordSource interface {
	RecordSource
	EndOfStreamContext(ctx context.Context) (bool, error)
	ReadRecordContext(ctx context.Context) (string, error)
}

// NewLineSource wraps an io.Reader as a line-demarcated ContextRecordSource.
// Records end at LF or CRLF; the final record needs no terminator. The reader
// stays caller-owned and is never closed.
func NewLineSource(r io.Reader) ContextRecordSource {
	return scan.NewLineScanner(r)
}
