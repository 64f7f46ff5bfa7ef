package flatfiles

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRecordTooShort     = "record_too_short"
	CodeConversionFailed   = "conversion_failed"
	CodeFieldCountMismatch = "field_count_mismatch"
	CodeUnterminatedQuote  = "unterminated_quote"
	CodeBareQuote          = "bare_quote"
)

// Protocol and configuration faults. These are raised immediately and never
// routed through the per-record error handler.
var (
	// ErrNilSource is returned when a reader is constructed without a source.
	ErrNilSource = errors.New("flatfiles: record source must not be nil")

	// ErrNilSchema is returned when a reader is constructed without a schema.
	ErrNilSchema = errors.New("flatfiles: schema must not be nil")

	// ErrErrored is returned by every operation once a reader has entered the
	// errored state. The state is permanent.
	ErrErrored = errors.New("flatfiles: reader has errored and cannot continue")

	// ErrExhausted is returned by Values after the source ran out of records.
	ErrExhausted = errors.New("flatfiles: no more records in the source")

	// ErrNoCurrentRecord is returned by Values before any record has been
	// successfully read.
	ErrNoCurrentRecord = errors.New("flatfiles: no record has been read")
)

// Issue represents a single record-level problem tied to one column or to the
// record as a whole (empty Column).
type Issue struct {
	Column  string // Column name; empty for whole-record issues.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"10","got":"6"})
	// for i18n and observability.
	Params map[string]string
}

// Issues is a collection of record-level problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Column != "" {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Column)
		} else {
			b.WriteString(it.Code)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// RecordError is the aggregate row-level fault for one physical record. It is
// the only error kind routed through the per-record error handler.
type RecordError struct {
	// RecordNumber is the 1-based physical record number the fault belongs to.
	RecordNumber int64
	Issues       Issues
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("flatfiles: record %d: %s", e.RecordNumber, e.Issues.Error())
}

// Unwrap exposes the underlying issues so errors.As can extract them.
func (e *RecordError) Unwrap() error { return e.Issues }

// AsRecordError extracts a *RecordError from an error using errors.As
// internally.
func AsRecordError(err error) (*RecordError, bool) {
	if err == nil {
		return nil, false
	}
	var re *RecordError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
