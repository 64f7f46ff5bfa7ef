package flatfiles

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/dariosoltani/FlatFiles/i18n"
	"github.com/dariosoltani/FlatFiles/internal/scan"
)

// SeparatedReader is the delimited counterpart of FixedLengthReader: the same
// forward-only cursor, filter stages, and sticky error policy, with the
// quote-aware split taking the place of windowing. Not safe for concurrent
// use.
type SeparatedReader struct {
	scanner *scan.DelimitedScanner
	schema  *SeparatedSchema
	opts    SeparatedOptions

	state      readerState
	headerDone bool

	values    []any
	hasValues bool

	physicalCount int64
	logicalCount  int64
}

// NewSeparatedReader builds a reader over r using schema. The trailing
// options value, if any, is snapshotted at construction.
func NewSeparatedReader(r io.Reader, schema *SeparatedSchema, opts ...SeparatedOptions) (*SeparatedReader, error) {
	if r == nil {
		return nil, ErrNilSource
	}
	if schema == nil {
		return nil, ErrNilSchema
	}
	opt := lastOption(opts)
	return &SeparatedReader{
		scanner: scan.NewDelimitedScanner(r, opt.delimiter(), opt.quote()),
		schema:  schema,
		opts:    opt,
	}, nil
}

// Schema returns the schema the reader was built with.
func (r *SeparatedReader) Schema() *SeparatedSchema { return r.schema }

// PhysicalRecordCount is the number of records consumed from the source,
// including headers, filtered records, and records that faulted.
func (r *SeparatedReader) PhysicalRecordCount() int64 { return r.physicalCount }

// LogicalRecordCount is the number of records successfully yielded.
func (r *SeparatedReader) LogicalRecordCount() int64 { return r.logicalCount }

type separatedFetch func() (raw string, fields []string, ok bool, err error)

func (r *SeparatedReader) blockingFetch() (string, []string, bool, error) {
	end, err := r.scanner.EndOfStream()
	if err != nil {
		return "", nil, false, err
	}
	if end {
		return "", nil, false, nil
	}
	raw, fields, err := r.scanner.ReadRecord()
	if err != nil {
		return "", nil, false, r.wrapScanError(err)
	}
	r.physicalCount++
	return raw, fields, true, nil
}

func (r *SeparatedReader) contextFetch(ctx context.Context) separatedFetch {
	return func() (string, []string, bool, error) {
		end, err := r.scanner.EndOfStreamContext(ctx)
		if err != nil {
			return "", nil, false, err
		}
		if end {
			return "", nil, false, nil
		}
		raw, fields, err := r.scanner.ReadRecordContext(ctx)
		if err != nil {
			return "", nil, false, r.wrapScanError(err)
		}
		r.physicalCount++
		return raw, fields, true, nil
	}
}

// wrapScanError maps quote faults onto the issue model. Malformed quoting
// leaves the record boundary in doubt, so these faults never reach the error
// handler; the reader poisons unconditionally.
func (r *SeparatedReader) wrapScanError(err error) error {
	code := ""
	switch {
	case errors.Is(err, scan.ErrUnterminatedQuote):
		code = CodeUnterminatedQuote
	case errors.Is(err, scan.ErrBareQuote):
		code = CodeBareQuote
	default:
		return err
	}
	return &RecordError{
		RecordNumber: r.physicalCount + 1,
		Issues:       Issues{{Code: code, Message: i18n.T(code, nil), Cause: err}},
	}
}

// Read advances to the next logical record. It reports true when a record was
// parsed and is available through Values, false when the source is exhausted.
func (r *SeparatedReader) Read() (bool, error) {
	return r.read(r.blockingFetch)
}

// ReadContext behaves exactly like Read; ctx is consulted only at the fetch.
func (r *SeparatedReader) ReadContext(ctx context.Context) (bool, error) {
	return r.read(r.contextFetch(ctx))
}

func (r *SeparatedReader) read(fetch separatedFetch) (bool, error) {
	switch r.state {
	case stateErrored:
		return false, ErrErrored
	case stateExhausted:
		return false, nil
	}
	if err := r.consumeHeader(fetch); err != nil {
		r.state = stateErrored
		return false, err
	}
	for {
		fields, ok, err := r.fetchFiltered(fetch)
		if err != nil {
			r.state = stateErrored
			return false, err
		}
		if !ok {
			r.state = stateExhausted
			return false, nil
		}

		if len(fields) != r.schema.PhysicalCount() {
			err := fieldCountError(r.physicalCount, len(fields), r.schema.PhysicalCount())
			if r.suppress(err) {
				continue
			}
			r.state = stateErrored
			return false, err
		}

		if r.opts.PartitionedFilter != nil && r.opts.PartitionedFilter(fields) {
			continue
		}

		rc := &RecordContext{
			PhysicalRecordNumber: r.physicalCount,
			LogicalRecordNumber:  r.logicalCount + 1,
		}
		values, err := r.schema.ParseValues(rc, fields)
		if err != nil {
			if re, ok := AsRecordError(err); ok && r.suppress(re) {
				continue
			}
			r.state = stateErrored
			return false, err
		}

		r.logicalCount++
		r.values = values
		r.hasValues = true
		return true, nil
	}
}

// Skip advances the physical cursor by exactly one record with the same
// header and poison handling as Read. The stored values of the last
// successful Read stay retrievable.
func (r *SeparatedReader) Skip() (bool, error) {
	return r.skipOne(r.blockingFetch)
}

// SkipContext behaves exactly like Skip; ctx is consulted only at the fetch.
func (r *SeparatedReader) SkipContext(ctx context.Context) (bool, error) {
	return r.skipOne(r.contextFetch(ctx))
}

func (r *SeparatedReader) skipOne(fetch separatedFetch) (bool, error) {
	switch r.state {
	case stateErrored:
		return false, ErrErrored
	case stateExhausted:
		return false, nil
	}
	if err := r.consumeHeader(fetch); err != nil {
		r.state = stateErrored
		return false, err
	}
	_, _, ok, err := fetch()
	if err != nil {
		r.state = stateErrored
		return false, err
	}
	if !ok {
		r.state = stateExhausted
		return false, nil
	}
	return true, nil
}

// Values returns a defensive copy of the last successfully parsed record.
func (r *SeparatedReader) Values() ([]any, error) {
	switch r.state {
	case stateErrored:
		return nil, ErrErrored
	case stateExhausted:
		return nil, ErrExhausted
	}
	if !r.hasValues {
		return nil, ErrNoCurrentRecord
	}
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out, nil
}

func (r *SeparatedReader) consumeHeader(fetch separatedFetch) error {
	if r.headerDone {
		return nil
	}
	r.headerDone = true
	if !r.opts.IsFirstRecordHeader {
		return nil
	}
	_, _, _, err := fetch()
	return err
}

func (r *SeparatedReader) fetchFiltered(fetch separatedFetch) ([]string, bool, error) {
	for {
		raw, fields, ok, err := fetch()
		if err != nil || !ok {
			return nil, false, err
		}
		if r.opts.UnpartitionedFilter != nil && r.opts.UnpartitionedFilter(raw) {
			continue
		}
		return fields, true, nil
	}
}

func (r *SeparatedReader) suppress(err *RecordError) bool {
	return r.opts.ErrorHandler != nil && r.opts.ErrorHandler(err)
}

func fieldCountError(recordNumber int64, got, want int) *RecordError {
	return &RecordError{
		RecordNumber: recordNumber,
		Issues: Issues{{
			Code:    CodeFieldCountMismatch,
			Message: i18n.T(CodeFieldCountMismatch, nil),
			Params: map[string]string{
				"expected": strconv.Itoa(want),
				"got":      strconv.Itoa(got),
			},
		}},
	}
}
