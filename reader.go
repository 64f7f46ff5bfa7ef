package flatfiles

import (
	"context"
	"strconv"

	"github.com/dariosoltani/FlatFiles/i18n"
)

// readerState is the reader lifecycle. Ready may move to Exhausted or
// Errored; both of those are terminal.
type readerState int

const (
	stateReady readerState = iota
	stateExhausted
	stateErrored
)

// FixedLengthReader is a stateful forward-only cursor over fixed-width
// records. It is not safe for concurrent use; callers must serialize all
// operations on one instance.
type FixedLengthReader struct {
	source RecordSource
	schema *FixedLengthSchema
	opts   FixedLengthOptions

	state      readerState
	headerDone bool

	values    []any
	hasValues bool

	physicalCount int64
	logicalCount  int64
}

// NewFixedLengthReader builds a reader over source using schema. The trailing
// options value, if any, is snapshotted; mutating the caller's struct
// afterwards has no effect on this reader.
func NewFixedLengthReader(source RecordSource, schema *FixedLengthSchema, opts ...FixedLengthOptions) (*FixedLengthReader, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if schema == nil {
		return nil, ErrNilSchema
	}
	return &FixedLengthReader{
		source: source,
		schema: schema,
		opts:   lastOption(opts),
	}, nil
}

// Schema returns the schema the reader was built with.
func (r *FixedLengthReader) Schema() *FixedLengthSchema { return r.schema }

// PhysicalRecordCount is the number of records consumed from the source,
// including headers, filtered lines, and lines that faulted.
func (r *FixedLengthReader) PhysicalRecordCount() int64 { return r.physicalCount }

// LogicalRecordCount is the number of records successfully yielded.
func (r *FixedLengthReader) LogicalRecordCount() int64 { return r.logicalCount }

// fetchFunc abstracts "fetch the next physical record". The blocking and
// context forms drive the same algorithm through it, so both behave
// identically by construction.
type fetchFunc func() (record string, ok bool, err error)

func (r *FixedLengthReader) blockingFetch() (string, bool, error) {
	end, err := r.source.EndOfStream()
	if err != nil {
		return "", false, err
	}
	if end {
		return "", false, nil
	}
	rec, err := r.source.ReadRecord()
	if err != nil {
		return "", false, err
	}
	r.physicalCount++
	return rec, true, nil
}

func (r *FixedLengthReader) contextFetch(ctx context.Context) fetchFunc {
	cs, ok := r.source.(ContextRecordSource)
	if !ok {
		return r.blockingFetch
	}
	return func() (string, bool, error) {
		end, err := cs.EndOfStreamContext(ctx)
		if err != nil {
			return "", false, err
		}
		if end {
			return "", false, nil
		}
		rec, err := cs.ReadRecordContext(ctx)
		if err != nil {
			return "", false, err
		}
		r.physicalCount++
		return rec, true, nil
	}
}

// Read advances to the next logical record. It reports true when a record was
// parsed and is available through Values, false when the source is exhausted.
func (r *FixedLengthReader) Read() (bool, error) {
	return r.read(r.blockingFetch)
}

// ReadContext behaves exactly like Read; ctx is consulted only at the
// physical-record fetch.
func (r *FixedLengthReader) ReadContext(ctx context.Context) (bool, error) {
	return r.read(r.contextFetch(ctx))
}

func (r *FixedLengthReader) read(fetch fetchFunc) (bool, error) {
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
		rec, ok, err := r.fetchFiltered(fetch)
		if err != nil {
			r.state = stateErrored
			return false, err
		}
		if !ok {
			r.state = stateExhausted
			return false, nil
		}

		runes := []rune(rec)
		if len(runes) < r.schema.TotalWidth() {
			err := tooShortError(r.physicalCount, len(runes), r.schema.TotalWidth())
			if r.suppress(err) {
				continue
			}
			r.state = stateErrored
			return false, err
		}

		fields := r.partition(runes)
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

// Skip advances the physical cursor by exactly one record, with the same
// header and poison handling as Read but no filtering, windowing, or
// conversion. The stored values of the last successful Read stay retrievable.
func (r *FixedLengthReader) Skip() (bool, error) {
	return r.skip(r.blockingFetch)
}

// SkipContext behaves exactly like Skip; ctx is consulted only at the fetch.
func (r *FixedLengthReader) SkipContext(ctx context.Context) (bool, error) {
	return r.skip(r.contextFetch(ctx))
}

func (r *FixedLengthReader) skip(fetch fetchFunc) (bool, error) {
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
	_, ok, err := fetch()
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

// Values returns a defensive copy of the last successfully parsed record. It
// fails once the reader is errored or exhausted, and before any success.
func (r *FixedLengthReader) Values() ([]any, error) {
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

// consumeHeader discards exactly one physical record on the first operation
// when the options ask for it. The header counts physically, never logically.
func (r *FixedLengthReader) consumeHeader(fetch fetchFunc) error {
	if r.headerDone {
		return nil
	}
	r.headerDone = true
	if !r.opts.IsFirstRecordHeader {
		return nil
	}
	_, _, err := fetch()
	return err
}

// fetchFiltered fetches records until one passes the unpartitioned filter.
// Discarded lines still count toward PhysicalRecordCount.
func (r *FixedLengthReader) fetchFiltered(fetch fetchFunc) (string, bool, error) {
	for {
		rec, ok, err := fetch()
		if err != nil || !ok {
			return "", false, err
		}
		if r.opts.UnpartitionedFilter != nil && r.opts.UnpartitionedFilter(rec) {
			continue
		}
		return rec, true, nil
	}
}

// partition slices the record into one raw string per physical column and
// trims each field's fill character on the edge its alignment dictates.
// Characters beyond TotalWidth are ignored.
func (r *FixedLengthReader) partition(runes []rune) []string {
	fields := make([]string, len(r.schema.windows))
	offset := 0
	for i, w := range r.schema.windows {
		field := runes[offset : offset+w.Width]
		offset += w.Width
		fields[i] = trimField(field, r.opts.effectiveAlignment(w), r.opts.effectiveFill(w))
	}
	return fields
}

// suppress runs the error policy for a row-level fault: true means a handler
// marked it handled and the read loop continues at the next physical record.
func (r *FixedLengthReader) suppress(err *RecordError) bool {
	return r.opts.ErrorHandler != nil && r.opts.ErrorHandler(err)
}

func tooShortError(recordNumber int64, got, want int) *RecordError {
	return &RecordError{
		RecordNumber: recordNumber,
		Issues: Issues{{
			Code:    CodeRecordTooShort,
			Message: i18n.T(CodeRecordTooShort, nil),
			Params: map[string]string{
				"expected": strconv.Itoa(want),
				"got":      strconv.Itoa(got),
			},
		}},
	}
}
