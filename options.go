package flatfiles

// FixedLengthOptions configures a FixedLengthReader. A value copy is taken at
// reader construction, so mutating the caller's struct afterwards never
// affects an in-flight traversal.
type FixedLengthOptions struct {
	// IsFirstRecordHeader consumes one physical record before the first read.
	// The header counts toward PhysicalRecordCount but is never exposed.
	IsFirstRecordHeader bool

	// Alignment is the default alignment for windows that do not override it.
	// AlignDefault resolves to RightAligned.
	Alignment Alignment

	// FillCharacter is the default fill for windows that do not override it.
	// Zero resolves to ' '.
	FillCharacter rune

	// UnpartitionedFilter discards whole raw lines before windowing. Discarded
	// lines still count toward PhysicalRecordCount.
	UnpartitionedFilter func(record string) bool

	// PartitionedFilter discards records after windowing, based on the raw
	// per-column strings, before any conversion runs.
	PartitionedFilter func(fields []string) bool

	// ErrorHandler is the only in-band recovery channel for row-level faults.
	// Returning true marks the fault handled and the reader advances to the
	// next physical record; otherwise the fault propagates and the reader is
	// poisoned.
	ErrorHandler func(err *RecordError) bool
}

func (o FixedLengthOptions) effectiveAlignment(w Window) Alignment {
	if w.Alignment != AlignDefault {
		return w.Alignment
	}
	if o.Alignment != AlignDefault {
		return o.Alignment
	}
	return RightAligned
}

func (o FixedLengthOptions) effectiveFill(w Window) rune {
	if w.FillCharacter != 0 {
		return w.FillCharacter
	}
	if o.FillCharacter != 0 {
		return o.FillCharacter
	}
	return ' '
}

// SeparatedOptions configures a SeparatedReader. Snapshot semantics match
// FixedLengthOptions.
type SeparatedOptions struct {
	// IsFirstRecordHeader consumes one record before the first read.
	IsFirstRecordHeader bool

	// Delimiter separates fields. Zero resolves to ','.
	Delimiter rune

	// Quote wraps fields that contain the delimiter, quotes, or newlines.
	// Zero resolves to '"'.
	Quote rune

	// UnpartitionedFilter discards whole raw records before splitting.
	UnpartitionedFilter func(record string) bool

	// PartitionedFilter discards records after splitting, before conversion.
	PartitionedFilter func(fields []string) bool

	// ErrorHandler mirrors FixedLengthOptions.ErrorHandler.
	ErrorHandler func(err *RecordError) bool
}

func (o SeparatedOptions) delimiter() rune {
	if o.Delimiter != 0 {
		return o.Delimiter
	}
	return ','
}

func (o SeparatedOptions) quote() rune {
	if o.Quote != 0 {
		return o.Quote
	}
	return '"'
}

// lastOption returns the trailing option value, matching the variadic
// trailing-options convention used across the package.
func lastOption[T any](opts []T) T {
	var opt T
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
