package flatfiles

import "fmt"

// FixedLengthSchema declares the ordered columns of a fixed-width format and
// the Window governing each physical column. Metadata columns carry no window.
//
// Metadata columns may appear at any position, including interleaved between
// physical columns: partitioning walks windows (physical columns only), and
// ParseValues consumes one raw field per physical column while computing
// metadata values from the record context.
type FixedLengthSchema struct {
	definitions []ColumnDefinition
	windows     []Window // parallel to the physical subset of definitions
	totalWidth  int
}

// NewFixedLengthSchema returns an empty schema ready for AddColumn calls.
func NewFixedLengthSchema() *FixedLengthSchema {
	return &FixedLengthSchema{}
}

// AddColumn appends a physical column with its window. It panics when the
// definition is nil, the definition is metadata, or the width is not positive;
// schema shape is fixed configuration and must be valid before any I/O.
func (s *FixedLengthSchema) AddColumn(def ColumnDefinition, w Window) *FixedLengthSchema {
	if def == nil {
		panic("flatfiles: column definition must not be nil")
	}
	if def.IsMetadata() {
		panic(fmt.Sprintf("flatfiles: column %q is metadata; use AddMetadata", def.Name()))
	}
	if w.Width < 1 {
		panic(fmt.Sprintf("flatfiles: window width for column %q must be positive", def.Name()))
	}
	s.definitions = append(s.definitions, def)
	s.windows = append(s.windows, w)
	s.totalWidth += w.Width
	return s
}

// AddMetadata appends a metadata column. It has no window and no on-disk
// representation.
func (s *FixedLengthSchema) AddMetadata(def ColumnDefinition) *FixedLengthSchema {
	if def == nil {
		panic("flatfiles: column definition must not be nil")
	}
	if !def.IsMetadata() {
		panic(fmt.Sprintf("flatfiles: column %q is not metadata; use AddColumn", def.Name()))
	}
	s.definitions = append(s.definitions, def)
	return s
}

// Definitions returns the declared columns in order, metadata included.
func (s *FixedLengthSchema) Definitions() []ColumnDefinition {
	out := make([]ColumnDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

// PhysicalCount returns the number of columns that appear on disk.
func (s *FixedLengthSchema) PhysicalCount() int { return len(s.windows) }

// TotalWidth is the sum of all window widths.
func (s *FixedLengthSchema) TotalWidth() int { return s.totalWidth }

// ParseValues converts one raw string per physical column into one typed
// value per declared column. Conversion is all-or-nothing: any column failure
// yields a single *RecordError for the record and no partial output.
func (s *FixedLengthSchema) ParseValues(rc *RecordContext, rawFields []string) ([]any, error) {
	return parseValues(s.definitions, rc, rawFields)
}

// SeparatedSchema declares the ordered columns of a delimited format. Widths
// and fill do not apply; field boundaries come from the delimiter.
type SeparatedSchema struct {
	definitions []ColumnDefinition
	physical    int
}

// NewSeparatedSchema returns an empty schema ready for AddColumn calls.
func NewSeparatedSchema() *SeparatedSchema {
	return &SeparatedSchema{}
}

// AddColumn appends a physical column. It panics when the definition is nil
// or is metadata.
func (s *SeparatedSchema) AddColumn(def ColumnDefinition) *SeparatedSchema {
	if def == nil {
		panic("flatfiles: column definition must not be nil")
	}
	if def.IsMetadata() {
		panic(fmt.Sprintf("flatfiles: column %q is metadata; use AddMetadata", def.Name()))
	}
	s.definitions = append(s.definitions, def)
	s.physical++
	return s
}

// AddMetadata appends a metadata column.
func (s *SeparatedSchema) AddMetadata(def ColumnDefinition) *SeparatedSchema {
	if def == nil {
		panic("flatfiles: column definition must not be nil")
	}
	if !def.IsMetadata() {
		panic(fmt.Sprintf("flatfiles: column %q is not metadata; use AddColumn", def.Name()))
	}
	s.definitions = append(s.definitions, def)
	return s
}

// Definitions returns the declared columns in order, metadata included.
func (s *SeparatedSchema) Definitions() []ColumnDefinition {
	out := make([]ColumnDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

// PhysicalCount returns the number of columns that appear on disk.
func (s *SeparatedSchema) PhysicalCount() int { return s.physical }

// ParseValues converts one raw string per physical column into one typed
// value per declared column, all-or-nothing.
func (s *SeparatedSchema) ParseValues(rc *RecordContext, rawFields []string) ([]any, error) {
	return parseValues(s.definitions, rc, rawFields)
}

func parseValues(defs []ColumnDefinition, rc *RecordContext, rawFields []string) ([]any, error) {
	values := make([]any, len(defs))
	var issues Issues
	next := 0
	for i, def := range defs {
		raw := ""
		if !def.IsMetadata() {
			raw = rawFields[next]
			next++
		}
		v, err := def.Parse(rc, raw)
		if err != nil {
			if iss, ok := err.(Issues); ok {
				issues = AppendIssues(issues, iss...)
			} else {
				issues = AppendIssues(issues, conversionIssue(def.Name(), raw, err))
			}
			continue
		}
		values[i] = v
	}
	if len(issues) > 0 {
		return nil, &RecordError{RecordNumber: rc.PhysicalRecordNumber, Issues: issues}
	}
	return values, nil
}
