package flatfiles

import (
	"strconv"
	"strings"
	"time"

	"github.com/dariosoltani/FlatFiles/i18n"
)

// RecordContext carries the position of the record being converted. Metadata
// columns compute their values from it instead of from input.
type RecordContext struct {
	// PhysicalRecordNumber is the 1-based count of records consumed from the
	// source, including headers and filtered lines.
	PhysicalRecordNumber int64
	// LogicalRecordNumber is the 1-based number the current record will carry
	// once it is successfully yielded.
	LogicalRecordNumber int64
}

// ColumnDefinition declares one named, typed column. Metadata columns have no
// on-disk representation; their raw input is always the empty string.
type ColumnDefinition interface {
	Name() string
	IsMetadata() bool
	// Parse converts the raw field into the column's typed value.
	Parse(rc *RecordContext, raw string) (any, error)
}

func conversionIssue(name, raw string, cause error) Issue {
	return Issue{
		Column:  name,
		Code:    CodeConversionFailed,
		Message: i18n.T(CodeConversionFailed, nil),
		Cause:   cause,
		Params:  map[string]string{"value": raw},
	}
}

// ---- built-in columns ----

type stringColumn struct{ name string }

// StringColumn declares a column whose value is the raw field itself.
func StringColumn(name string) ColumnDefinition { return stringColumn{name: name} }

func (c stringColumn) Name() string     { return c.name }
func (c stringColumn) IsMetadata() bool { return false }
func (c stringColumn) Parse(rc *RecordContext, raw string) (any, error) {
	return raw, nil
}

type intColumn struct{ name string }

// IntColumn declares a base-10 integer column parsed as int64.
func IntColumn(name string) ColumnDefinition { return intColumn{name: name} }

func (c intColumn) Name() string     { return c.name }
func (c intColumn) IsMetadata() bool { return false }
func (c intColumn) Parse(rc *RecordContext, raw string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, Issues{conversionIssue(c.name, raw, err)}
	}
	return n, nil
}

type float64Column struct{ name string }

// Float64Column declares a decimal column parsed as float64.
func Float64Column(name string) ColumnDefinition { return float64Column{name: name} }

func (c float64Column) Name() string     { return c.name }
func (c float64Column) IsMetadata() bool { return false }
func (c float64Column) Parse(rc *RecordContext, raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, Issues{conversionIssue(c.name, raw, err)}
	}
	return f, nil
}

type boolColumn struct{ name string }

// BoolColumn declares a column parsed with strconv.ParseBool semantics.
func BoolColumn(name string) ColumnDefinition { return boolColumn{name: name} }

func (c boolColumn) Name() string     { return c.name }
func (c boolColumn) IsMetadata() bool { return false }
func (c boolColumn) Parse(rc *RecordContext, raw string) (any, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, Issues{conversionIssue(c.name, raw, err)}
	}
	return b, nil
}

type timeColumn struct {
	name   string
	layout string
}

// TimeColumn declares a column parsed as time.Time using the given layout.
func TimeColumn(name, layout string) ColumnDefinition {
	return timeColumn{name: name, layout: layout}
}

func (c timeColumn) Name() string     { return c.name }
func (c timeColumn) IsMetadata() bool { return false }
func (c timeColumn) Parse(rc *RecordContext, raw string) (any, error) {
	t, err := time.Parse(c.layout, strings.TrimSpace(raw))
	if err != nil {
		return nil, Issues{conversionIssue(c.name, raw, err)}
	}
	return t, nil
}

type recordNumberColumn struct {
	name     string
	physical bool
}

// RecordNumberColumn declares a metadata column whose value is the logical
// record number of the record being yielded.
func RecordNumberColumn(name string) ColumnDefinition {
	return recordNumberColumn{name: name}
}

// PhysicalRecordNumberColumn declares a metadata column whose value is the
// physical record number, counting headers and filtered lines.
func PhysicalRecordNumberColumn(name string) ColumnDefinition {
	return recordNumberColumn{name: name, physical: true}
}

func (c recordNumberColumn) Name() string     { return c.name }
func (c recordNumberColumn) IsMetadata() bool { return true }
func (c recordNumberColumn) Parse(rc *RecordContext, raw string) (any, error) {
	if c.physical {
		return rc.PhysicalRecordNumber, nil
	}
	return rc.LogicalRecordNumber, nil
}
