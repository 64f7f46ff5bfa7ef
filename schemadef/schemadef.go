// Package schemadef builds runtime schemas from declarative JSON or YAML
// documents, so column layouts can live in configuration instead of code.
package schemadef

import (
	"errors"
	"fmt"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	flatfiles "github.com/dariosoltani/FlatFiles"
)

// Format names accepted in a Document.
const (
	FormatFixed     = "fixed"
	FormatSeparated = "separated"
)

// Document is the wire form of a schema definition.
type Document struct {
	Format    string   `json:"format" yaml:"format"`
	Delimiter string   `json:"delimiter,omitempty" yaml:"delimiter,omitempty"` // separated only
	Quote     string   `json:"quote,omitempty" yaml:"quote,omitempty"`         // separated only
	Header    bool     `json:"header,omitempty" yaml:"header,omitempty"`
	Columns   []Column `json:"columns" yaml:"columns"`
}

// Column is one declared column. Width, Alignment, and Fill apply to fixed
// documents only; metadata columns ignore all three.
type Column struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"` // string|int|float|bool|time
	Layout    string `json:"layout,omitempty" yaml:"layout,omitempty"`
	Width     int    `json:"width,omitempty" yaml:"width,omitempty"`
	Alignment string `json:"alignment,omitempty" yaml:"alignment,omitempty"` // left|right
	Fill      string `json:"fill,omitempty" yaml:"fill,omitempty"`
	Metadata  bool   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ParseJSON decodes a JSON document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseYAML decodes a YAML document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	switch d.Format {
	case FormatFixed, FormatSeparated:
	default:
		return fmt.Errorf("schemadef: unknown format %q", d.Format)
	}
	if len(d.Columns) == 0 {
		return errors.New("schemadef: document declares no columns")
	}
	for _, c := range d.Columns {
		if c.Name == "" {
			return errors.New("schemadef: column without a name")
		}
		if _, err := definition(c); err != nil {
			return err
		}
		if d.Format == FormatFixed && !c.Metadata && c.Width < 1 {
			return fmt.Errorf("schemadef: column %q needs a positive width", c.Name)
		}
		if c.Fill != "" && utf8.RuneCountInString(c.Fill) != 1 {
			return fmt.Errorf("schemadef: column %q fill must be a single character", c.Name)
		}
		switch c.Alignment {
		case "", "left", "right":
		default:
			return fmt.Errorf("schemadef: column %q has unknown alignment %q", c.Name, c.Alignment)
		}
	}
	if d.Delimiter != "" && utf8.RuneCountInString(d.Delimiter) != 1 {
		return errors.New("schemadef: delimiter must be a single character")
	}
	if d.Quote != "" && utf8.RuneCountInString(d.Quote) != 1 {
		return errors.New("schemadef: quote must be a single character")
	}
	return nil
}

func definition(c Column) (flatfiles.ColumnDefinition, error) {
	if c.Metadata {
		switch c.Type {
		case "", "record_number":
			return flatfiles.RecordNumberColumn(c.Name), nil
		case "physical_record_number":
			return flatfiles.PhysicalRecordNumberColumn(c.Name), nil
		default:
			return nil, fmt.Errorf("schemadef: column %q has unknown metadata type %q", c.Name, c.Type)
		}
	}
	switch c.Type {
	case "", "string":
		return flatfiles.StringColumn(c.Name), nil
	case "int":
		return flatfiles.IntColumn(c.Name), nil
	case "float":
		return flatfiles.Float64Column(c.Name), nil
	case "bool":
		return flatfiles.BoolColumn(c.Name), nil
	case "time":
		if c.Layout == "" {
			return nil, fmt.Errorf("schemadef: time column %q needs a layout", c.Name)
		}
		return flatfiles.TimeColumn(c.Name, c.Layout), nil
	default:
		return nil, fmt.Errorf("schemadef: column %q has unknown type %q", c.Name, c.Type)
	}
}

// FixedLengthSchema builds the runtime schema for a fixed document.
func (d *Document) FixedLengthSchema() (*flatfiles.FixedLengthSchema, error) {
	if d.Format != FormatFixed {
		return nil, fmt.Errorf("schemadef: document format is %q, not %q", d.Format, FormatFixed)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	s := flatfiles.NewFixedLengthSchema()
	for _, c := range d.Columns {
		def, err := definition(c)
		if err != nil {
			return nil, err
		}
		if c.Metadata {
			s.AddMetadata(def)
			continue
		}
		s.AddColumn(def, flatfiles.Window{
			Width:         c.Width,
			Alignment:     alignment(c.Alignment),
			FillCharacter: firstRune(c.Fill),
		})
	}
	return s, nil
}

// SeparatedSchema builds the runtime schema for a separated document.
func (d *Document) SeparatedSchema() (*flatfiles.SeparatedSchema, error) {
	if d.Format != FormatSeparated {
		return nil, fmt.Errorf("schemadef: document format is %q, not %q", d.Format, FormatSeparated)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	s := flatfiles.NewSeparatedSchema()
	for _, c := range d.Columns {
		def, err := definition(c)
		if err != nil {
			return nil, err
		}
		if c.Metadata {
			s.AddMetadata(def)
			continue
		}
		s.AddColumn(def)
	}
	return s, nil
}

// SeparatedOptions projects the document's delimiter, quote, and header flag.
func (d *Document) SeparatedOptions() flatfiles.SeparatedOptions {
	return flatfiles.SeparatedOptions{
		IsFirstRecordHeader: d.Header,
		Delimiter:           firstRune(d.Delimiter),
		Quote:               firstRune(d.Quote),
	}
}

// FixedLengthOptions projects the document's header flag.
func (d *Document) FixedLengthOptions() flatfiles.FixedLengthOptions {
	return flatfiles.FixedLengthOptions{IsFirstRecordHeader: d.Header}
}

func alignment(s string) flatfiles.Alignment {
	switch s {
	case "left":
		return flatfiles.LeftAligned
	case "right":
		return flatfiles.RightAligned
	default:
		return flatfiles.AlignDefault
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
