package flatfiles_test

import (
	"strings"
	"testing"

	flatfiles "github.com/dariosoltani/FlatFiles"
)

func readOne(t *testing.T, input string, schema *flatfiles.FixedLengthSchema, opts ...flatfiles.FixedLengthOptions) []any {
	t.Helper()
	r := newReader(t, input, schema, opts...)
	ok, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !ok {
		t.Fatalf("expected a record")
	}
	values, err := r.Values()
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	return values
}

func TestWindow_LeftAlignmentTrimsTrailingFill(t *testing.T) {
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("first"), flatfiles.Window{Width: 4}).
		AddColumn(flatfiles.StringColumn("second"), flatfiles.Window{Width: 4})
	opts := flatfiles.FixedLengthOptions{Alignment: flatfiles.LeftAligned, FillCharacter: '_'}

	values := readOne(t, "Ann_Jon_\n", schema, opts)
	if values[0] != "Ann" || values[1] != "Jon" {
		t.Fatalf("values = %#v, want [Ann Jon]", values)
	}
}

func TestWindow_LeftAlignmentKeepsLeadingFill(t *testing.T) {
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("v"), flatfiles.Window{Width: 6})
	opts := flatfiles.FixedLengthOptions{Alignment: flatfiles.LeftAligned, FillCharacter: '_'}

	values := readOne(t, "_Ann__\n", schema, opts)
	if values[0] != "_Ann" {
		t.Fatalf("value = %#v, want _Ann (only the trailing run trimmed)", values[0])
	}
}

func TestWindow_RightAlignmentTrimsLeadingFill(t *testing.T) {
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("v"), flatfiles.Window{Width: 6})
	opts := flatfiles.FixedLengthOptions{Alignment: flatfiles.RightAligned, FillCharacter: '_'}

	values := readOne(t, "__Ann_\n", schema, opts)
	if values[0] != "Ann_" {
		t.Fatalf("value = %#v, want Ann_ (only the leading run trimmed)", values[0])
	}
}

func TestWindow_OverrideBeatsOptionDefault(t *testing.T) {
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("left"), flatfiles.Window{Width: 4, Alignment: flatfiles.LeftAligned}).
		AddColumn(flatfiles.StringColumn("right"), flatfiles.Window{Width: 4})
	opts := flatfiles.FixedLengthOptions{Alignment: flatfiles.RightAligned, FillCharacter: '_'}

	values := readOne(t, "Ann___Jo\n", schema, opts)
	if values[0] != "Ann" {
		t.Fatalf("left column = %#v, want Ann (window override)", values[0])
	}
	if values[1] != "Jo" {
		t.Fatalf("right column = %#v, want Jo (option default)", values[1])
	}
}

func TestWindow_FillCharacterOverride(t *testing.T) {
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("zeroes"), flatfiles.Window{Width: 5, FillCharacter: '0'}).
		AddColumn(flatfiles.StringColumn("spaces"), flatfiles.Window{Width: 5})

	values := readOne(t, "00042  Ann\n", schema)
	if values[0] != "42" {
		t.Fatalf("zero-filled column = %#v, want 42", values[0])
	}
	if values[1] != "Ann" {
		t.Fatalf("space-filled column = %#v, want Ann", values[1])
	}
}

func TestWindow_DefaultAlignmentIsRight(t *testing.T) {
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("v"), flatfiles.Window{Width: 5})

	values := readOne(t, "   ab\n", schema)
	if values[0] != "ab" {
		t.Fatalf("value = %#v, want ab (leading spaces trimmed by default)", values[0])
	}
}

func TestWindow_MultiByteFillAndData(t *testing.T) {
	// widths are character counts, not byte counts
	schema := flatfiles.NewFixedLengthSchema().
		AddColumn(flatfiles.StringColumn("v"), flatfiles.Window{Width: 4, Alignment: flatfiles.LeftAligned})
	opts := flatfiles.FixedLengthOptions{FillCharacter: '＿'}

	values := readOne(t, strings.Repeat("あ", 2)+"＿＿\n", schema, opts)
	if values[0] != "ああ" {
		t.Fatalf("value = %#v, want ああ", values[0])
	}
}
