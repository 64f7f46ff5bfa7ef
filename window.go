package flatfiles

// Alignment dictates which edge of a fixed-width field carries the data and,
// by implication, which edge the fill character is trimmed from.
type Alignment int

const (
	AlignDefault Alignment = iota // Inherit the option-level default.
	LeftAligned                   // Data at the left edge; fill trimmed from the trailing edge.
	RightAligned                  // Data at the right edge; fill trimmed from the leading edge.
)

// Window is the fixed character span governing one physical column's position
// within a physical record. Alignment and FillCharacter are per-column
// overrides; their zero values inherit the option-level defaults.
type Window struct {
	Width         int
	Alignment     Alignment
	FillCharacter rune // 0 inherits the option default.
}

// trim removes the run of the fill character from the edge opposite the data,
// as dictated by the effective alignment.
func trimField(field []rune, alignment Alignment, fill rune) string {
	switch alignment {
	case LeftAligned:
		end := len(field)
		for end > 0 && field[end-1] == fill {
			end--
		}
		return string(field[:end])
	default: // RightAligned
		start := 0
		for start < len(field) && field[start] == fill {
			start++
		}
		return string(field[start:])
	}
}
