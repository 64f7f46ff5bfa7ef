package scan

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Quote faults surfaced by the delimited scanner. Once raised, the scanner's
// position is in doubt and it must not be resumed.
var (
	// ErrBareQuote is returned when a quote appears inside an unquoted field.
	ErrBareQuote = errors.New("scan: bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned when a quoted field is not closed
	// before EOF.
	ErrUnterminatedQuote = errors.New("scan: unterminated quoted field")
)

// DelimitedScanner yields one delimited record at a time. Quoted fields may
// contain the delimiter, doubled quotes, and newlines; embedded newlines keep
// the record logically whole. Records end at LF or CRLF outside quotes.
type DelimitedScanner struct {
	br    *bufio.Reader
	delim rune
	quote rune
}

// NewDelimitedScanner wraps r with the given delimiter and quote runes.
func NewDelimitedScanner(r io.Reader, delim, quote rune) *DelimitedScanner {
	return &DelimitedScanner{br: bufio.NewReader(r), delim: delim, quote: quote}
}

// EndOfStream reports whether no further record is available.
func (s *DelimitedScanner) EndOfStream() (bool, error) {
	_, err := s.br.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// ReadRecord returns the next record both as raw text (terminator removed,
// quoting intact) and split into fields. It returns io.EOF when the stream is
// already exhausted.
func (s *DelimitedScanner) ReadRecord() (raw string, fields []string, err error) {
	var rawBuf strings.Builder
	var field strings.Builder
	inQuotes := false
	sawQuoted := false
	started := false

	flush := func() {
		fields = append(fields, field.String())
		field.Reset()
		sawQuoted = false
	}

	for {
		r, _, rerr := s.br.ReadRune()
		if rerr == io.EOF {
			if !started {
				return "", nil, io.EOF
			}
			if inQuotes {
				return "", nil, ErrUnterminatedQuote
			}
			flush()
			return rawBuf.String(), fields, nil
		}
		if rerr != nil {
			return "", nil, rerr
		}
		started = true

		if inQuotes {
			rawBuf.WriteRune(r)
			if r == s.quote {
				next, _, perr := s.br.ReadRune()
				if perr == nil && next == s.quote {
					// doubled quote is an escaped quote
					rawBuf.WriteRune(next)
					field.WriteRune(s.quote)
					continue
				}
				if perr == nil {
					_ = s.br.UnreadRune()
				} else if perr != io.EOF {
					return "", nil, perr
				}
				inQuotes = false
				continue
			}
			field.WriteRune(r)
			continue
		}

		switch r {
		case s.delim:
			rawBuf.WriteRune(r)
			flush()
		case '\n':
			flush()
			return rawBuf.String(), fields, nil
		case '\r':
			next, _, perr := s.br.ReadRune()
			if perr == nil && next != '\n' {
				_ = s.br.UnreadRune()
			} else if perr != nil && perr != io.EOF {
				return "", nil, perr
			}
			flush()
			return rawBuf.String(), fields, nil
		case s.quote:
			// a quote opens a quoted field only at the field start
			if field.Len() > 0 || sawQuoted {
				return "", nil, ErrBareQuote
			}
			rawBuf.WriteRune(r)
			inQuotes = true
			sawQuoted = true
		default:
			rawBuf.WriteRune(r)
			field.WriteRune(r)
		}
	}
}

// EndOfStreamContext is the suspension-capable form of EndOfStream.
func (s *DelimitedScanner) EndOfStreamContext(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.EndOfStream()
}

// ReadRecordContext is the suspension-capable form of ReadRecord.
func (s *DelimitedScanner) ReadRecordContext(ctx context.Context) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	return s.ReadRecord()
}
