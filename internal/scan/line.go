// Package scan demarcates physical records on a character stream. It performs
// no filtering, windowing, or conversion, never looks ahead by more than one
// byte, and never reorders records.
package scan

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineScanner yields one physical record (line) at a time from an io.Reader.
// Records end at LF; a trailing CR is stripped so CRLF input behaves the same.
// The final record does not require a terminator.
type LineScanner struct {
	br *bufio.Reader
}

// NewLineScanner wraps r. The reader stays caller-owned; the scanner never
// closes it.
func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{br: bufio.NewReader(r)}
}

// EndOfStream reports whether no further record is available. It peeks a
// single byte, so it never consumes record data.
func (s *LineScanner) EndOfStream() (bool, error) {
	_, err := s.br.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// ReadRecord returns the next record with its line terminator removed. It
// returns io.EOF when the stream is already exhausted.
func (s *LineScanner) ReadRecord() (string, error) {
	line, err := s.br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if line == "" && err == io.EOF {
		return "", io.EOF
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// EndOfStreamContext is the suspension-capable form of EndOfStream. The
// context is consulted only here, at the fetch boundary.
func (s *LineScanner) EndOfStreamContext(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.EndOfStream()
}

// ReadRecordContext is the suspension-capable form of ReadRecord.
func (s *LineScanner) ReadRecordContext(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.ReadRecord()
}
