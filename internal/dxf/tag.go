// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dxf reads ASCII DXF drawing-exchange files into a navigable
// Document: header variables, the layer table, and the entity list with
// typed tag accessors. Only the tagged-data structure is interpreted here;
// flattening into output records lives in internal/export.
package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tag is one group-code/value pair from the tagged data stream. ASCII DXF
// is a flat sequence of these: one line holding the numeric group code,
// the next holding the value.
type Tag struct {
	Code  int
	Value string
}

// typed parses the tag value according to its group-code class: coordinate
// and scalar groups parse as float64, counter and flag groups as int,
// boolean groups as bool, everything else stays a string.
func (t Tag) typed() (any, error) {
	switch {
	case t.Code >= 10 && t.Code <= 59,
		t.Code >= 110 && t.Code <= 149,
		t.Code >= 210 && t.Code <= 239,
		t.Code >= 460 && t.Code <= 469:
		return strconv.ParseFloat(t.Value, 64)
	case t.Code >= 60 && t.Code <= 99,
		t.Code >= 160 && t.Code <= 179,
		t.Code >= 270 && t.Code <= 289,
		t.Code >= 370 && t.Code <= 389,
		t.Code >= 400 && t.Code <= 409,
		t.Code >= 440 && t.Code <= 459:
		return strconv.Atoi(t.Value)
	case t.Code >= 290 && t.Code <= 299:
		return t.Value != "0", nil
	default:
		return t.Value, nil
	}
}

// scanner yields Tags from an ASCII DXF stream. Comment tags (group 999)
// are dropped. One tag of pushback is supported for the section walkers.
type scanner struct {
	lines   *bufio.Scanner
	line    int
	pending *Tag
}

func newScanner(r io.Reader) *scanner {
	return &scanner{lines: bufio.NewScanner(r)}
}

// next returns the next tag, or io.EOF at end of stream. A code line with
// no following value line means the stream is truncated mid-tag, which is
// a hard error.
func (s *scanner) next() (Tag, error) {
	if s.pending != nil {
		t := *s.pending
		s.pending = nil
		return t, nil
	}
	for {
		codeLine, ok := s.readLine()
		if !ok {
			if err := s.lines.Err(); err != nil {
				return Tag{}, fmt.Errorf("line %d: %w", s.line, err)
			}
			return Tag{}, io.EOF
		}
		code, err := strconv.Atoi(strings.TrimSpace(codeLine))
		if err != nil {
			return Tag{}, fmt.Errorf("line %d: invalid group code %q", s.line, strings.TrimSpace(codeLine))
		}
		value, ok := s.readLine()
		if !ok {
			return Tag{}, fmt.Errorf("line %d: group code %d has no value line", s.line, code)
		}
		if code == 999 {
			continue
		}
		return Tag{Code: code, Value: strings.TrimSpace(value)}, nil
	}
}

func (s *scanner) readLine() (string, bool) {
	if !s.lines.Scan() {
		return "", false
	}
	s.line++
	return s.lines.Text(), true
}

// unread pushes t back so the next call to next returns it again.
func (s *scanner) unread(t Tag) {
	s.pending = &t
}
