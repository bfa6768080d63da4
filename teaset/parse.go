/*
Package teaset holds sets of bicubic Bezier patches, such as the classic
teapot, teacup and teaspoon models, and tesselates them into one mesh.

Source Data

Patch sets are read from a simple text format:

   <patch count>
   i1, i2, …, i16      (patch count lines of 16 one-based vertex indices)
   <vertex count>
   x, y, z             (vertex count lines)

Blank lines before a count are skipped and spaces around fields are
tolerated. Parse checks the format only. Vertex indices are resolved by
Load, which places the 16 control points of every patch into a 4×4 grid
according to a Winding. The winding is a property of the source data and
is never inferred.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package teaset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cortex.teaset'
func tracer() tracing.Trace {
	return tracing.Select("cortex.teaset")
}

var (
	// ErrMalformedSourceData is returned for input not following the patch
	// set source format.
	ErrMalformedSourceData = errors.New("malformed patch set source data")
	// ErrIndexOutOfRange is returned for a vertex index outside of the
	// vertex table.
	ErrIndexOutOfRange = errors.New("vertex index out of range")
)

// Table is the raw content of patch set source data. Patch indices are
// one-based and have not yet been checked against the vertex table.
type Table struct {
	Patches  [][16]int
	Vertices []mgl64.Vec3
}

type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (lr *lineReader) next() (string, bool) {
	if !lr.scanner.Scan() {
		return "", false
	}
	lr.line++
	return lr.scanner.Text(), true
}

// preallocation limit for tables, as counts are untrusted
const maxPrealloc = 1 << 12

// err returns the scanner's error, if any. Overlong lines are malformed
// input, other errors come from the reader.
func (lr *lineReader) err() error {
	err := lr.scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("%w: line %d: %v", ErrMalformedSourceData, lr.line+1, err)
	}
	return err
}

func (lr *lineReader) malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedSourceData, lr.line, fmt.Sprintf(format, args...))
}

// count reads a count line, skipping blank lines before it.
func (lr *lineReader) count(what string) (int, error) {
	for {
		s, ok := lr.next()
		if !ok {
			if err := lr.err(); err != nil {
				return 0, err
			}
			return 0, lr.malformed("missing %s count", what)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, lr.malformed("invalid %s count %q", what, s)
		}
		return n, nil
	}
}

// fields reads a data line of exactly n comma-separated fields.
func (lr *lineReader) fields(n int, what string) ([]string, error) {
	s, ok := lr.next()
	if !ok {
		if err := lr.err(); err != nil {
			return nil, err
		}
		return nil, lr.malformed("unexpected end of data, %s missing", what)
	}
	f := strings.Split(s, ",")
	if len(f) != n {
		return nil, lr.malformed("%s needs %d fields, have %d", what, n, len(f))
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	return f, nil
}

// Parse reads patch set source data. Errors for malformed input wrap
// ErrMalformedSourceData and name the offending line.
func Parse(r io.Reader) (*Table, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}
	tab := &Table{}
	n, err := lr.count("patch")
	if err != nil {
		return nil, err
	}
	tab.Patches = make([][16]int, 0, min(n, maxPrealloc))
	for p := 0; p < n; p++ {
		f, err := lr.fields(16, "patch")
		if err != nil {
			return nil, err
		}
		var row [16]int
		for i, s := range f {
			if row[i], err = strconv.Atoi(s); err != nil {
				return nil, lr.malformed("invalid vertex index %q", s)
			}
		}
		tab.Patches = append(tab.Patches, row)
	}
	if n, err = lr.count("vertex"); err != nil {
		return nil, err
	}
	tab.Vertices = make([]mgl64.Vec3, 0, min(n, maxPrealloc))
	for v := 0; v < n; v++ {
		f, err := lr.fields(3, "vertex")
		if err != nil {
			return nil, err
		}
		var vertex mgl64.Vec3
		for i, s := range f {
			if vertex[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, lr.malformed("invalid coordinate %q", s)
			}
		}
		tab.Vertices = append(tab.Vertices, vertex)
	}
	for {
		s, ok := lr.next()
		if !ok {
			break
		}
		if strings.TrimSpace(s) != "" {
			return nil, lr.malformed("unexpected content after vertex table")
		}
	}
	if err := lr.err(); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %d patches, %d vertices", len(tab.Patches), len(tab.Vertices))
	return tab, nil
}
