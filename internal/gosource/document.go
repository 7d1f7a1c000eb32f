package gosource

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/marcioaug/Refazer-sub001/internal/types"
)

var ErrRegionNotFound = errors.New("gosource: no tokens in region")

// Document is a parsed source file together with its token sequence.
// It implements types.Sequence and types.StatementSpanner. A Document is
// read-only once built and may be shared between goroutines.
type Document struct {
	Filename string
	Source   []byte

	fset     *token.FileSet
	file     *ast.File
	tokFile  *token.File
	elements []Element
}

var (
	_ types.Sequence         = (*Document)(nil)
	_ types.StatementSpanner = (*Document)(nil)
)

// SupportedFile reports whether the file extension is one the front-end parses.
func SupportedFile(path string) bool {
	switch filepath.Ext(path) {
	case ".go", ".gno":
		return true
	}
	return false
}

// ParseFile reads and parses filename.
func ParseFile(filename string) (*Document, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(filename, src)
}

// Parse parses src, which must be a complete Go or Gno file.
func Parse(filename string, src []byte) (*Document, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	doc := &Document{
		Filename: filename,
		Source:   src,
		fset:     fset,
		file:     file,
		tokFile:  fset.File(file.Package),
	}
	doc.elements = tokenize(doc.tokFile, src)
	return doc, nil
}

func tokenize(f *token.File, src []byte) []Element {
	var s scanner.Scanner
	s.Init(f, src, nil, 0)

	var out []Element
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		off := f.Offset(pos)
		out = append(out, Element{
			Tok:       tok,
			Lit:       lit,
			Offset:    off,
			EndOffset: off + width(tok, lit),
		})
	}
	return out
}

func (d *Document) Len() int                { return len(d.elements) }
func (d *Document) At(i int) types.Element  { return d.elements[i] }
func (d *Document) Element(i int) Element   { return d.elements[i] }
func (d *Document) AST() *ast.File          { return d.file }
func (d *Document) FileSet() *token.FileSet { return d.fset }

// Subrange copies the elements [start, start+n) into a plain slice.
func (d *Document) Subrange(start, n int) types.Sequence {
	out := make(types.Slice, n)
	for i := range out {
		out[i] = d.elements[start+i]
	}
	return out
}

// RegionOf returns the region of the tokens lying entirely inside the
// byte range [start, end). A zero-width token at end is outside.
func (d *Document) RegionOf(start, end int) (types.Region, error) {
	first, last := -1, -1
	for i, e := range d.elements {
		if e.Offset < start {
			continue
		}
		if e.EndOffset > end || (e.Offset == e.EndOffset && e.Offset >= end) {
			break
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return types.Region{}, fmt.Errorf("%w: bytes [%d,%d) of %s", ErrRegionNotFound, start, end, d.Filename)
	}
	return types.Region{Start: first, Len: last - first + 1}, nil
}

// Snippet returns the region of the first occurrence of text in the source.
func (d *Document) Snippet(text string) (types.Region, error) {
	idx := bytes.Index(d.Source, []byte(text))
	if idx < 0 || text == "" {
		return types.Region{}, fmt.Errorf("%w: snippet %q not in %s", ErrRegionNotFound, text, d.Filename)
	}
	return d.RegionOf(idx, idx+len(text))
}

// Span returns the byte range covered by a non-empty region.
func (d *Document) Span(r types.Region) (start, end int) {
	if r.Len == 0 {
		if r.Start < len(d.elements) {
			off := d.elements[r.Start].Offset
			return off, off
		}
		return len(d.Source), len(d.Source)
	}
	return d.elements[r.Start].Offset, d.elements[r.End()-1].EndOffset
}

// Text returns the source text covered by r.
func (d *Document) Text(r types.Region) string {
	start, end := d.Span(r)
	return string(d.Source[start:end])
}

// Positions returns the file positions of the start and end of r.
func (d *Document) Positions(r types.Region) (token.Position, token.Position) {
	start, end := d.Span(r)
	return d.position(start), d.position(end)
}

func (d *Document) position(offset int) token.Position {
	if offset > d.tokFile.Size() {
		offset = d.tokFile.Size()
	}
	return d.fset.Position(d.tokFile.Pos(offset))
}

// EnclosingStatement returns the region of the innermost statement that
// contains r, including the statement's terminating semicolon.
func (d *Document) EnclosingStatement(r types.Region) (types.Region, bool) {
	if r.Len == 0 || !r.Within(len(d.elements)) {
		return types.Region{}, false
	}
	start, end := d.Span(r)
	path, _ := astutil.PathEnclosingInterval(d.file, d.tokFile.Pos(start), d.tokFile.Pos(end))
	for _, n := range path {
		stmt, ok := n.(ast.Stmt)
		if !ok {
			continue
		}
		sr, ok := d.statementRegion(stmt)
		if ok && sr.Start <= r.Start && r.End() <= sr.End() {
			return sr, true
		}
	}
	return types.Region{}, false
}

// Statements returns the region of every statement in the file, outer
// statements before the ones nested in them. Blocks and empty statements
// are skipped.
func (d *Document) Statements() []types.Region {
	var out []types.Region
	ast.Inspect(d.file, func(n ast.Node) bool {
		stmt, ok := n.(ast.Stmt)
		if !ok {
			return true
		}
		switch stmt.(type) {
		case *ast.BlockStmt, *ast.EmptyStmt:
			return true
		}
		if sr, ok := d.statementRegion(stmt); ok {
			out = append(out, sr)
		}
		return true
	})
	return out
}

func (d *Document) statementRegion(stmt ast.Stmt) (types.Region, bool) {
	if !stmt.Pos().IsValid() || !stmt.End().IsValid() {
		return types.Region{}, false
	}
	r, err := d.RegionOf(d.tokFile.Offset(stmt.Pos()), d.tokFile.Offset(stmt.End()))
	if err != nil {
		return types.Region{}, false
	}
	if next := r.End(); next < len(d.elements) && d.elements[next].Tok == token.SEMICOLON {
		r.Len++
	}
	return r, true
}
