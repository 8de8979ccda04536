// Package locator maps a cursor position in C# source to the narrowest enclosing
// named code element and the navigation target the viewer understands.
package locator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
)

// Kind tags the code element categories a navigation target can point at.
type Kind int

const (
	KindMethod Kind = iota
	KindEvent
	KindProperty
	KindClass
	KindStruct
	KindInterface
	KindEnum
	KindDelegate
)

// Navigation prefixes understood by the viewer command line.
const (
	MethodPrefix   = "/navigateTo:M:"
	EventPrefix    = "/navigateTo:E:"
	PropertyPrefix = "/navigateTo:P:"
	TypePrefix     = "/navigateTo:T:"
)

const (
	offsetOutOfRangeFormat   = "%w: offset %d outside document %s of %d bytes"
	readDocumentFormat       = "read document %s: %w"
	positionOutOfRangeFormat = "%w: line %d column %d"
)

// ErrOffsetOutOfRange indicates a cursor offset beyond the document bounds.
var ErrOffsetOutOfRange = errors.New("locator: offset out of range")

// SearchOrder lists the kind groups in the order they are tried.
// Members, which nest inside types, come before the type group so the innermost element wins.
var SearchOrder = [][]Kind{
	{KindMethod},
	{KindEvent},
	{KindProperty},
	{KindClass, KindStruct, KindInterface, KindEnum, KindDelegate},
}

// Prefix returns the navigation prefix for the kind.
func (kind Kind) Prefix() string {
	switch kind {
	case KindMethod:
		return MethodPrefix
	case KindEvent:
		return EventPrefix
	case KindProperty:
		return PropertyPrefix
	default:
		return TypePrefix
	}
}

func (kind Kind) String() string {
	switch kind {
	case KindMethod:
		return "method"
	case KindEvent:
		return "event"
	case KindProperty:
		return "property"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindDelegate:
		return "delegate"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// Target is a located code element.
type Target struct {
	Kind     Kind
	FullName string
}

// String renders the navigation argument passed to the viewer.
func (target Target) String() string {
	return target.Kind.Prefix() + target.FullName
}

// Document is a source file and its content.
type Document struct {
	Path   string
	Source []byte
}

// ReadDocument loads a document from the local file system.
func ReadDocument(path string) (Document, error) {
	source, readError := os.ReadFile(path)
	if readError != nil {
		return Document{}, fmt.Errorf(readDocumentFormat, path, readError)
	}
	return Document{Path: path, Source: source}, nil
}

// Locator finds the navigation target enclosing a cursor offset.
// A document without an enclosing element reports found as false with a nil error.
type Locator interface {
	Locate(ctx context.Context, document Document, offset int) (target Target, found bool, err error)
}

func validateOffset(document Document, offset int) error {
	if offset < 0 || offset > len(document.Source) {
		return fmt.Errorf(offsetOutOfRangeFormat, ErrOffsetOutOfRange, offset, document.Path, len(document.Source))
	}
	return nil
}

// OffsetForPosition converts a one-based line and column into a byte offset.
// Columns count bytes; a column past the end of its line clamps to the line end.
func OffsetForPosition(source []byte, line int, column int) (int, error) {
	if line < 1 || column < 1 {
		return 0, fmt.Errorf(positionOutOfRangeFormat, ErrOffsetOutOfRange, line, column)
	}
	lineStart := 0
	for currentLine := 1; currentLine < line; currentLine++ {
		newlineIndex := bytes.IndexByte(source[lineStart:], '\n')
		if newlineIndex < 0 {
			return 0, fmt.Errorf(positionOutOfRangeFormat, ErrOffsetOutOfRange, line, column)
		}
		lineStart += newlineIndex + 1
	}
	lineEnd := len(source)
	if newlineIndex := bytes.IndexByte(source[lineStart:], '\n'); newlineIndex >= 0 {
		lineEnd = lineStart + newlineIndex
	}
	offset := lineStart + column - 1
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset, nil
}

// pointForOffset converts a byte offset into the zero-based row and byte column tree-sitter points use.
func pointForOffset(source []byte, offset int) (uint32, uint32) {
	if offset > len(source) {
		offset = len(source)
	}
	preceding := source[:offset]
	row := bytes.Count(preceding, []byte{'\n'})
	column := offset - (bytes.LastIndexByte(preceding, '\n') + 1)
	return uint32(row), uint32(column)
}
