//go:build cgo

package locator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const cursorMarker = "<|>"

// documentWithCursor strips the cursor marker from source and returns its byte offset.
func documentWithCursor(t *testing.T, source string) (Document, int) {
	t.Helper()
	offset := strings.Index(source, cursorMarker)
	require.GreaterOrEqual(t, offset, 0, "source lacks cursor marker")
	cleaned := strings.Replace(source, cursorMarker, "", 1)
	return Document{Path: "Widget.cs", Source: []byte(cleaned)}, offset
}

const widgetSource = `using System;

namespace Acme.Shapes
{
    public delegate void Handler(object sender<DELEGATE>, EventArgs args);

    public enum Color
    {
        Red,<ENUM>
        Green
    }

    public interface IShape
    {
        double Area(<IFACE>);
    }

    public class Widget<T> : IShape
    {
        private int count;<FIELD>

        public event EventHandler Changed<EVENTFIELD>;

        public event EventHandler Resized
        {
            add { <EVENTACCESSOR> }
            remove { }
        }

        public int Size
        {
            get { return count<PROPERTY>; }
        }

        public int this[int index] => index<INDEXER>;

        static Widget() { <CCTOR> }

        public Widget() { count = 1<CTOR>; }

        ~Widget() { <FINALIZER> }

        public static Widget<T> operator +(Widget<T> left, Widget<T> right) => left<OPERATOR>;

        public static Widget<T> operator -(Widget<T> value) => value<UNARY>;

        public static implicit operator int(Widget<T> value) => value.count<CONVERSION>;

        public double Area()
        {
            var local = 2;<METHOD>
            return local;
        }

        public TOut Map<TIn, TOut>(TIn input) { return default<GENERIC_METHOD>; }

        private struct Inner
        {
            int depth;<NESTED>
        }
    }
<NAMESPACE_BODY>
}
<TOP_LEVEL>
`

func widgetDocument(t *testing.T, marker string) (Document, int) {
	t.Helper()
	source := strings.Replace(widgetSource, "<"+marker+">", cursorMarker, 1)
	for _, otherMarker := range []string{"DELEGATE", "ENUM", "IFACE", "FIELD", "EVENTFIELD", "EVENTACCESSOR", "PROPERTY", "INDEXER", "CCTOR", "CTOR", "FINALIZER", "OPERATOR", "UNARY", "CONVERSION", "METHOD", "GENERIC_METHOD", "NESTED", "NAMESPACE_BODY", "TOP_LEVEL"} {
		source = strings.Replace(source, "<"+otherMarker+">", "", 1)
	}
	return documentWithCursor(t, source)
}

func TestLocateResolvesNarrowestElement(t *testing.T) {
	testCases := []struct {
		marker   string
		expected string
	}{
		{marker: "METHOD", expected: "/navigateTo:M:Acme.Shapes.Widget`1.Area"},
		{marker: "GENERIC_METHOD", expected: "/navigateTo:M:Acme.Shapes.Widget`1.Map``2"},
		{marker: "CTOR", expected: "/navigateTo:M:Acme.Shapes.Widget`1.#ctor"},
		{marker: "CCTOR", expected: "/navigateTo:M:Acme.Shapes.Widget`1.#cctor"},
		{marker: "FINALIZER", expected: "/navigateTo:M:Acme.Shapes.Widget`1.Finalize"},
		{marker: "OPERATOR", expected: "/navigateTo:M:Acme.Shapes.Widget`1.op_Addition"},
		{marker: "UNARY", expected: "/navigateTo:M:Acme.Shapes.Widget`1.op_UnaryNegation"},
		{marker: "CONVERSION", expected: "/navigateTo:M:Acme.Shapes.Widget`1.op_Implicit"},
		{marker: "IFACE", expected: "/navigateTo:M:Acme.Shapes.IShape.Area"},
		{marker: "EVENTFIELD", expected: "/navigateTo:E:Acme.Shapes.Widget`1.Changed"},
		{marker: "EVENTACCESSOR", expected: "/navigateTo:E:Acme.Shapes.Widget`1.Resized"},
		{marker: "PROPERTY", expected: "/navigateTo:P:Acme.Shapes.Widget`1.Size"},
		{marker: "INDEXER", expected: "/navigateTo:P:Acme.Shapes.Widget`1.Item"},
		{marker: "FIELD", expected: "/navigateTo:T:Acme.Shapes.Widget`1"},
		{marker: "NESTED", expected: "/navigateTo:T:Acme.Shapes.Widget`1.Inner"},
		{marker: "ENUM", expected: "/navigateTo:T:Acme.Shapes.Color"},
		{marker: "DELEGATE", expected: "/navigateTo:T:Acme.Shapes.Handler"},
	}

	locator := NewLocator()
	for _, testCase := range testCases {
		t.Run(strings.ToLower(testCase.marker), func(t *testing.T) {
			document, offset := widgetDocument(t, testCase.marker)
			target, found, locateError := locator.Locate(context.Background(), document, offset)
			require.NoError(t, locateError)
			require.True(t, found)
			require.Equal(t, testCase.expected, target.String())
		})
	}
}

func TestLocateMethodWinsOverEnclosingType(t *testing.T) {
	document, offset := widgetDocument(t, "METHOD")
	target, found, locateError := NewLocator().Locate(context.Background(), document, offset)
	require.NoError(t, locateError)
	require.True(t, found)
	require.Equal(t, KindMethod, target.Kind)
	require.True(t, strings.HasPrefix(target.String(), MethodPrefix))
}

func TestLocateReportsNoTargetOutsideElements(t *testing.T) {
	locator := NewLocator()
	for _, marker := range []string{"TOP_LEVEL", "NAMESPACE_BODY"} {
		t.Run(strings.ToLower(marker), func(t *testing.T) {
			document, offset := widgetDocument(t, marker)
			_, found, locateError := locator.Locate(context.Background(), document, offset)
			require.NoError(t, locateError)
			require.False(t, found)
		})
	}
}

func TestLocateNamespaceForms(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "file_scoped_namespace",
			source:   "namespace Acme.Tools;\n\npublic class Runner\n{\n    public void Run() { <|> }\n}\n",
			expected: "/navigateTo:M:Acme.Tools.Runner.Run",
		},
		{
			name:     "nested_namespaces",
			source:   "namespace Outer\n{\n    namespace Inner\n    {\n        class Item { int value;<|> }\n    }\n}\n",
			expected: "/navigateTo:T:Outer.Inner.Item",
		},
		{
			name:     "global_namespace",
			source:   "class Program\n{\n    static void Main() { <|> }\n}\n",
			expected: "/navigateTo:M:Program.Main",
		},
	}

	locator := NewLocator()
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			document, offset := documentWithCursor(t, testCase.source)
			target, found, locateError := locator.Locate(context.Background(), document, offset)
			require.NoError(t, locateError)
			require.True(t, found)
			require.Equal(t, testCase.expected, target.String())
		})
	}
}

func TestLocateRejectsOffsetOutsideDocument(t *testing.T) {
	document := Document{Path: "Empty.cs", Source: []byte("class A {}")}
	_, _, locateError := NewLocator().Locate(context.Background(), document, len(document.Source)+1)
	require.ErrorIs(t, locateError, ErrOffsetOutOfRange)

	_, _, negativeError := NewLocator().Locate(context.Background(), document, -1)
	require.ErrorIs(t, negativeError, ErrOffsetOutOfRange)
}

func TestLocateUsesLineAndColumnOfOffset(t *testing.T) {
	source := []byte("namespace Acme\n{\n    class Widget\n    {\n        void Draw() { }\n\n        int Size { get; }\n    }\n}\n")
	locator := NewLocator()
	testCases := []struct {
		name     string
		line     int
		column   int
		expected string
		found    bool
	}{
		{name: "method_body_line_five", line: 5, column: 23, expected: "/navigateTo:M:Acme.Widget.Draw", found: true},
		{name: "blank_line_inside_class", line: 6, column: 1, expected: "/navigateTo:T:Acme.Widget", found: true},
		{name: "property_line_seven", line: 7, column: 20, expected: "/navigateTo:P:Acme.Widget.Size", found: true},
		{name: "namespace_brace", line: 2, column: 1, found: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			offset, positionError := OffsetForPosition(source, testCase.line, testCase.column)
			require.NoError(t, positionError)
			target, found, locateError := locator.Locate(context.Background(), Document{Path: "Widget.cs", Source: source}, offset)
			require.NoError(t, locateError)
			require.Equal(t, testCase.found, found)
			if testCase.found {
				require.Equal(t, testCase.expected, target.String())
			}
		})
	}
}
