package argv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeQuotesOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		arguments []string
		expected  string
	}{
		{name: "plain_path", arguments: []string{"/opt/registry/Foo.dll"}, expected: "/opt/registry/Foo.dll"},
		{name: "empty_argument", arguments: []string{""}, expected: `""`},
		{name: "space_in_path", arguments: []string{`C:\Program Files\Foo.dll`}, expected: `"C:\Program Files\Foo.dll"`},
		{name: "embedded_quote", arguments: []string{`a"b`}, expected: `"a\"b"`},
		{name: "trailing_backslash_in_quotes", arguments: []string{`C:\out dir\`}, expected: `"C:\out dir\\"`},
		{name: "backslashes_before_quote", arguments: []string{`a\"b`}, expected: `"a\\\"b"`},
		{name: "unquoted_backslashes_kept", arguments: []string{`C:\bin\`}, expected: `C:\bin\`},
		{name: "navigation_target", arguments: []string{"Foo.dll", "/navigateTo:M:Ns.Type.Method"}, expected: "Foo.dll /navigateTo:M:Ns.Type.Method"},
		{name: "no_arguments", arguments: nil, expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, Encode(testCase.arguments))
		})
	}
}

func TestSplitFollowsRuntimeRules(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		commandLine string
		expected    []string
	}{
		{name: "collapses_whitespace", commandLine: "a   b\tc", expected: []string{"a", "b", "c"}},
		{name: "quoted_segment", commandLine: `"a b" c`, expected: []string{"a b", "c"}},
		{name: "doubled_quote_inside_quotes", commandLine: `"a""b"`, expected: []string{`a"b`}},
		{name: "even_backslashes_before_quote", commandLine: `a\\"b c"`, expected: []string{`a\b c`}},
		{name: "odd_backslashes_before_quote", commandLine: `a\\\"b`, expected: []string{`a\"b`}},
		{name: "backslashes_without_quote", commandLine: `a\\b`, expected: []string{`a\\b`}},
		{name: "empty_quoted", commandLine: `"" x`, expected: []string{"", "x"}},
		{name: "blank_line", commandLine: "   ", expected: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, Split(testCase.commandLine))
		})
	}
}

func TestEncodeSplitRoundTrip(t *testing.T) {
	t.Parallel()

	argumentSets := [][]string{
		{""},
		{"", "", ""},
		{"plain"},
		{"with space", "tab\there"},
		{`"`, `""`, `"quoted"`},
		{`\`, `\\`, `trailing\`, `trailing\\`},
		{`back\"slash`, `\\"`, `a\\\"b`},
		{`C:\Program Files\App\Foo.dll`, "/navigateTo:T:Ns.Outer`1.Inner"},
		{"new\nline", "vertical\vtab"},
		{"ünïcödé pàth", "日本語"},
	}

	for _, arguments := range argumentSets {
		encoded := Encode(arguments)
		require.Equal(t, arguments, Split(encoded), "command line %q", encoded)
	}
}

func FuzzEncodeSplitRoundTrip(f *testing.F) {
	f.Add("a", "b")
	f.Add("", `\"`)
	f.Add(`x y\`, `"`)
	f.Add(`\\\`, "  ")
	f.Fuzz(func(t *testing.T, first string, second string) {
		if strings.ContainsRune(first+second, 0) {
			t.Skip()
		}
		arguments := []string{first, second}
		require.Equal(t, arguments, Split(Encode(arguments)))
	})
}
