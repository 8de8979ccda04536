package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePublicKeyToken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    []byte
		expectError bool
	}{
		{name: "empty_means_unsigned", input: "", expected: nil},
		{name: "whitespace_means_unsigned", input: "   ", expected: nil},
		{name: "lower_case", input: "ab12cd34", expected: []byte{0xab, 0x12, 0xcd, 0x34}},
		{name: "upper_case", input: "B77A5C561934E089", expected: []byte{0xb7, 0x7a, 0x5c, 0x56, 0x19, 0x34, 0xe0, 0x89}},
		{name: "odd_length", input: "abc", expectError: true},
		{name: "non_hex", input: "zz", expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			token, parseError := ParsePublicKeyToken(testCase.input)
			if testCase.expectError {
				require.ErrorIs(t, parseError, ErrInvalidPublicKeyToken)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expected, token)
		})
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "four_parts", input: "1.2.3.4", expected: "1.2.3.4"},
		{name: "two_parts_padded", input: "4.0", expected: "4.0.0.0"},
		{name: "single_part", input: "7", expected: "7.0.0.0"},
		{name: "too_many_parts", input: "1.2.3.4.5", expectError: true},
		{name: "non_numeric", input: "1.x", expectError: true},
		{name: "empty", input: "", expectError: true},
		{name: "negative", input: "1.-2", expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			version, parseError := ParseVersion(testCase.input)
			if testCase.expectError {
				require.ErrorIs(t, parseError, ErrInvalidVersion)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expected, version.String())
		})
	}
}

func TestAssemblyIdentityString(t *testing.T) {
	t.Parallel()

	signed, signedError := NewAssemblyIdentity("Foo", "1.2.3.4", "AB12CD34")
	require.NoError(t, signedError)
	require.True(t, signed.Signed())
	require.Equal(t, "ab12cd34", signed.TokenString())
	require.Equal(t, "Foo, Version=1.2.3.4, PublicKeyToken=ab12cd34", signed.String())

	unsigned, unsignedError := NewAssemblyIdentity("Bar", "2.0", "")
	require.NoError(t, unsignedError)
	require.False(t, unsigned.Signed())
	require.Equal(t, "Bar, Version=2.0.0.0, PublicKeyToken=null", unsigned.String())
}

func TestNewAssemblyIdentityRejectsPathLikeNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		assemblyName string
	}{
		{name: "empty", assemblyName: "   "},
		{name: "current_directory", assemblyName: "."},
		{name: "parent_directory", assemblyName: ".."},
		{name: "parent_traversal", assemblyName: "../evil"},
		{name: "forward_slash", assemblyName: "nested/Foo"},
		{name: "backslash", assemblyName: `nested\Foo`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, identityError := NewAssemblyIdentity(testCase.assemblyName, "1.0", "")
			require.ErrorIs(t, identityError, ErrInvalidAssemblyName)
		})
	}

	dotted, dottedError := NewAssemblyIdentity(" System.Core ", "4.0", "")
	require.NoError(t, dottedError)
	require.Equal(t, "System.Core", dotted.Name)
}
