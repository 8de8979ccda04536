package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestToggleFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		arguments      []string
		expectOverride bool
		expected       bool
		expectError    bool
	}{
		{
			name:           "absent_flag_has_no_override",
			arguments:      []string{},
			expectOverride: false,
		},
		{
			name:           "sets_true_without_value",
			arguments:      []string{"--dry-run"},
			expectOverride: true,
			expected:       true,
		},
		{
			name:           "sets_false_with_equals",
			arguments:      []string{"--dry-run=false"},
			expectOverride: true,
			expected:       false,
		},
		{
			name:           "sets_false_with_no_literal",
			arguments:      []string{"--dry-run", "no"},
			expectOverride: true,
			expected:       false,
		},
		{
			name:           "sets_true_with_on_literal",
			arguments:      []string{"--dry-run", "on"},
			expectOverride: true,
			expected:       true,
		},
		{
			name:           "leaves_non_boolean_trailing_value",
			arguments:      []string{"--dry-run", "Foo.dll"},
			expectOverride: true,
			expected:       true,
		},
		{
			name:        "rejects_unknown_literal",
			arguments:   []string{"--dry-run=maybe"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "toggle-test"}
			flag := registerToggleFlag(command.Flags(), "dry-run", "print the command line only")
			parseErr := command.ParseFlags(normalizeToggleArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			override := flag.Override()
			if !testCase.expectOverride {
				if override != nil {
					t.Fatalf("expected no override, got %t", *override)
				}
				return
			}
			if override == nil || *override != testCase.expected {
				t.Fatalf("expected override %t, got %v", testCase.expected, override)
			}
		})
	}
}

func TestNormalizeToggleArgumentsStopsAtTerminator(t *testing.T) {
	t.Parallel()

	command := &cobra.Command{Use: "toggle-test"}
	registerToggleFlag(command.Flags(), "copy", "copy the command line")
	arguments := []string{"--copy", "yes", "--", "--copy", "no"}
	normalized := normalizeToggleArguments(command, arguments)
	expected := []string{"--copy=yes", "--", "--copy", "no"}
	if len(normalized) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, normalized)
	}
	for argumentIndex := range expected {
		if normalized[argumentIndex] != expected[argumentIndex] {
			t.Fatalf("expected %v, got %v", expected, normalized)
		}
	}
}
