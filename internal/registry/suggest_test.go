package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolverSuggest(t *testing.T) {
	root := t.TempDir()
	writeRegistryFile(t, root, "System.Xml/4.0.0.0/b77a5c561934e089/System.Xml.dll")
	writeRegistryFile(t, root, "System.Xml/2.0.0.0/b77a5c561934e089/System.Xml.dll")
	writeRegistryFile(t, root, "System.Xaml/4.0.0.0/b77a5c561934e089/System.Xaml.dll")
	writeRegistryFile(t, root, "Acme.Core/1.0.0.0/null/Acme.Core.dll")
	resolver := NewResolver(nil, []string{root}, nil)

	testCases := []struct {
		name     string
		request  string
		limit    int
		expected []string
	}{
		{name: "close_names_ranked", request: "System.Xm", limit: 5, expected: []string{"System.Xml", "System.Xaml"}},
		{name: "limit_applies", request: "System.Xm", limit: 1, expected: []string{"System.Xml"}},
		{name: "exact_match_excluded", request: "acme.core", limit: 5, expected: []string{}},
		{name: "unrelated_name", request: "Newtonsoft.Json", limit: 5, expected: []string{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			suggestions, suggestError := resolver.Suggest(context.Background(), testCase.request, testCase.limit)
			require.NoError(t, suggestError)
			require.Equal(t, testCase.expected, suggestions)
		})
	}
}
