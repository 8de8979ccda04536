package registry

import (
	"context"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// minimumSuggestionSimilarity is the Jaro-Winkler score a registered name needs to be suggested.
const minimumSuggestionSimilarity = 0.85

type scoredName struct {
	name  string
	score float32
}

// Suggest returns up to limit registered assembly names resembling name, most similar first.
// Comparison ignores case; an exact case-insensitive match is never suggested.
func (resolver *Resolver) Suggest(ctx context.Context, name string, limit int) ([]string, error) {
	entries, listError := resolver.List(ctx, matchAllPattern)
	if listError != nil {
		return nil, listError
	}
	requestedName := strings.ToLower(strings.TrimSpace(name))
	seen := make(map[string]struct{}, len(entries))
	var candidates []scoredName
	for _, entry := range entries {
		if _, duplicate := seen[entry.Name]; duplicate {
			continue
		}
		seen[entry.Name] = struct{}{}
		candidateName := strings.ToLower(entry.Name)
		if candidateName == requestedName {
			continue
		}
		similarity, similarityError := edlib.StringsSimilarity(requestedName, candidateName, edlib.JaroWinkler)
		if similarityError != nil || similarity < minimumSuggestionSimilarity {
			continue
		}
		candidates = append(candidates, scoredName{name: entry.Name, score: similarity})
	}
	sort.SliceStable(candidates, func(left, right int) bool {
		return candidates[left].score > candidates[right].score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	suggestions := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		suggestions = append(suggestions, candidate.name)
	}
	return suggestions, nil
}
