//go:build !cgo

package locator

import "context"

type unavailableLocator struct{}

// NewLocator returns a locator that never finds a target when cgo is unavailable,
// so launches proceed on the assembly alone.
func NewLocator() Locator {
	return unavailableLocator{}
}

func (unavailableLocator) Locate(ctx context.Context, document Document, offset int) (Target, bool, error) {
	if offsetError := validateOffset(document, offset); offsetError != nil {
		return Target{}, false, offsetError
	}
	return Target{}, false, nil
}
