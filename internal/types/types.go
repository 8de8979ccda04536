// Package types defines values shared by the ilnav command packages.
package types

const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"
)

// IsSupportedFormat reports whether format names a known output format.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatRaw, FormatJSON, FormatXML, FormatYAML:
		return true
	default:
		return false
	}
}
