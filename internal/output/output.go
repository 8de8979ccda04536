// Package output renders registry listings in the supported formats.
package output

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/temirov/ilnav/internal/registry"
	"github.com/temirov/ilnav/internal/types"
)

const (
	indentPrefix              = ""
	indentSpacer              = "  "
	xmlHeader                 = xml.Header
	rawEntryFormat            = "%s\t%s\t%s\t%s\n"
	tabwriterMinimumWidth     = 0
	tabwriterTabWidth         = 4
	tabwriterPadding          = 2
	tabwriterPaddingCharacter = ' '
	unsupportedFormatMessage  = "unsupported output format %q"
)

type xmlAssemblies struct {
	XMLName    xml.Name         `xml:"assemblies"`
	Assemblies []registry.Entry `xml:"assembly"`
}

// RenderRegistryEntries writes entries to writer in the requested format.
// An empty listing renders as an empty collection in the structured formats and as nothing in raw.
func RenderRegistryEntries(writer io.Writer, entries []registry.Entry, format string) error {
	if entries == nil {
		entries = []registry.Entry{}
	}
	switch format {
	case types.FormatRaw:
		return renderRaw(writer, entries)
	case types.FormatJSON:
		encoded, jsonEncodeError := json.MarshalIndent(entries, indentPrefix, indentSpacer)
		if jsonEncodeError != nil {
			return jsonEncodeError
		}
		_, writeError := fmt.Fprintln(writer, string(encoded))
		return writeError
	case types.FormatXML:
		encoded, xmlMarshalError := xml.MarshalIndent(xmlAssemblies{Assemblies: entries}, indentPrefix, indentSpacer)
		if xmlMarshalError != nil {
			return xmlMarshalError
		}
		_, writeError := fmt.Fprintln(writer, xmlHeader+string(encoded))
		return writeError
	case types.FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encodeError := encoder.Encode(entries)
		return errors.Join(encodeError, encoder.Close())
	default:
		return fmt.Errorf(unsupportedFormatMessage, format)
	}
}

func renderRaw(writer io.Writer, entries []registry.Entry) error {
	tableWriter := tabwriter.NewWriter(writer, tabwriterMinimumWidth, tabwriterTabWidth, tabwriterPadding, tabwriterPaddingCharacter, 0)
	for _, entry := range entries {
		fmt.Fprintf(tableWriter, rawEntryFormat, entry.Name, entry.Version, entry.PublicKeyToken, entry.Path)
	}
	return tableWriter.Flush()
}
