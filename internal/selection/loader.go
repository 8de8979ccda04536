package selection

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	decodeSelectionFormat = "decode selection: %w"
	itemShapeFormat       = "%w: item %d must set exactly one of reference, project, code"
)

// selectionDocument is the YAML form of a selection handed over by an editor.
type selectionDocument struct {
	Items []selectionEntry `yaml:"items"`
}

type selectionEntry struct {
	Reference *referenceEntry `yaml:"reference"`
	Project   *projectEntry   `yaml:"project"`
	Code      *codeEntry      `yaml:"code"`
}

type referenceEntry struct {
	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	PublicKeyToken string `yaml:"public_key_token"`
	Path           string `yaml:"path"`
}

type projectEntry struct {
	Root            string `yaml:"root"`
	OutputDirectory string `yaml:"output_directory"`
	OutputFileName  string `yaml:"output_file_name"`
}

type codeEntry struct {
	Document string       `yaml:"document"`
	Offset   int          `yaml:"offset"`
	Project  projectEntry `yaml:"project"`
}

func (entry projectEntry) item() ProjectOutputItem {
	return ProjectOutputItem{
		ProjectRoot:     entry.Root,
		OutputDirectory: entry.OutputDirectory,
		OutputFileName:  entry.OutputFileName,
	}
}

// LoadSelection decodes a YAML selection document into items, preserving order.
func LoadSelection(reader io.Reader) ([]Item, error) {
	var document selectionDocument
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if decodeError := decoder.Decode(&document); decodeError != nil {
		if errors.Is(decodeError, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf(decodeSelectionFormat, decodeError)
	}
	items := make([]Item, 0, len(document.Items))
	for entryIndex, entry := range document.Items {
		item, itemError := entry.item(entryIndex)
		if itemError != nil {
			return nil, itemError
		}
		items = append(items, item)
	}
	return items, nil
}

func (entry selectionEntry) item(entryIndex int) (Item, error) {
	shapes := 0
	var item Item
	if entry.Reference != nil {
		shapes++
		item = ReferenceItem{
			Name:           entry.Reference.Name,
			Version:        entry.Reference.Version,
			PublicKeyToken: entry.Reference.PublicKeyToken,
			FallbackPath:   entry.Reference.Path,
		}
	}
	if entry.Project != nil {
		shapes++
		item = entry.Project.item()
	}
	if entry.Code != nil {
		shapes++
		item = CodeItem{
			DocumentPath: entry.Code.Document,
			Offset:       entry.Code.Offset,
			Project:      entry.Code.Project.item(),
		}
	}
	if shapes != 1 {
		return nil, fmt.Errorf(itemShapeFormat, ErrUnknownItemKind, entryIndex)
	}
	return item, nil
}
