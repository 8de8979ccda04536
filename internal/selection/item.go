// Package selection models the items an editor hands over and turns each into a viewer launch.
package selection

import (
	"fmt"
	"path/filepath"
)

// ItemKind identifies the shape of a selection item.
type ItemKind int

const (
	ItemKindReference ItemKind = iota
	ItemKindProjectOutput
	ItemKindCode
)

func (kind ItemKind) String() string {
	switch kind {
	case ItemKindReference:
		return "reference"
	case ItemKindProjectOutput:
		return "project"
	case ItemKindCode:
		return "code"
	default:
		return fmt.Sprintf("item(%d)", int(kind))
	}
}

// Item is one selected element. The set of implementations is closed.
type Item interface {
	Kind() ItemKind
	isItem()
}

// ReferenceItem is an assembly reference as reported by the host.
type ReferenceItem struct {
	Name           string
	Version        string
	PublicKeyToken string
	// FallbackPath is the on-disk path the host reports, used when the registry has no match.
	FallbackPath string
}

// ProjectOutputItem describes a project's build artifact.
type ProjectOutputItem struct {
	ProjectRoot     string
	OutputDirectory string
	OutputFileName  string
}

// CodeItem is a cursor position inside a source document of a project.
type CodeItem struct {
	DocumentPath string
	Offset       int
	Project      ProjectOutputItem
}

func (ReferenceItem) Kind() ItemKind     { return ItemKindReference }
func (ProjectOutputItem) Kind() ItemKind { return ItemKindProjectOutput }
func (CodeItem) Kind() ItemKind          { return ItemKindCode }

func (ReferenceItem) isItem()     {}
func (ProjectOutputItem) isItem() {}
func (CodeItem) isItem()          {}

// AssemblyPath joins the project root, output directory and file name.
// An absolute output directory replaces the project root.
func (item ProjectOutputItem) AssemblyPath() string {
	if filepath.IsAbs(item.OutputDirectory) {
		return filepath.Join(item.OutputDirectory, item.OutputFileName)
	}
	return filepath.Join(item.ProjectRoot, item.OutputDirectory, item.OutputFileName)
}
