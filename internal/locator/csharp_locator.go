//go:build cgo

package locator

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	csharp "github.com/smacker/go-tree-sitter/csharp"
)

const parseDocumentFormat = "parse document %s: %w"

// declarationKinds maps C# grammar node types to the element kind they declare.
var declarationKinds = map[string]Kind{
	"method_declaration":              KindMethod,
	"constructor_declaration":         KindMethod,
	"destructor_declaration":          KindMethod,
	"operator_declaration":            KindMethod,
	"conversion_operator_declaration": KindMethod,
	"event_declaration":               KindEvent,
	"event_field_declaration":         KindEvent,
	"property_declaration":            KindProperty,
	"indexer_declaration":             KindProperty,
	"class_declaration":               KindClass,
	"record_declaration":              KindClass,
	"struct_declaration":              KindStruct,
	"record_struct_declaration":       KindStruct,
	"interface_declaration":           KindInterface,
	"enum_declaration":                KindEnum,
	"delegate_declaration":            KindDelegate,
}

type csharpLocator struct {
	parser *sitter.Parser
}

// NewLocator constructs a Locator for C# source documents.
func NewLocator() Locator {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())
	return &csharpLocator{parser: parser}
}

func (locator *csharpLocator) Locate(ctx context.Context, document Document, offset int) (Target, bool, error) {
	if offsetError := validateOffset(document, offset); offsetError != nil {
		return Target{}, false, offsetError
	}
	tree, parseError := locator.parser.ParseCtx(ctx, nil, document.Source)
	if parseError != nil {
		return Target{}, false, fmt.Errorf(parseDocumentFormat, document.Path, parseError)
	}
	defer tree.Close()

	root := tree.RootNode()
	row, column := pointForOffset(document.Source, offset)
	cursorPoint := sitter.Point{Row: row, Column: column}
	cursorNode := root.NamedDescendantForPointRange(cursorPoint, cursorPoint)
	for _, group := range SearchOrder {
		if target, found := findEnclosing(cursorNode, group, document.Source, offset); found {
			return target, true, nil
		}
	}
	return Target{}, false, nil
}

// findEnclosing returns the innermost declaration of one of the kinds in group that
// contains the cursor node. Declarations sharing the same span resolve to the kind
// listed first in group.
func findEnclosing(cursorNode *sitter.Node, group []Kind, source []byte, offset int) (Target, bool) {
	for current := cursorNode; current != nil; current = current.Parent() {
		kind, declares := declarationKinds[current.Type()]
		if !declares || !containsKind(group, kind) {
			continue
		}
		chosenNode, chosenKind := preferBySpan(current, kind, group)
		name := declarationName(chosenNode, source, offset)
		if name == "" {
			continue
		}
		return Target{Kind: chosenKind, FullName: qualifiedName(chosenNode, name, source)}, true
	}
	return Target{}, false
}

func preferBySpan(node *sitter.Node, kind Kind, group []Kind) (*sitter.Node, Kind) {
	chosenNode, chosenKind := node, kind
	for ancestor := node.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
		if ancestor.StartByte() != node.StartByte() || ancestor.EndByte() != node.EndByte() {
			break
		}
		ancestorKind, declares := declarationKinds[ancestor.Type()]
		if declares && containsKind(group, ancestorKind) && kindRank(group, ancestorKind) < kindRank(group, chosenKind) {
			chosenNode, chosenKind = ancestor, ancestorKind
		}
	}
	return chosenNode, chosenKind
}

func containsKind(group []Kind, kind Kind) bool {
	return kindRank(group, kind) >= 0
}

func kindRank(group []Kind, kind Kind) int {
	for index, candidate := range group {
		if candidate == kind {
			return index
		}
	}
	return -1
}
