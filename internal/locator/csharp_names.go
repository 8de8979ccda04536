//go:build cgo

package locator

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	nameField                   = "name"
	operatorField               = "operator"
	parametersField             = "parameters"
	identifierNodeType          = "identifier"
	modifierNodeType            = "modifier"
	parameterNodeType           = "parameter"
	typeParameterListNodeType   = "type_parameter_list"
	typeParameterNodeType       = "type_parameter"
	variableDeclarationNodeType = "variable_declaration"
	variableDeclaratorNodeType  = "variable_declarator"
	namespaceNodeType           = "namespace_declaration"
	fileScopedNamespaceNodeType = "file_scoped_namespace_declaration"
	constructorNodeType         = "constructor_declaration"
	destructorNodeType          = "destructor_declaration"
	operatorNodeType            = "operator_declaration"
	conversionOperatorNodeType  = "conversion_operator_declaration"
	indexerNodeType             = "indexer_declaration"
	eventFieldNodeType          = "event_field_declaration"
	methodNodeType              = "method_declaration"
	staticModifier              = "static"
	implicitKeyword             = "implicit"
	constructorName             = "#ctor"
	staticConstructorName       = "#cctor"
	finalizerName               = "Finalize"
	indexerName                 = "Item"
	implicitConversionName      = "op_Implicit"
	explicitConversionName      = "op_Explicit"
	qualifiedNameSeparator      = "."
	typeArityMarker             = "`"
	methodArityMarker           = "``"
)

var binaryOperatorNames = map[string]string{
	"+":   "op_Addition",
	"-":   "op_Subtraction",
	"*":   "op_Multiply",
	"/":   "op_Division",
	"%":   "op_Modulus",
	"&":   "op_BitwiseAnd",
	"|":   "op_BitwiseOr",
	"^":   "op_ExclusiveOr",
	"<<":  "op_LeftShift",
	">>":  "op_RightShift",
	">>>": "op_UnsignedRightShift",
	"==":  "op_Equality",
	"!=":  "op_Inequality",
	"<":   "op_LessThan",
	">":   "op_GreaterThan",
	"<=":  "op_LessThanOrEqual",
	">=":  "op_GreaterThanOrEqual",
}

var unaryOperatorNames = map[string]string{
	"+":     "op_UnaryPlus",
	"-":     "op_UnaryNegation",
	"!":     "op_LogicalNot",
	"~":     "op_OnesComplement",
	"++":    "op_Increment",
	"--":    "op_Decrement",
	"true":  "op_True",
	"false": "op_False",
}

// typeContainerNodeTypes are declarations whose names prefix nested members.
var typeContainerNodeTypes = map[string]struct{}{
	"class_declaration":         {},
	"record_declaration":        {},
	"struct_declaration":        {},
	"record_struct_declaration": {},
	"interface_declaration":     {},
	"enum_declaration":          {},
}

// declarationName returns the metadata name of a declaration, or an empty string.
func declarationName(node *sitter.Node, source []byte, offset int) string {
	switch node.Type() {
	case constructorNodeType:
		if hasModifier(node, source, staticModifier) {
			return staticConstructorName
		}
		return constructorName
	case destructorNodeType:
		return finalizerName
	case indexerNodeType:
		return indexerName
	case operatorNodeType:
		return operatorName(node, source)
	case conversionOperatorNodeType:
		if hasChildOfType(node, implicitKeyword) {
			return implicitConversionName
		}
		return explicitConversionName
	case eventFieldNodeType:
		return eventFieldName(node, source, offset)
	}
	name := fieldText(node, nameField, source)
	if name == "" {
		return ""
	}
	if arity := typeParameterCount(node); arity > 0 {
		if node.Type() == methodNodeType {
			return name + methodArityMarker + strconv.Itoa(arity)
		}
		return name + typeArityMarker + strconv.Itoa(arity)
	}
	return name
}

// qualifiedName prefixes name with the enclosing types and namespaces of node.
func qualifiedName(node *sitter.Node, name string, source []byte) string {
	segments := []string{name}
	sawFileScopedNamespace := false
	var outermost *sitter.Node
	for ancestor := node.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
		outermost = ancestor
		ancestorType := ancestor.Type()
		if _, isType := typeContainerNodeTypes[ancestorType]; isType {
			typeName := declarationName(ancestor, source, 0)
			if typeName != "" {
				segments = append(segments, typeName)
			}
			continue
		}
		if ancestorType == namespaceNodeType || ancestorType == fileScopedNamespaceNodeType {
			sawFileScopedNamespace = sawFileScopedNamespace || ancestorType == fileScopedNamespaceNodeType
			if namespaceName := namespaceText(ancestor, source); namespaceName != "" {
				segments = append(segments, namespaceName)
			}
		}
	}
	if !sawFileScopedNamespace && outermost != nil {
		if namespaceName := precedingFileScopedNamespace(outermost, node, source); namespaceName != "" {
			segments = append(segments, namespaceName)
		}
	}
	for left, right := 0, len(segments)-1; left < right; left, right = left+1, right-1 {
		segments[left], segments[right] = segments[right], segments[left]
	}
	return strings.Join(segments, qualifiedNameSeparator)
}

// precedingFileScopedNamespace finds a file-scoped namespace declared as a sibling before node.
func precedingFileScopedNamespace(root *sitter.Node, node *sitter.Node, source []byte) string {
	for childIndex := 0; childIndex < int(root.NamedChildCount()); childIndex++ {
		child := root.NamedChild(childIndex)
		if child == nil || child.StartByte() > node.StartByte() {
			break
		}
		if child.Type() == fileScopedNamespaceNodeType {
			return namespaceText(child, source)
		}
	}
	return ""
}

func namespaceText(node *sitter.Node, source []byte) string {
	return strings.Join(strings.Fields(fieldText(node, nameField, source)), "")
}

func fieldText(node *sitter.Node, field string, source []byte) string {
	fieldNode := node.ChildByFieldName(field)
	if fieldNode == nil {
		return ""
	}
	return strings.TrimSpace(fieldNode.Content(source))
}

func operatorName(node *sitter.Node, source []byte) string {
	operatorText := fieldText(node, operatorField, source)
	if operatorText == "" {
		return ""
	}
	if parameterCount(node) == 1 {
		if name, known := unaryOperatorNames[operatorText]; known {
			return name
		}
	}
	if name, known := binaryOperatorNames[operatorText]; known {
		return name
	}
	return unaryOperatorNames[operatorText]
}

func eventFieldName(node *sitter.Node, source []byte, offset int) string {
	var declarators []*sitter.Node
	for childIndex := 0; childIndex < int(node.NamedChildCount()); childIndex++ {
		child := node.NamedChild(childIndex)
		if child == nil || child.Type() != variableDeclarationNodeType {
			continue
		}
		for declaratorIndex := 0; declaratorIndex < int(child.NamedChildCount()); declaratorIndex++ {
			declarator := child.NamedChild(declaratorIndex)
			if declarator != nil && declarator.Type() == variableDeclaratorNodeType {
				declarators = append(declarators, declarator)
			}
		}
	}
	if len(declarators) == 0 {
		return ""
	}
	chosen := declarators[0]
	for _, declarator := range declarators {
		if int(declarator.StartByte()) <= offset && offset <= int(declarator.EndByte()) {
			chosen = declarator
			break
		}
	}
	if name := fieldText(chosen, nameField, source); name != "" {
		return name
	}
	for childIndex := 0; childIndex < int(chosen.NamedChildCount()); childIndex++ {
		child := chosen.NamedChild(childIndex)
		if child != nil && child.Type() == identifierNodeType {
			return strings.TrimSpace(child.Content(source))
		}
	}
	return ""
}

func hasModifier(node *sitter.Node, source []byte, modifier string) bool {
	for childIndex := 0; childIndex < int(node.ChildCount()); childIndex++ {
		child := node.Child(childIndex)
		if child != nil && child.Type() == modifierNodeType && strings.TrimSpace(child.Content(source)) == modifier {
			return true
		}
	}
	return false
}

func hasChildOfType(node *sitter.Node, nodeType string) bool {
	for childIndex := 0; childIndex < int(node.ChildCount()); childIndex++ {
		child := node.Child(childIndex)
		if child != nil && child.Type() == nodeType {
			return true
		}
	}
	return false
}

func typeParameterCount(node *sitter.Node) int {
	for childIndex := 0; childIndex < int(node.NamedChildCount()); childIndex++ {
		child := node.NamedChild(childIndex)
		if child == nil || child.Type() != typeParameterListNodeType {
			continue
		}
		return countNamedChildren(child, typeParameterNodeType)
	}
	return 0
}

func parameterCount(node *sitter.Node) int {
	parameters := node.ChildByFieldName(parametersField)
	if parameters == nil {
		return 0
	}
	return countNamedChildren(parameters, parameterNodeType)
}

func countNamedChildren(node *sitter.Node, nodeType string) int {
	count := 0
	for childIndex := 0; childIndex < int(node.NamedChildCount()); childIndex++ {
		child := node.NamedChild(childIndex)
		if child != nil && child.Type() == nodeType {
			count++
		}
	}
	return count
}
