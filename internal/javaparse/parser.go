// Package javaparse parses Java source into method-level structural units
// using tree-sitter. It isolates the rest of the pipeline from the parsing
// library: consumers see only StructuralUnits, never AST nodes.
package javaparse

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// ErrInvalidSource marks a file that did not parse as Java. Callers treat it
// as a recoverable per-file parse failure, not a fatal condition.
var ErrInvalidSource = errors.New("source is not valid Java")

// StructuralParser is the narrow parsing contract the pipeline depends on,
// so the underlying parser can be swapped without affecting the scorer or
// the aggregation model.
type StructuralParser interface {
	Parse(ctx context.Context, sourceFile string, source []byte) ([]StructuralUnit, error)
}

// Parser wraps a tree-sitter parser configured with the Java grammar.
// A Parser is not safe for concurrent use; create one per worker.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Java structural parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses Java source text and returns one StructuralUnit per class,
// interface, or enum declaration, nested types included. A syntactically
// broken file yields ErrInvalidSource and zero units.
func (p *Parser) Parse(ctx context.Context, sourceFile string, source []byte) ([]StructuralUnit, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrInvalidSource
	}

	typeNodes := findNodes(root, typeDeclarationTypes)

	units := make([]StructuralUnit, 0, len(typeNodes))
	for _, node := range typeNodes {
		unit := extractUnit(node, source, sourceFile)
		if unit.ClassName == "" {
			continue
		}
		units = append(units, unit)
	}

	return units, nil
}

// typeDeclarationTypes are the AST node types that produce a StructuralUnit.
var typeDeclarationTypes = []string{
	"class_declaration",
	"interface_declaration",
	"enum_declaration",
}

// extractUnit builds a StructuralUnit from a type declaration node. Methods
// are taken from the type's own body only; nested types produce their own
// units and are never double-counted under the enclosing class.
func extractUnit(node *sitter.Node, source []byte, sourceFile string) StructuralUnit {
	unit := StructuralUnit{
		Kind:       typeKind(node),
		SourceFile: sourceFile,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		unit.ClassName = string(source[name.StartByte():name.EndByte()])
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return unit
	}

	for i := uint32(0); i < body.ChildCount(); i++ {
		child := body.Child(int(i))
		if child == nil || child.Type() != "method_declaration" {
			continue
		}
		unit.Methods = append(unit.Methods, extractMethod(child, source))
	}

	return unit
}

// extractMethod captures a method's name, visibility, and structural digest.
func extractMethod(node *sitter.Node, source []byte) MethodUnit {
	m := MethodUnit{
		Visibility: methodVisibility(node),
		StartLine:  int(node.StartPoint().Row) + 1,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		m.Name = string(source[name.StartByte():name.EndByte()])
	}

	if body := node.ChildByFieldName("body"); body != nil {
		m.StatementCount = countStatements(body)
		m.HasControlFlow = hasControlFlow(body)
	}

	return m
}

// methodVisibility reads the declared visibility from the modifiers node.
// Java methods without an access modifier are package-private.
func methodVisibility(node *sitter.Node) Visibility {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil || child.Type() != "modifiers" {
			continue
		}
		for j := uint32(0); j < child.ChildCount(); j++ {
			mod := child.Child(int(j))
			if mod == nil {
				continue
			}
			switch mod.Type() {
			case "public":
				return VisibilityPublic
			case "private":
				return VisibilityPrivate
			case "protected":
				return VisibilityProtected
			}
		}
	}
	return VisibilityPackage
}

func typeKind(node *sitter.Node) string {
	switch node.Type() {
	case "interface_declaration":
		return "interface"
	case "enum_declaration":
		return "enum"
	default:
		return "class"
	}
}

// findNodes finds all nodes of the given types in the AST.
func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		if contains(types, node.Type()) {
			result = append(result, node)
		}

		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	walk(root)
	return result
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
