package javaparse

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// statementNodeTypes are the Java AST node types counted as statements in
// the structural digest. Comments and string literals are distinct node
// types and therefore never counted, even when their text looks like code.
var statementNodeTypes = []string{
	"expression_statement",
	"local_variable_declaration",
	"if_statement",
	"for_statement",
	"enhanced_for_statement",
	"while_statement",
	"do_statement",
	"switch_expression",
	"try_statement",
	"try_with_resources_statement",
	"return_statement",
	"throw_statement",
	"break_statement",
	"continue_statement",
	"synchronized_statement",
	"assert_statement",
	"yield_statement",
	"labeled_statement",
}

// controlFlowNodeTypes are the conditional and loop constructs whose
// presence sets HasControlFlow.
var controlFlowNodeTypes = []string{
	"if_statement",
	"for_statement",
	"enhanced_for_statement",
	"while_statement",
	"do_statement",
	"switch_expression",
	"try_statement",
	"try_with_resources_statement",
}

// countStatements counts top-level and nested statements in a method body.
func countStatements(body *sitter.Node) int {
	return len(findNodes(body, statementNodeTypes))
}

// hasControlFlow reports whether the body contains any conditional or loop
// construct, at any nesting depth.
func hasControlFlow(body *sitter.Node) bool {
	var found bool

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil || found {
			return
		}
		if contains(controlFlowNodeTypes, node.Type()) {
			found = true
			return
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	walk(body)
	return found
}
