package icp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cddtools/icp/pkg/models"
	"github.com/cddtools/icp/pkg/parser"
)

// kotlinScanner maps Kotlin syntax onto ICP instances. Kotlin has no
// ternary, but adds the elvis operator and safe-call navigation, both scored
// as a branch plus a condition per occurrence.
type kotlinScanner struct {
	*emitter
	resolver *couplingResolver
	source   []byte
}

var kotlinTypeKinds = map[string]bool{
	"class_declaration":  true,
	"object_declaration": true,
}

func (s *kotlinScanner) scan(root *sitter.Node) {
	parser.WalkTyped(root, s.source, func(node *sitter.Node, nodeType string, src []byte) bool {
		if node != root && kotlinTypeKinds[nodeType] {
			return false
		}

		switch nodeType {
		case "if_expression":
			s.ifExpression(node)
		case "when_expression":
			s.whenExpression(node)
		case "for_statement":
			// Kotlin's for is a for-each; it has no boolean test.
			s.emit(models.IcpCodeBranch, node, "for loop")
		case "while_statement":
			s.emit(models.IcpCodeBranch, node, "while loop")
			s.condition(controlExpression(node), "while condition")
		case "do_while_statement":
			s.emit(models.IcpCodeBranch, node, "do-while loop")
			s.condition(controlExpression(node), "do-while condition")
		case "elvis_expression":
			s.emit(models.IcpCodeBranch, node, "elvis operator")
			s.emit(models.IcpCondition, node, "elvis null test")
		case "navigation_suffix":
			if isSafeNavigation(node) {
				s.emit(models.IcpCodeBranch, node, "safe call")
				s.emit(models.IcpCondition, node, "safe call null test")
			}
		case "try_expression":
			s.emit(models.IcpExceptionHandling, node, "try block")
		case "catch_block":
			s.emit(models.IcpExceptionHandling, node, "catch block")
		case "finally_block":
			s.emit(models.IcpExceptionHandling, node, "finally block")
		case "type_identifier":
			emitReference(s.emitter, s.resolver, node, parser.GetNodeText(node, src))
		case "call_expression":
			s.call(node)
		}
		return true
	})
}

// ifExpression scores the if itself, its test, and a terminal else body.
// The grammar exposes no condition or alternative fields on if_expression,
// so both are located positionally.
func (s *kotlinScanner) ifExpression(node *sitter.Node) {
	s.emit(models.IcpCodeBranch, node, "if expression")
	s.condition(controlExpression(node), "if condition")

	if alt := elseBranch(node); alt != nil {
		s.emit(models.IcpCodeBranch, alt, "else branch")
	}
}

// elseBranch returns the body following the else keyword, or nil when there
// is no else or the else chains into another if. A chained if scores itself
// when the walk reaches it.
func elseBranch(node *sitter.Node) *sitter.Node {
	sawElse := false
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if child.Type() == "else" {
			sawElse = true
			continue
		}
		if !sawElse || !child.IsNamed() {
			continue
		}
		if wrapsIfExpression(child) {
			return nil
		}
		return child
	}
	return nil
}

// wrapsIfExpression reports whether a node is an if_expression or a
// control_structure_body whose only statement is one.
func wrapsIfExpression(node *sitter.Node) bool {
	if node.Type() == "if_expression" {
		return true
	}
	if node.Type() != "control_structure_body" {
		return false
	}
	return node.NamedChildCount() == 1 && node.NamedChild(0).Type() == "if_expression"
}

// whenExpression scores the construct, its subject if present, and every
// entry. Entries of a nested when are reached by the main walk.
func (s *kotlinScanner) whenExpression(node *sitter.Node) {
	s.emit(models.IcpCodeBranch, node, "when expression")

	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		switch child.Type() {
		case "when_subject":
			s.condition(child, "when subject")
		case "when_entry":
			if isElseEntry(child) {
				s.emit(models.IcpCodeBranch, child, "else arm")
			} else {
				s.emit(models.IcpCodeBranch, child, "when arm")
			}
		}
	}
}

func isElseEntry(entry *sitter.Node) bool {
	for i := range int(entry.ChildCount()) {
		if entry.Child(i).Type() == "else" {
			return true
		}
	}
	return false
}

// condition scores a controlling expression plus one CONDITION per logical
// operator in its subtree.
func (s *kotlinScanner) condition(node *sitter.Node, description string) {
	if node == nil {
		return
	}
	s.emit(models.IcpCondition, node, description)

	parser.WalkTyped(node, s.source, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "conjunction_expression":
			s.emit(models.IcpCondition, n, "logical operator &&")
		case "disjunction_expression":
			s.emit(models.IcpCondition, n, "logical operator ||")
		}
		return true
	})
}

// call extracts a coupling candidate from a call target: a direct
// constructor-style call Foo(...) or a qualified receiver Foo.bar(...).
func (s *kotlinScanner) call(node *sitter.Node) {
	target := node.Child(0)
	if target == nil {
		return
	}
	if target.Type() == "navigation_expression" {
		target = target.Child(0)
	}
	if target == nil || target.Type() != "simple_identifier" {
		return
	}
	name := parser.GetNodeText(target, s.source)
	if startsUppercase(name) {
		emitReference(s.emitter, s.resolver, target, name)
	}
}

// controlExpression finds the test between the parentheses of an if or a
// loop. The grammar exposes no field for it, so take the first named child
// that is not the body.
func controlExpression(node *sitter.Node) *sitter.Node {
	if cond := node.ChildByFieldName("condition"); cond != nil {
		return cond
	}
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if child.IsNamed() && child.Type() != "control_structure_body" {
			return child
		}
	}
	return nil
}

// isSafeNavigation reports whether a navigation suffix uses the `?.`
// operator rather than `.` or `::`.
func isSafeNavigation(node *sitter.Node) bool {
	for i := range int(node.ChildCount()) {
		switch node.Child(i).Type() {
		case "safe_nav", "?.":
			return true
		}
	}
	return false
}
