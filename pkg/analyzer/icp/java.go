package icp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cddtools/icp/pkg/models"
	"github.com/cddtools/icp/pkg/parser"
)

// javaScanner maps Java syntax onto ICP instances.
type javaScanner struct {
	*emitter
	resolver *couplingResolver
	source   []byte
}

var javaTypeKinds = map[string]bool{
	"class_declaration":     true,
	"interface_declaration": true,
	"enum_declaration":      true,
	"record_declaration":    true,
}

func (s *javaScanner) scan(root *sitter.Node) {
	parser.WalkTyped(root, s.source, func(node *sitter.Node, nodeType string, src []byte) bool {
		if node != root && javaTypeKinds[nodeType] {
			return false
		}

		switch nodeType {
		case "if_statement":
			s.ifStatement(node)
		case "switch_expression", "switch_statement":
			s.switchStatement(node)
		case "for_statement":
			s.emit(models.IcpCodeBranch, node, "for loop")
			s.condition(node.ChildByFieldName("condition"), "for condition")
		case "enhanced_for_statement":
			// A for-each has no boolean test.
			s.emit(models.IcpCodeBranch, node, "for-each loop")
		case "while_statement":
			s.emit(models.IcpCodeBranch, node, "while loop")
			s.condition(node.ChildByFieldName("condition"), "while condition")
		case "do_statement":
			s.emit(models.IcpCodeBranch, node, "do-while loop")
			s.condition(node.ChildByFieldName("condition"), "do-while condition")
		case "ternary_expression":
			s.emit(models.IcpCodeBranch, node, "ternary expression")
			s.condition(node.ChildByFieldName("condition"), "ternary condition")
		case "try_statement", "try_with_resources_statement":
			s.emit(models.IcpExceptionHandling, node, "try block")
		case "catch_clause":
			s.emit(models.IcpExceptionHandling, node, "catch clause")
		case "finally_clause":
			s.emit(models.IcpExceptionHandling, node, "finally block")
		case "type_identifier":
			emitReference(s.emitter, s.resolver, node, parser.GetNodeText(node, src))
		case "method_invocation":
			s.invocation(node)
		}
		return true
	})
}

// ifStatement scores the if itself, its condition, and a terminal else body.
// An else-if chain must not double count: the chained if scores itself when
// the walk reaches it.
func (s *javaScanner) ifStatement(node *sitter.Node) {
	s.emit(models.IcpCodeBranch, node, "if statement")
	s.condition(node.ChildByFieldName("condition"), "if condition")

	if alt := node.ChildByFieldName("alternative"); alt != nil && alt.Type() != "if_statement" {
		s.emit(models.IcpCodeBranch, alt, "else branch")
	}
}

// switchStatement scores the construct, its subject, and every arm.
func (s *javaScanner) switchStatement(node *sitter.Node) {
	s.emit(models.IcpCodeBranch, node, "switch statement")
	s.condition(node.ChildByFieldName("condition"), "switch subject")

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	parser.WalkTyped(body, s.source, func(label *sitter.Node, nodeType string, src []byte) bool {
		// Arms of a nested switch belong to that switch.
		if nodeType == "switch_expression" || nodeType == "switch_statement" {
			return false
		}
		if nodeType != "switch_label" {
			return true
		}
		if strings.HasPrefix(parser.GetNodeText(label, src), "default") {
			s.emit(models.IcpCodeBranch, label, "default arm")
		} else {
			s.emit(models.IcpCodeBranch, label, "case arm")
		}
		return false
	})
}

// condition scores a controlling expression: one CONDITION for the whole
// test plus one per logical operator found by a secondary walk.
func (s *javaScanner) condition(node *sitter.Node, description string) {
	if node == nil {
		return
	}
	s.emit(models.IcpCondition, node, description)

	parser.WalkTyped(node, s.source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if nodeType != "binary_expression" {
			return true
		}
		if op := n.ChildByFieldName("operator"); op != nil {
			switch op.Type() {
			case "&&", "||":
				s.emit(models.IcpCondition, op, "logical operator "+op.Type())
			}
		}
		return true
	})
}

// invocation extracts a static-call receiver as a coupling candidate, e.g.
// the Foo in Foo.bar(). Instance receivers are plain identifiers too, but
// the uppercase heuristic in the resolver filters those out.
func (s *javaScanner) invocation(node *sitter.Node) {
	object := node.ChildByFieldName("object")
	if object == nil || object.Type() != "identifier" {
		return
	}
	name := parser.GetNodeText(object, s.source)
	if startsUppercase(name) {
		emitReference(s.emitter, s.resolver, object, name)
	}
}
