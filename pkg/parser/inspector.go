package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Import is a single import declaration.
type Import struct {
	Path     string
	Wildcard bool
}

// FunctionDecl is a named function or constructor declared by a type.
type FunctionDecl struct {
	Name      string
	StartLine uint32
	EndLine   uint32
	Node      *sitter.Node
}

// TypeDecl is a declared class, interface, enum, record, or object. Nested
// types appear as separate declarations; a nested type's methods belong to
// the nested type, not the enclosing one.
type TypeDecl struct {
	Name      string
	Package   string
	StartLine uint32
	EndLine   uint32
	Node      *sitter.Node
	Methods   []FunctionDecl
}

// FileInfo is the facade view of a parsed file consumed by the scanners.
type FileInfo struct {
	Path           string
	Language       Language
	Package        string
	Imports        []Import
	Types          []TypeDecl
	Source         []byte
	HasSyntaxError bool
}

// Inspect extracts the declared types, member functions, package, and
// imports from a parse result.
func Inspect(result *ParseResult) *FileInfo {
	root := result.Tree.RootNode()
	info := &FileInfo{
		Path:           result.Path,
		Language:       result.Language,
		Source:         result.Source,
		HasSyntaxError: root.HasError(),
	}

	info.Package = extractPackage(root, result.Source, result.Language)
	info.Imports = extractImports(root, result.Source, result.Language)

	typeKinds := typeNodeTypes(result.Language)
	funcKinds := functionNodeTypes(result.Language)

	Walk(root, result.Source, func(node *sitter.Node, source []byte) bool {
		if !typeKinds[node.Type()] {
			return true
		}
		decl := TypeDecl{
			Name:      typeName(node, source, result.Language),
			Package:   info.Package,
			StartLine: node.StartPoint().Row + 1,
			EndLine:   node.EndPoint().Row + 1,
			Node:      node,
		}
		decl.Methods = memberFunctions(node, source, typeKinds, funcKinds, result.Language)
		info.Types = append(info.Types, decl)
		return true // Descend so nested types are declared separately.
	})

	return info
}

// memberFunctions collects the functions whose nearest enclosing type is the
// given declaration, so nested types keep their own methods.
func memberFunctions(typeNode *sitter.Node, source []byte, typeKinds, funcKinds map[string]bool, lang Language) []FunctionDecl {
	var methods []FunctionDecl
	Walk(typeNode, source, func(node *sitter.Node, source []byte) bool {
		if node != typeNode && typeKinds[node.Type()] {
			return false
		}
		if !funcKinds[node.Type()] {
			return true
		}
		methods = append(methods, FunctionDecl{
			Name:      functionName(node, source, lang),
			StartLine: node.StartPoint().Row + 1,
			EndLine:   node.EndPoint().Row + 1,
			Node:      node,
		})
		return true
	})
	return methods
}

func typeNodeTypes(lang Language) map[string]bool {
	switch lang {
	case LangJava:
		return map[string]bool{
			"class_declaration":     true,
			"interface_declaration": true,
			"enum_declaration":      true,
			"record_declaration":    true,
		}
	case LangKotlin:
		return map[string]bool{
			"class_declaration":  true,
			"object_declaration": true,
		}
	default:
		return nil
	}
}

func functionNodeTypes(lang Language) map[string]bool {
	switch lang {
	case LangJava:
		return map[string]bool{
			"method_declaration":      true,
			"constructor_declaration": true,
		}
	case LangKotlin:
		return map[string]bool{
			"function_declaration":  true,
			"secondary_constructor": true,
		}
	default:
		return nil
	}
}

func typeName(node *sitter.Node, source []byte, lang Language) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return GetNodeText(nameNode, source)
	}
	// The Kotlin grammar exposes no name field; the identifier is a child.
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if child.Type() == "type_identifier" || child.Type() == "simple_identifier" {
			return GetNodeText(child, source)
		}
	}
	return ""
}

func functionName(node *sitter.Node, source []byte, lang Language) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return GetNodeText(nameNode, source)
	}
	if lang == LangKotlin {
		if node.Type() == "secondary_constructor" {
			return "constructor"
		}
		for i := range int(node.ChildCount()) {
			child := node.Child(i)
			if child.Type() == "simple_identifier" {
				return GetNodeText(child, source)
			}
		}
	}
	return ""
}

func extractPackage(root *sitter.Node, source []byte, lang Language) string {
	packageKind := "package_declaration"
	if lang == LangKotlin {
		packageKind = "package_header"
	}

	var pkg string
	Walk(root, source, func(node *sitter.Node, source []byte) bool {
		if pkg != "" {
			return false
		}
		if node.Type() != packageKind {
			// Package declarations sit at the top level only.
			return node.Type() == root.Type()
		}
		for i := range int(node.ChildCount()) {
			child := node.Child(i)
			switch child.Type() {
			case "identifier", "scoped_identifier":
				pkg = GetNodeText(child, source)
				return false
			}
		}
		return false
	})
	return pkg
}

func extractImports(root *sitter.Node, source []byte, lang Language) []Import {
	importKind := "import_declaration"
	if lang == LangKotlin {
		importKind = "import_header"
	}

	var imports []Import
	Walk(root, source, func(node *sitter.Node, source []byte) bool {
		if node.Type() != importKind {
			return node.Type() == root.Type() || node.Type() == "import_list"
		}
		imp := Import{}
		for i := range int(node.ChildCount()) {
			child := node.Child(i)
			switch child.Type() {
			case "identifier", "scoped_identifier":
				imp.Path = GetNodeText(child, source)
			case "asterisk", ".*", "*", "wildcard_import":
				imp.Wildcard = true
			}
		}
		if imp.Path != "" {
			imports = append(imports, imp)
		}
		return false
	})
	return imports
}
