package icp

import (
	"strings"
	"unicode"

	"github.com/cddtools/icp/pkg/config"
	"github.com/cddtools/icp/pkg/parser"
)

// CouplingKind is the outcome of resolving a referenced name.
type CouplingKind int

const (
	// CouplingNone means the reference is not scored: a built-in name, a
	// self-reference, an already-seen name, or external tracking disabled.
	CouplingNone CouplingKind = iota
	CouplingInternal
	CouplingExternal
)

// couplingResolver classifies referenced type and call names as internal or
// external to the project. Resolution is a heuristic over imports and
// configured package prefixes, not semantic analysis: false positives and
// negatives on ambiguous wildcard imports are expected behavior.
//
// Each distinct resolved name is counted at most once per analyzed class;
// BeginClass resets the seen set.
type couplingResolver struct {
	coupling *config.CouplingConfig
	file     *parser.FileInfo

	declared         map[string]bool
	internalWildcard bool
	externalWildcard bool

	className      string
	qualifiedClass string
	seen           map[string]bool
}

func newCouplingResolver(coupling *config.CouplingConfig, file *parser.FileInfo) *couplingResolver {
	r := &couplingResolver{
		coupling: coupling,
		file:     file,
		declared: make(map[string]bool, len(file.Types)),
	}
	for _, decl := range file.Types {
		r.declared[decl.Name] = true
	}
	for _, imp := range file.Imports {
		if !imp.Wildcard {
			continue
		}
		if r.hasInternalPrefix(imp.Path) {
			r.internalWildcard = true
		} else {
			r.externalWildcard = true
		}
	}
	return r
}

// BeginClass switches the resolver to a new class and resets deduplication.
func (r *couplingResolver) BeginClass(decl *parser.TypeDecl) {
	r.className = decl.Name
	r.qualifiedClass = decl.Name
	if decl.Package != "" {
		r.qualifiedClass = decl.Package + "." + decl.Name
	}
	r.seen = make(map[string]bool)
}

// Resolve classifies a candidate name. The first occurrence of a name wins;
// repeats yield CouplingNone.
func (r *couplingResolver) Resolve(name string) CouplingKind {
	if name == "" || r.seen[name] {
		return CouplingNone
	}
	r.seen[name] = true

	// Never flag the class currently being analyzed.
	if name == r.className || name == r.qualifiedClass {
		return CouplingNone
	}
	if builtinNames[name] {
		return CouplingNone
	}

	// An explicit import (or an already-dotted name) classifies decisively.
	if qualified := r.qualify(name); qualified != "" {
		if r.hasInternalPrefix(qualified) {
			return CouplingInternal
		}
		if r.coupling.TrackExternal {
			return CouplingExternal
		}
		return CouplingNone
	}

	if !strings.Contains(name, ".") && startsUppercase(name) {
		if r.declared[name] {
			return CouplingInternal
		}
		// A wildcard import from a package outside every internal prefix
		// makes an unqualified name ambiguous; prefer external then.
		if !r.externalWildcard {
			if r.hasInternalPrefix(r.file.Package) && r.file.Package != "" {
				return CouplingInternal
			}
			if r.internalWildcard {
				return CouplingInternal
			}
		}
	}

	if r.coupling.TrackExternal {
		return CouplingExternal
	}
	return CouplingNone
}

// qualify maps a name to its fully qualified form: directly when it is
// already dotted, otherwise through an explicit (non-wildcard) import.
func (r *couplingResolver) qualify(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	for _, imp := range r.file.Imports {
		if !imp.Wildcard && strings.HasSuffix(imp.Path, "."+name) {
			return imp.Path
		}
	}
	return ""
}

func (r *couplingResolver) hasInternalPrefix(qualified string) bool {
	if qualified == "" {
		return false
	}
	for _, prefix := range r.coupling.Packages {
		if strings.HasPrefix(qualified, prefix) {
			return true
		}
	}
	return false
}

func startsUppercase(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// builtinNames is the allow-list of standard-library and language names that
// never count as coupling: primitives, common collections, common exception
// types, and common top-level calls.
var builtinNames = buildSet(
	// JDK primitives and core types
	"String", "CharSequence", "Object", "Integer", "Long", "Short", "Byte",
	"Double", "Float", "Boolean", "Character", "Number", "Void", "Math",
	"System", "Objects", "Arrays", "Collections", "StringBuilder",
	"StringBuffer", "Optional", "Stream", "Thread", "Runnable", "Iterable",
	"Iterator", "Comparable", "Comparator", "Class", "Enum", "Record",
	// JDK collections
	"List", "Map", "Set", "Queue", "Deque", "ArrayList", "LinkedList",
	"HashMap", "LinkedHashMap", "TreeMap", "HashSet", "LinkedHashSet",
	"TreeSet", "ArrayDeque",
	// Common exceptions
	"Exception", "RuntimeException", "Error", "Throwable",
	"IllegalArgumentException", "IllegalStateException",
	"NullPointerException", "IndexOutOfBoundsException",
	"UnsupportedOperationException", "IOException", "InterruptedException",
	// Kotlin core types
	"Any", "Unit", "Nothing", "Int", "Char", "Array", "Pair", "Triple",
	"Result", "Sequence", "Regex", "MutableList", "MutableMap", "MutableSet",
	"IntArray", "LongArray", "DoubleArray", "BooleanArray", "CharArray",
	"ByteArray", "FloatArray", "ShortArray", "Lazy",
	// Common top-level calls
	"listOf", "mapOf", "setOf", "mutableListOf", "mutableMapOf",
	"mutableSetOf", "arrayOf", "arrayListOf", "emptyList", "emptyMap",
	"emptySet", "println", "print", "require", "requireNotNull", "check",
	"checkNotNull", "error", "lazy", "run", "let", "also", "apply", "with",
	"takeIf", "takeUnless", "repeat", "TODO",
)

func buildSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
