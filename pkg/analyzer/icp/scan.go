package icp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cddtools/icp/pkg/config"
	"github.com/cddtools/icp/pkg/models"
	"github.com/cddtools/icp/pkg/parser"
)

// emitter accumulates ICP instances with weights resolved at creation time.
type emitter struct {
	weights   config.WeightMap
	instances []models.IcpInstance
}

func (e *emitter) emit(t models.IcpType, node *sitter.Node, description string) {
	weight, ok := e.weights[t.MetricKey()]
	if !ok {
		weight = t.DefaultWeight()
	}
	e.instances = append(e.instances, models.IcpInstance{
		Type:        t,
		Line:        node.StartPoint().Row + 1,
		Column:      node.StartPoint().Column + 1,
		Description: description,
		Weight:      weight,
	})
}

// scanType walks one declared type's subtree and emits every scored
// construct. Nested type declarations are skipped; they are scanned as their
// own classes.
func scanType(file *parser.FileInfo, decl *parser.TypeDecl, weights config.WeightMap, resolver *couplingResolver) []models.IcpInstance {
	e := &emitter{weights: weights}
	resolver.BeginClass(decl)

	switch file.Language {
	case parser.LangJava:
		s := &javaScanner{emitter: e, resolver: resolver, source: file.Source}
		s.scan(decl.Node)
	case parser.LangKotlin:
		s := &kotlinScanner{emitter: e, resolver: resolver, source: file.Source}
		s.scan(decl.Node)
	}

	return e.instances
}

// reference resolves a candidate name and emits a coupling instance when it
// classifies as internal or external.
func emitReference(e *emitter, resolver *couplingResolver, node *sitter.Node, name string) {
	switch resolver.Resolve(name) {
	case CouplingInternal:
		e.emit(models.IcpInternalCoupling, node, "internal reference to "+name)
	case CouplingExternal:
		e.emit(models.IcpExternalCoupling, node, "external reference to "+name)
	}
}
