package balancer

import (
	"strings"

	"github.com/MeKo-Christian/htmlcore/internal/catalog"
	"github.com/MeKo-Christian/htmlcore/scanner"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// shouldUseForeignContent reports whether tok should be processed under
// the foreign-content rules rather than the current insertion mode's
// ordinary HTML rules, grounded on the prior shouldUseForeignContent
// (treebuilder/foreign.go). Only consulted when Options.NamespaceAware is
// set, since a caller that never asked for namespace support gets no SVG/
// MathML adjustment at all.
func (b *Balancer) shouldUseForeignContent(tok scanner.Token) bool {
	current := b.currentEntry()
	if current == nil || current.namespace == catalog.NamespaceHTML {
		return false
	}
	if tok.Kind == scanner.EOFToken {
		return false
	}

	if isMathMLTextIntegrationPoint(*current) {
		if tok.Kind == scanner.Characters {
			return false
		}
		if tok.Kind == scanner.StartTag && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
	}

	if current.namespace == catalog.NamespaceMathML && current.name == "annotation-xml" {
		if tok.Kind == scanner.StartTag && tok.Name == "svg" {
			return false
		}
	}

	if isIntegrationPoint(*current) {
		if tok.Kind == scanner.Characters || tok.Kind == scanner.StartTag {
			return false
		}
	}

	return true
}

func isMathMLTextIntegrationPoint(e stackEntry) bool {
	return catalog.MathMLTextIntegrationPoints[catalog.IntegrationPoint{Namespace: e.namespace, LocalName: e.name}]
}

// processForeignContentToken implements the foreign-content
// branch, grounded on the prior processForeignContent
// (treebuilder/foreign.go). Returns (reprocess, err); reprocess asks
// processToken's loop to re-run tok through the ordinary mode dispatch
// (used for the HTML breakout cases).
func (b *Balancer) processForeignContentToken(tok scanner.Token) (bool, error) {
	current := b.currentEntry()
	if current == nil {
		return false, nil
	}

	switch tok.Kind {
	case scanner.Characters:
		if tok.Data == "" {
			return false, nil
		}
		data := strings.ReplaceAll(tok.Data, "\x00", "�")
		if !isAllWhitespace(data) {
			b.framesetOK = false
		}
		return false, b.insertText(data, false)
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.CDATA:
		return false, b.insertCDATA(tok.Data)
	case scanner.StartTag:
		if catalog.ForeignBreakoutElements[tok.Name] || (tok.Name == "font" && foreignBreakoutFont(tok)) {
			b.popUntilHTMLOrIntegrationPoint()
			b.resetInsertionModeAppropriately()
			return true, nil
		}
		namespace := current.namespace
		name := tok.Name
		if namespace == catalog.NamespaceSVG {
			if adj, ok := catalog.SVGTagNameAdjustments[strings.ToLower(tok.Name)]; ok {
				name = adj
			}
		}
		attrs := adjustForeignAttrs(namespace, tokenAttrs(tok))
		if err := b.insertElement(name, attrs, namespace, false); err != nil {
			return false, err
		}
		if tok.SelfClosing {
			b.popCurrent()
		}
		return false, nil
	case scanner.EndTag:
		if tok.Name == "br" || tok.Name == "p" {
			b.popUntilHTMLOrIntegrationPoint()
			b.resetInsertionModeAppropriately()
			return true, nil
		}
		for i := len(b.openElements) - 1; i >= 0; i-- {
			e := b.openElements[i]
			isHTML := e.namespace == catalog.NamespaceHTML
			if strings.EqualFold(e.name, tok.Name) {
				if isHTML {
					return true, nil
				}
				for len(b.openElements) > i {
					popped := b.popCurrent()
					if err := b.sink.EndElement(popped.name, popped.namespace, sink.AugmentSynthesized()); err != nil {
						return false, err
					}
				}
				return false, nil
			}
			if isHTML {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, nil
	}
}

func (b *Balancer) popUntilHTMLOrIntegrationPoint() {
	for len(b.openElements) > 0 {
		e := *b.currentEntry()
		if e.namespace == catalog.NamespaceHTML || isIntegrationPoint(e) {
			return
		}
		b.popCurrent()
	}
}

func foreignBreakoutFont(tok scanner.Token) bool {
	for _, a := range tok.Attrs {
		switch strings.ToLower(a.Name) {
		case "color", "face", "size":
			return true
		}
	}
	return false
}

// adjustForeignAttrs applies the per-namespace camelCase corrections and
// the xlink:/xml:/xmlns: prefix splits the Namespaces section
// requires when NamespaceAware is on, grounded on the prior
// prepareForeignAttributes (treebuilder/foreign.go).
func adjustForeignAttrs(namespace string, attrs []sink.Attr) []sink.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]sink.Attr, 0, len(attrs))
	for _, a := range attrs {
		lower := strings.ToLower(a.LocalName)
		name := a.LocalName
		switch namespace {
		case catalog.NamespaceMathML:
			if adj, ok := catalog.MathMLAttributeAdjustments[lower]; ok {
				name = adj
				lower = strings.ToLower(name)
			}
		case catalog.NamespaceSVG:
			if adj, ok := catalog.SVGAttributeAdjustments[lower]; ok {
				name = adj
				lower = strings.ToLower(name)
			}
		}
		if fa, ok := catalog.ForeignAttributeAdjustments[lower]; ok {
			out = append(out, sink.Attr{Prefix: fa.Prefix, LocalName: fa.LocalName, NamespaceURL: fa.NamespaceURL, Value: a.Value})
			continue
		}
		out = append(out, sink.Attr{LocalName: name, Value: a.Value})
	}
	return out
}
