// Package etreesink adapts sink.Sink onto github.com/beevik/etree, giving
// the balancer a ready-made tree to drive for round-trip tests, without
// htmlcore building its own DOM
// (the event sink contract is intentionally tree-agnostic). Grounded on
// dpotapov-go-pages's direct etree usage (chtml/component.go), which builds
// and walks an *etree.Document the same way this sink assembles one event
// at a time.
package etreesink

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/MeKo-Christian/htmlcore/sink"
)

// Sink accumulates a balanced event stream into an *etree.Document. The
// document's pseudo-root (etree.Document embeds *etree.Element) holds
// top-level siblings — the doctype directive, comments before/after the
// root element, and the <html> element itself — exactly the shape a
// single open-element stack produces.
type Sink struct {
	Document *etree.Document

	stack []*etree.Element
	inCDATA bool
}

// New returns a Sink ready to receive a parse's event stream.
func New() *Sink {
	doc := etree.NewDocument()
	return &Sink{Document: doc, stack: []*etree.Element{doc.Element}}
}

func (s *Sink) current() *etree.Element {
	return s.stack[len(s.stack)-1]
}

func (s *Sink) StartDocument(encodingName string, namespaceAware bool, aug sink.Augment) error {
	return nil
}

func (s *Sink) XMLDecl(version, encodingName string, standalone *bool, aug sink.Augment) error {
	var b strings.Builder
	fmt.Fprintf(&b, `version="%s"`, version)
	if encodingName != "" {
		fmt.Fprintf(&b, ` encoding="%s"`, encodingName)
	}
	if standalone != nil {
		fmt.Fprintf(&b, ` standalone="%s"`, yesNo(*standalone))
	}
	s.current().CreateProcInst("xml", b.String())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (s *Sink) DoctypeDecl(name, publicID, systemID string, forceQuirks bool, aug sink.Augment) error {
	var b strings.Builder
	b.WriteString("DOCTYPE ")
	b.WriteString(name)
	switch {
	case publicID != "":
		fmt.Fprintf(&b, ` PUBLIC %q`, publicID)
		if systemID != "" {
			fmt.Fprintf(&b, " %q", systemID)
		}
	case systemID != "":
		fmt.Fprintf(&b, ` SYSTEM %q`, systemID)
	}
	s.current().CreateDirective(b.String())
	return nil
}

// qname folds the sink-level (name, namespaceURI) pair into a single etree
// tag, prefixing foreign-content elements for readability in dumped trees;
// this sink targets round-trip structure checks, not strict XML namespace
// serialization or DTD validation.
func qname(name, namespaceURI string) string {
	switch namespaceURI {
	case "http://www.w3.org/2000/svg":
		return "svg:" + name
	case "http://www.w3.org/1998/Math/MathML":
		return "math:" + name
	default:
		return name
	}
}

func (s *Sink) StartElement(name, namespaceURI string, attrs []sink.Attr, aug sink.Augment) error {
	el := s.current().CreateElement(qname(name, namespaceURI))
	for _, a := range attrs {
		el.CreateAttr(a.QName(), a.Value)
	}
	s.stack = append(s.stack, el)
	return nil
}

func (s *Sink) EndElement(name, namespaceURI string, aug sink.Augment) error {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
	return nil
}

func (s *Sink) Characters(data string, aug sink.Augment) error {
	if s.inCDATA {
		s.current().CreateCData(data)
	} else {
		s.current().CreateCharData(data)
	}
	return nil
}

func (s *Sink) Comment(data string, aug sink.Augment) error {
	s.current().CreateComment(data)
	return nil
}

func (s *Sink) ProcessingInstruction(target, data string, aug sink.Augment) error {
	s.current().CreateProcInst(target, data)
	return nil
}

func (s *Sink) StartCDATA(aug sink.Augment) error {
	s.inCDATA = true
	return nil
}

func (s *Sink) EndCDATA(aug sink.Augment) error {
	s.inCDATA = false
	return nil
}

// StartGeneralEntity and EndGeneralEntity bracket an entity reference whose
// expansion already arrives as ordinary Characters events; an etree
// document has no entity-reference node of its own, so these are no-ops.
func (s *Sink) StartGeneralEntity(name string, aug sink.Augment) error { return nil }
func (s *Sink) EndGeneralEntity(aug sink.Augment) error { return nil }

func (s *Sink) EndDocument(aug sink.Augment) error { return nil }

// String renders the accumulated document, indented, for dumps and test
// fixtures.
func (s *Sink) String() (string, error) {
	s.Document.Indent(2)
	return s.Document.WriteToString()
}

var _ sink.Sink = (*Sink)(nil)
