package balancer

import (
	"github.com/MeKo-Christian/htmlcore/internal/catalog"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// pushNamespaceFrameFromSinkAttrs implements the "Namespaces" rule: a
// scoped prefix→URI table, pushed alongside every element when
// Options.NamespaceAware is set. insertElement consults the default binding
// only when it is given an empty namespace, and every caller passes one
// explicitly, so an ordinary start tag's xmlns declaration does not change
// the namespace it is reported in. tokenAttrs never sets Attr.Prefix, so
// `xmlns:p` declarations are not recorded as prefix bindings. SVG/MathML
// elements take their namespace from the foreign-content machinery in
// foreign.go. The `xml` and `xmlns` prefixes are pre-bound and cannot be
// rebound; `xmlns=""` removes the default binding from the frame.
func (b *Balancer) pushNamespaceFrameFromSinkAttrs(attrs []sink.Attr) {
	bindings := map[string]string{"": catalog.NamespaceHTML, "xml": catalog.NamespaceXML, "xmlns": catalog.NamespaceXMLNS}
	if len(b.nsStack) > 0 {
		for k, v := range b.nsStack[len(b.nsStack)-1].bindings {
			bindings[k] = v
		}
	}
	for _, a := range attrs {
		if a.LocalName == "xmlns" && a.Prefix == "" {
			if a.Value == "" {
				delete(bindings, "")
			} else {
				bindings[""] = a.Value
			}
			continue
		}
		if a.Prefix == "xmlns" {
			if a.LocalName == "xml" || a.LocalName == "xmlns" {
				continue
			}
			bindings[a.LocalName] = a.Value
		}
	}
	b.nsStack = append(b.nsStack, nsFrame{bindings: bindings})
}

func (b *Balancer) popNamespaceFrame() {
	if len(b.nsStack) > 0 {
		b.nsStack = b.nsStack[:len(b.nsStack)-1]
	}
}

// currentDefaultNamespace returns the default (unprefixed) namespace URI in
// the innermost scope, or the HTML namespace if no frame has been pushed
// yet (document start).
func (b *Balancer) currentDefaultNamespace() string {
	if len(b.nsStack) == 0 {
		return catalog.NamespaceHTML
	}
	return b.nsStack[len(b.nsStack)-1].bindings[""]
}
