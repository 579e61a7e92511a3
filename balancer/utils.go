package balancer

import (
	"github.com/MeKo-Christian/htmlcore/internal/catalog"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// hasElementInScope walks the open-element stack top-down looking for name,
// implementing the HTML5 scope algorithm for end tags, stopping at the
// first entry in scope. Grounded on the prior hasElementInScopeInternal
// (treebuilder/utils.go), minus template-content/foreign-integration-point
// edge cases the prior full tree needs and this flatter model doesn't.
func (b *Balancer) hasElementInScope(name string, scope map[string]bool) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		e := b.openElements[i]
		if e.namespace == catalog.NamespaceHTML && e.name == name {
			return true
		}
		if e.namespace == catalog.NamespaceHTML && scope[e.name] {
			return false
		}
		if e.namespace != catalog.NamespaceHTML && isIntegrationPoint(e) {
			return false
		}
	}
	return false
}

func (b *Balancer) hasElementInTableScope(name string) bool {
	return b.hasElementInScope(name, catalog.TableScope)
}

func (b *Balancer) hasElementInButtonScope(name string) bool {
	return b.hasElementInScope(name, catalog.ButtonScope)
}

func (b *Balancer) hasElementInListItemScope(name string) bool {
	return b.hasElementInScope(name, catalog.ListItemScope)
}

func (b *Balancer) hasAnyElementInScope(names map[string]bool, scope map[string]bool) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		e := b.openElements[i]
		if e.namespace == catalog.NamespaceHTML && names[e.name] {
			return true
		}
		if e.namespace == catalog.NamespaceHTML && scope[e.name] {
			return false
		}
		if e.namespace != catalog.NamespaceHTML && isIntegrationPoint(e) {
			return false
		}
	}
	return false
}

var headingNames = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

// generateImpliedEndTags closes elements the Implicit-open rules mark
// as optional (dd, dt, li, optgroup, option, p, plus ruby annotations),
// per the prior generateImpliedEndTags (treebuilder/utils.go).
func (b *Balancer) generateImpliedEndTags(except string) error {
	for len(b.openElements) > 0 {
		name := b.currentName()
		if !catalog.ImpliesCloseOnParent(name) || name == except {
			return nil
		}
		if err := b.popAndClose(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Balancer) generateImpliedEndTagsThoroughly() error {
	for len(b.openElements) > 0 {
		name := b.currentName()
		if !catalog.ThoroughlyImplied(name) {
			return nil
		}
		if err := b.popAndClose(); err != nil {
			return err
		}
	}
	return nil
}

// popAndClose pops the current element and emits its EndElement event,
// marked synthesized since the balancer (not the scanner) decided to close
// it.
func (b *Balancer) popAndClose() error {
	e := b.popCurrent()
	return b.sink.EndElement(e.name, e.namespace, sink.AugmentSynthesized())
}

// closeElementsUntil pops the stack, emitting synthesized EndElement events,
// until (and including) an element named name is popped.
func (b *Balancer) closeElementsUntil(name string) error {
	for len(b.openElements) > 0 {
		e := b.popCurrent()
		if err := b.sink.EndElement(e.name, e.namespace, sink.AugmentSynthesized()); err != nil {
			return err
		}
		if e.name == name {
			return nil
		}
	}
	return nil
}

func (b *Balancer) clearStackToTableContext() error {
	for len(b.openElements) > 0 {
		name := b.currentName()
		if name == "table" || name == "html" || name == "template" {
			return nil
		}
		if err := b.popAndClose(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Balancer) clearStackToTableBodyContext() error {
	for len(b.openElements) > 0 {
		switch b.currentName() {
		case "tbody", "tfoot", "thead", "template", "html":
			return nil
		}
		if err := b.popAndClose(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Balancer) clearStackToTableRowContext() error {
	for len(b.openElements) > 0 {
		switch b.currentName() {
		case "tr", "template", "html":
			return nil
		}
		if err := b.popAndClose(); err != nil {
			return err
		}
	}
	return nil
}

func isIntegrationPoint(e stackEntry) bool {
	if catalog.HTMLIntegrationPoints[catalog.IntegrationPoint{Namespace: e.namespace, LocalName: e.name}] {
		return true
	}
	return catalog.MathMLTextIntegrationPoints[catalog.IntegrationPoint{Namespace: e.namespace, LocalName: e.name}]
}

// resetInsertionModeAppropriately implements the fragment-parsing
// support: after the last node on the stack is processed, the mode is
// recomputed from stack contents rather than tracked incrementally,
// grounded on the prior resetInsertionModeAppropriately
// (treebuilder/utils.go), narrowed to the modes this balancer has.
func (b *Balancer) resetInsertionModeAppropriately() {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		e := b.openElements[i]
		last := i == 0
		name := e.name
		if b.fragmentContext != nil && last {
			name = b.fragmentContext.TagName
		}
		if e.namespace != catalog.NamespaceHTML {
			continue
		}
		switch name {
		case "select":
			b.mode = InSelect
			return
		case "td", "th":
			if !last {
				b.mode = InCell
				return
			}
		case "tr":
			b.mode = InRow
			return
		case "tbody", "thead", "tfoot":
			b.mode = InTableBody
			return
		case "caption":
			b.mode = InCaption
			return
		case "colgroup":
			b.mode = InColgroup
			return
		case "table":
			b.mode = InTable
			return
		case "head":
			b.mode = InHead
			return
		case "body":
			b.mode = InBody
			return
		case "html":
			if b.headSeen {
				b.mode = AfterHead
			} else {
				b.mode = InHead
			}
			return
		}
		if last {
			b.mode = InBody
			return
		}
	}
	b.mode = InBody
}
