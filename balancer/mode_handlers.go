package balancer

import (
	"strings"

	"github.com/MeKo-Christian/htmlcore/internal/catalog"
	"github.com/MeKo-Christian/htmlcore/perr"
	"github.com/MeKo-Christian/htmlcore/scanner"
)

// These handlers implement the insertion modes, grounded on the
// prior per-mode functions (treebuilder/mode_handlers.go) but narrowed
// to a 16-mode list: BeforeHead and InHeadNoscript fold into
// InHead (headSeen tracks whether <head> has already opened; noscript gets
// the same content-model switch as script/style rather than a dedicated
// mode), and Text folds into whichever mode was active when the RCDATA/
// RAWTEXT element opened (originalMode) since the scanner, not the
// balancer, is what's actually in a different state during that run.

func isAllWhitespace(s string) bool {
	return strings.TrimLeft(s, " \t\n\f\r") == ""
}

func (b *Balancer) processInitial(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return false, nil
		}
		b.quirksMode = "quirks"
		b.mode = BeforeHTML
		return true, nil
	case scanner.Comment:
		return false, b.sink.Comment(tok.Data, tokenAugment(tok))
	case scanner.Doctype:
		b.setQuirksModeFromDoctype(tok.Name, tok.PublicID, tok.SystemID, tok.ForceQuirks)
		if err := b.sink.DoctypeDecl(tok.Name, ptrStr(tok.PublicID), ptrStr(tok.SystemID), tok.ForceQuirks, tokenAugment(tok)); err != nil {
			return false, err
		}
		b.mode = BeforeHTML
		return false, nil
	default:
		if !b.opts.IframeSrcdoc {
			b.quirksMode = "quirks"
		}
		b.mode = BeforeHTML
		return true, nil
	}
}

func ptrStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (b *Balancer) setQuirksModeFromDoctype(name string, publicID, systemID *string, forceQuirks bool) {
	if forceQuirks || !strings.EqualFold(name, "html") {
		b.quirksMode = "quirks"
		return
	}
	pub := strings.ToLower(ptrStr(publicID))
	if strings.HasPrefix(pub, "-//w3c//dtd html 4.01 frameset//") || strings.HasPrefix(pub, "-//w3c//dtd html 4.01 transitional//") {
		if ptrStr(systemID) == "" {
			b.quirksMode = "limited-quirks"
		}
	}
}

func (b *Balancer) processBeforeHTML(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return false, nil
		}
	case scanner.Comment:
		return false, b.sink.Comment(tok.Data, tokenAugment(tok))
	case scanner.StartTag:
		if tok.Name == "html" {
			if err := b.insertElement("html", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.mode = InHead
			return false, nil
		}
	case scanner.EndTag:
		if tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br" {
			if err := b.insertElement("html", nil, catalog.NamespaceHTML, true); err != nil {
				return false, err
			}
			b.mode = InHead
			return true, nil
		}
		return false, nil
	case scanner.EOFToken:
		if err := b.insertElement("html", nil, catalog.NamespaceHTML, true); err != nil {
			return false, err
		}
		b.mode = InHead
		return true, nil
	}
	if err := b.insertElement("html", nil, catalog.NamespaceHTML, true); err != nil {
		return false, err
	}
	b.mode = InHead
	return true, nil
}

// contentModelFor switches the scanner into the RCDATA/RAWTEXT state
// implied by name, per the "Content-model switching" paragraph.
func (b *Balancer) contentModelFor(name string) {
	b.originalMode = b.mode
	switch name {
	case "title", "textarea":
		b.scan.SetState(scanner.RCDATAState, name)
	case "script":
		b.scan.SetState(scanner.ScriptDataState, name)
	case "style", "xmp", "iframe", "noembed", "noframes", "noscript":
		b.scan.SetState(scanner.RAWTEXTState, name)
	case "plaintext":
		b.scan.SetState(scanner.PLAINTEXTState, "")
	}
}

func (b *Balancer) processInHead(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return false, b.insertText(tok.Data, false)
		}
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.Doctype:
		return false, nil
	case scanner.StartTag:
		switch tok.Name {
		case "html":
			b.mode = InBody
			return true, nil
		case "head":
			if b.headSeen {
				return false, nil
			}
			b.headSeen = true
			return false, b.insertElement("head", tokenAttrs(tok), catalog.NamespaceHTML, false)
		case "title", "textarea", "script", "style", "xmp", "iframe", "noembed", "noframes", "noscript":
			if !b.headSeen {
				b.headSeen = true
				if err := b.insertElement("head", nil, catalog.NamespaceHTML, true); err != nil {
					return false, err
				}
			}
			if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.contentModelFor(tok.Name)
			return false, nil
		case "base", "basefont", "bgsound", "link", "meta":
			if !b.headSeen {
				b.headSeen = true
				if err := b.insertElement("head", nil, catalog.NamespaceHTML, true); err != nil {
					return false, err
				}
			}
			if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.popCurrent()
			return false, nil
		case "template":
			if !b.headSeen {
				b.headSeen = true
				if err := b.insertElement("head", nil, catalog.NamespaceHTML, true); err != nil {
					return false, err
				}
			}
			return false, b.insertElement("template", tokenAttrs(tok), catalog.NamespaceHTML, false)
		}
	case scanner.EndTag:
		switch tok.Name {
		case "head":
			if !b.headSeen {
				return false, nil
			}
			if err := b.closeElementsUntil("head"); err != nil {
				return false, err
			}
			b.mode = AfterHead
			return false, nil
		case "template":
			if !b.elementInStack("template") {
				return false, nil
			}
			return false, b.closeElementsUntil("template")
		case "body", "html", "br":
			// fall through to implicit close
		default:
			return false, nil
		}
	case scanner.EOFToken:
		return false, b.closeHeadAndAdvance()
	}
	if err := b.closeHeadAndAdvance(); err != nil {
		return false, err
	}
	return true, nil
}

// closeHeadAndAdvance implements the "anything else" fallthrough shared by
// every InHead exit path: a <head> that was never opened is synthesized
// and immediately closed (matching the prior implicit
// insertElement("head", nil) + popUntil("head") in processBeforeHead's own
// fallback), since BeforeHead has no mode of its own here.
func (b *Balancer) closeHeadAndAdvance() error {
	if !b.headSeen {
		b.headSeen = true
		if err := b.insertElement("head", nil, catalog.NamespaceHTML, true); err != nil {
			return err
		}
	}
	if err := b.closeElementsUntil("head"); err != nil {
		return err
	}
	b.mode = AfterHead
	return nil
}

func (b *Balancer) elementInStack(name string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if b.openElements[i].name == name {
			return true
		}
	}
	return false
}

func (b *Balancer) processAfterHead(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return false, b.insertText(tok.Data, false)
		}
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.StartTag:
		switch tok.Name {
		case "html":
			b.mode = InBody
			return true, nil
		case "body":
			if err := b.insertElement("body", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.framesetOK = false
			b.mode = InBody
			return false, nil
		case "head":
			return false, nil
		}
	case scanner.EndTag:
		if tok.Name == "html" {
			b.mode = InBody
			return true, nil
		}
	case scanner.EOFToken:
		if err := b.insertElement("body", nil, catalog.NamespaceHTML, true); err != nil {
			return false, err
		}
		b.mode = InBody
		return true, nil
	}
	if err := b.insertElement("body", nil, catalog.NamespaceHTML, true); err != nil {
		return false, err
	}
	b.framesetOK = false
	b.mode = InBody
	return true, nil
}

func (b *Balancer) processInBody(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		if !isAllWhitespace(tok.Data) {
			b.framesetOK = false
		}
		return false, b.insertText(tok.Data, false)
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.Doctype:
		return false, nil
	case scanner.StartTag:
		return b.startTagInBody(tok)
	case scanner.EndTag:
		return b.endTagInBody(tok)
	case scanner.EOFToken:
		return false, nil
	}
	return false, nil
}

func (b *Balancer) startTagInBody(tok scanner.Token) (bool, error) {
	switch tok.Name {
	case "html":
		return false, nil
	case "base", "basefont", "bgsound", "link", "meta", "title", "template":
		return b.processInHead(tok)
	case "body":
		b.framesetOK = false
		return false, nil
	case "p":
		if b.hasElementInButtonScope("p") {
			if err := b.closeElementsUntil("p"); err != nil {
				return false, err
			}
		}
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		b.framesetOK = false
		return false, b.insertElement("p", tokenAttrs(tok), catalog.NamespaceHTML, false)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if headingNames[b.currentName()] {
			if err := b.popAndClose(); err != nil {
				return false, err
			}
		}
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		return false, b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false)
	case "li":
		if b.hasElementInListItemScope("li") {
			if err := b.closeElementsUntil("li"); err != nil {
				return false, err
			}
		}
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		return false, b.insertElement("li", tokenAttrs(tok), catalog.NamespaceHTML, false)
	case "dd", "dt":
		for _, other := range []string{"dd", "dt"} {
			if b.hasElementInScope(other, catalog.ListItemScope) && b.currentName() == other {
				if err := b.closeElementsUntil(other); err != nil {
					return false, err
				}
			}
		}
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		return false, b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false)
	case "table":
		if err := b.insertElement("table", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.framesetOK = false
		b.mode = InTable
		return false, nil
	case "select":
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		if err := b.insertElement("select", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.framesetOK = false
		switch b.mode {
		case InTable, InCaption, InTableBody, InRow, InCell:
			b.mode = InSelectInTable
		default:
			b.mode = InSelect
		}
		return false, nil
	case "optgroup", "option":
		if b.currentName() == "option" {
			if err := b.popAndClose(); err != nil {
				return false, err
			}
		}
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		return false, b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false)
	case "textarea", "title":
		if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.framesetOK = false
		b.contentModelFor(tok.Name)
		return false, nil
	case "script", "style", "xmp", "iframe", "noembed", "noframes", "noscript":
		if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.contentModelFor(tok.Name)
		return false, nil
	case "br":
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		if err := b.insertElement("br", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.popCurrent()
		b.framesetOK = false
		return false, nil
	case "a":
		if idx, ok := b.findActiveFormattingIndex("a"); ok {
			if err := b.closeElementsUntil(b.activeFormatting[idx].name); err != nil {
				return false, err
			}
			b.removeActiveFormattingEntry(idx)
		}
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		attrs := tokenAttrs(tok)
		if err := b.insertElement("a", attrs, catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.pushFormattingEntry("a", attrs)
		b.framesetOK = false
		return false, nil
	}

	if catalog.IsFormatting(tok.Name) {
		if err := b.reconstructActiveFormattingElements(); err != nil {
			return false, err
		}
		attrs := tokenAttrs(tok)
		if err := b.insertElement(tok.Name, attrs, catalog.NamespaceHTML, false); err != nil {
			return false, err
		}
		b.pushFormattingEntry(tok.Name, attrs)
		b.framesetOK = false
		return false, nil
	}

	if err := b.reconstructActiveFormattingElements(); err != nil {
		return false, err
	}
	if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
		return false, err
	}
	if tok.SelfClosing || catalog.IsVoid(tok.Name) {
		b.popCurrent()
	} else {
		b.framesetOK = false
	}
	return false, nil
}

func (b *Balancer) endTagInBody(tok scanner.Token) (bool, error) {
	switch tok.Name {
	case "body":
		if b.hasElementInScope("body", catalog.DefaultScope) {
			b.mode = AfterBody
		}
		return false, nil
	case "html":
		if b.hasElementInScope("body", catalog.DefaultScope) {
			b.mode = AfterBody
			return true, nil
		}
		return false, nil
	case "p":
		if !b.hasElementInButtonScope("p") {
			if err := b.insertElement("p", nil, catalog.NamespaceHTML, true); err != nil {
				return false, err
			}
		}
		return false, b.closeElementsUntil("p")
	case "li":
		if !b.hasElementInListItemScope("li") {
			return false, nil
		}
		return false, b.closeElementsUntil("li")
	case "dd", "dt":
		if !b.hasElementInScope(tok.Name, catalog.DefaultScope) {
			return false, nil
		}
		return false, b.closeElementsUntil(tok.Name)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !b.hasAnyElementInScope(headingNames, catalog.DefaultScope) {
			return false, nil
		}
		return false, b.closeElementsUntil(b.currentName())
	}
	if catalog.IsFormatting(tok.Name) {
		if idx, ok := b.findActiveFormattingIndex(tok.Name); ok {
			if b.hasElementInScope(tok.Name, catalog.DefaultScope) {
				if err := b.closeElementsUntil(tok.Name); err != nil {
					return false, err
				}
			}
			b.removeActiveFormattingEntry(idx)
		}
		return false, nil
	}
	if b.hasElementInScope(tok.Name, catalog.DefaultScope) {
		return false, b.closeElementsUntil(tok.Name)
	}
	b.err("unmatched-end-tag", perr.RecoveryDrop)
	return false, nil
}

func (b *Balancer) processInTable(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		return false, b.insertText(tok.Data, false)
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.StartTag:
		switch tok.Name {
		case "caption":
			if err := b.clearStackToTableContext(); err != nil {
				return false, err
			}
			b.pushFormattingMarker()
			if err := b.insertElement("caption", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.mode = InCaption
			return false, nil
		case "colgroup":
			if err := b.clearStackToTableContext(); err != nil {
				return false, err
			}
			if err := b.insertElement("colgroup", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.mode = InColgroup
			return false, nil
		case "col":
			if err := b.clearStackToTableContext(); err != nil {
				return false, err
			}
			if err := b.insertElement("colgroup", nil, catalog.NamespaceHTML, true); err != nil {
				return false, err
			}
			b.mode = InColgroup
			return true, nil
		case "tbody", "tfoot", "thead":
			if err := b.clearStackToTableContext(); err != nil {
				return false, err
			}
			if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.mode = InTableBody
			return false, nil
		case "td", "th", "tr":
			if err := b.clearStackToTableContext(); err != nil {
				return false, err
			}
			if err := b.insertElement("tbody", nil, catalog.NamespaceHTML, true); err != nil {
				return false, err
			}
			b.mode = InTableBody
			return true, nil
		case "table":
			if !b.hasElementInTableScope("table") {
				return false, nil
			}
			if err := b.closeElementsUntil("table"); err != nil {
				return false, err
			}
			b.resetInsertionModeAppropriately()
			return true, nil
		case "style", "script", "template":
			return b.processInHead(tok)
		case "input":
			if strings.EqualFold(tok.AttrVal("type"), "hidden") {
				if err := b.insertElement("input", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
					return false, err
				}
				b.popCurrent()
				return false, nil
			}
		}
	case scanner.EndTag:
		switch tok.Name {
		case "table":
			if !b.hasElementInTableScope("table") {
				return false, nil
			}
			if err := b.closeElementsUntil("table"); err != nil {
				return false, err
			}
			if err := b.flushDeferredTableText(); err != nil {
				return false, err
			}
			b.resetInsertionModeAppropriately()
			return false, nil
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, nil
		}
	case scanner.EOFToken:
		return false, nil
	}
	// Anything else: process using InBody rules but text is buffered.
	return b.processInBody(tok)
}

func (b *Balancer) processInTableText(tok scanner.Token) (bool, error) {
	if tok.Kind == scanner.Characters {
		return false, b.insertText(tok.Data, false)
	}
	if err := b.resolvePendingTableText(); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Balancer) processInCaption(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.EndTag:
		if tok.Name == "caption" {
			if !b.hasElementInScope("caption", catalog.TableScope) {
				return false, nil
			}
			if err := b.generateImpliedEndTagsThoroughly(); err != nil {
				return false, err
			}
			if err := b.closeElementsUntil("caption"); err != nil {
				return false, err
			}
			b.clearActiveFormattingUpToMarker()
			b.mode = InTable
			return false, nil
		}
		if tok.Name == "table" {
			if !b.hasElementInScope("caption", catalog.TableScope) {
				return false, nil
			}
			if err := b.closeElementsUntil("caption"); err != nil {
				return false, err
			}
			b.clearActiveFormattingUpToMarker()
			b.mode = InTable
			return true, nil
		}
		switch tok.Name {
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, nil
		}
	case scanner.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.hasElementInScope("caption", catalog.TableScope) {
				return false, nil
			}
			if err := b.closeElementsUntil("caption"); err != nil {
				return false, err
			}
			b.clearActiveFormattingUpToMarker()
			b.mode = InTable
			return true, nil
		}
	}
	return b.processInBody(tok)
}

func (b *Balancer) processInColgroup(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return false, b.insertText(tok.Data, false)
		}
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.Doctype:
		return false, nil
	case scanner.StartTag:
		switch tok.Name {
		case "html":
			return b.processInBody(tok)
		case "col":
			if err := b.insertElement("col", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.popCurrent()
			return false, nil
		case "template":
			return b.processInHead(tok)
		}
	case scanner.EndTag:
		switch tok.Name {
		case "colgroup":
			if b.currentName() != "colgroup" {
				return false, nil
			}
			b.popCurrent()
			b.mode = InTable
			return false, nil
		case "col":
			return false, nil
		case "template":
			return b.processInHead(tok)
		}
	case scanner.EOFToken:
		return false, nil
	}
	if b.currentName() != "colgroup" {
		return false, nil
	}
	b.popCurrent()
	b.mode = InTable
	return true, nil
}

func (b *Balancer) processInTableBody(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.StartTag:
		switch tok.Name {
		case "tr":
			if err := b.clearStackToTableBodyContext(); err != nil {
				return false, err
			}
			if err := b.insertElement("tr", tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.mode = InRow
			return false, nil
		case "th", "td":
			if err := b.clearStackToTableBodyContext(); err != nil {
				return false, err
			}
			if err := b.insertElement("tr", nil, catalog.NamespaceHTML, true); err != nil {
				return false, err
			}
			b.mode = InRow
			return true, nil
		case "tbody", "tfoot", "thead":
			if err := b.clearStackToTableBodyContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTable
			return true, nil
		case "caption", "col", "colgroup", "table":
			if !b.hasAnyElementInScope(map[string]bool{"tbody": true, "thead": true, "tfoot": true}, catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableBodyContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTable
			return true, nil
		}
	case scanner.EndTag:
		switch tok.Name {
		case "tbody", "tfoot", "thead":
			if !b.hasElementInScope(tok.Name, catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableBodyContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTable
			return false, nil
		case "table":
			if !b.hasAnyElementInScope(map[string]bool{"tbody": true, "thead": true, "tfoot": true}, catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableBodyContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTable
			return true, nil
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false, nil
		}
	}
	return b.processInTable(tok)
}

func (b *Balancer) processInRow(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.StartTag:
		switch tok.Name {
		case "th", "td":
			if err := b.clearStackToTableRowContext(); err != nil {
				return false, err
			}
			if err := b.insertElement(tok.Name, tokenAttrs(tok), catalog.NamespaceHTML, false); err != nil {
				return false, err
			}
			b.mode = InCell
			b.pushFormattingMarker()
			return false, nil
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !b.hasElementInScope("tr", catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableRowContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTableBody
			return true, nil
		}
	case scanner.EndTag:
		switch tok.Name {
		case "tr":
			if !b.hasElementInScope("tr", catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableRowContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTableBody
			return false, nil
		case "table":
			if !b.hasElementInScope("tr", catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableRowContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTableBody
			return true, nil
		case "tbody", "tfoot", "thead":
			if !b.hasElementInScope(tok.Name, catalog.TableScope) {
				return false, nil
			}
			if !b.hasElementInScope("tr", catalog.TableScope) {
				return false, nil
			}
			if err := b.clearStackToTableRowContext(); err != nil {
				return false, err
			}
			b.popCurrent()
			b.mode = InTableBody
			return true, nil
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false, nil
		}
	}
	return b.processInTable(tok)
}

func (b *Balancer) processInCell(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.EndTag:
		switch tok.Name {
		case "td", "th":
			if !b.hasElementInTableScope(tok.Name) {
				return false, nil
			}
			if err := b.generateImpliedEndTags(""); err != nil {
				return false, err
			}
			if err := b.closeElementsUntil(tok.Name); err != nil {
				return false, err
			}
			b.clearActiveFormattingUpToMarker()
			b.mode = InRow
			return false, nil
		case "body", "caption", "col", "colgroup", "html":
			return false, nil
		case "table", "tbody", "tfoot", "thead", "tr":
			if !b.hasElementInTableScope(tok.Name) {
				return false, nil
			}
			if err := b.closeCurrentCell(); err != nil {
				return false, err
			}
			return true, nil
		}
	case scanner.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.hasElementInTableScope("td") && !b.hasElementInTableScope("th") {
				return false, nil
			}
			if err := b.closeCurrentCell(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return b.processInBody(tok)
}

func (b *Balancer) closeCurrentCell() error {
	name := "td"
	if b.hasElementInTableScope("th") {
		name = "th"
	}
	if err := b.generateImpliedEndTags(""); err != nil {
		return err
	}
	if err := b.closeElementsUntil(name); err != nil {
		return err
	}
	b.clearActiveFormattingUpToMarker()
	b.mode = InRow
	return nil
}

func (b *Balancer) processInSelect(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		return false, b.insertText(tok.Data, false)
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.Doctype:
		return false, nil
	case scanner.StartTag:
		switch tok.Name {
		case "html":
			return b.processInBody(tok)
		case "option":
			if b.currentName() == "option" {
				if err := b.popAndClose(); err != nil {
					return false, err
				}
			}
			return false, b.insertElement("option", tokenAttrs(tok), catalog.NamespaceHTML, false)
		case "optgroup":
			if b.currentName() == "option" {
				if err := b.popAndClose(); err != nil {
					return false, err
				}
			}
			if b.currentName() == "optgroup" {
				if err := b.popAndClose(); err != nil {
					return false, err
				}
			}
			return false, b.insertElement("optgroup", tokenAttrs(tok), catalog.NamespaceHTML, false)
		case "select":
			b.err("nested-select-start-tag", perr.RecoveryDrop)
			return false, b.closeElementsUntil("select")
		case "input", "keygen", "textarea":
			if !b.hasElementInSelectScope("select") {
				return false, nil
			}
			if err := b.closeElementsUntil("select"); err != nil {
				return false, err
			}
			b.resetInsertionModeAppropriately()
			return true, nil
		case "script", "template":
			return b.processInHead(tok)
		default:
			b.err("disallowed-in-select", perr.RecoveryDrop)
			return false, nil
		}
	case scanner.EndTag:
		switch tok.Name {
		case "optgroup":
			if b.currentName() == "option" && len(b.openElements) >= 2 && b.openElements[len(b.openElements)-2].name == "optgroup" {
				if err := b.popAndClose(); err != nil {
					return false, err
				}
			}
			if b.currentName() == "optgroup" {
				return false, b.popAndClose()
			}
			return false, nil
		case "option":
			if b.currentName() == "option" {
				return false, b.popAndClose()
			}
			return false, nil
		case "select":
			if !b.hasElementInSelectScope("select") {
				return false, nil
			}
			if err := b.closeElementsUntil("select"); err != nil {
				return false, err
			}
			b.resetInsertionModeAppropriately()
			return false, nil
		case "template":
			return b.processInHead(tok)
		}
	}
	return false, nil
}

// hasElementInSelectScope implements the special-cased "in select scope"
// check HTML5 calls out separately: unlike every other scope, the
// terminator set here is "everything except option/optgroup and the target
// itself" rather than a fixed element list, since catalog.SelectScope
// tracks select's legal content (optgroup, option) rather than a
// terminator set the way TableScope/ButtonScope/etc. do.
func (b *Balancer) hasElementInSelectScope(name string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		e := b.openElements[i]
		if e.namespace == catalog.NamespaceHTML && e.name == name {
			return true
		}
		if e.namespace == catalog.NamespaceHTML && !catalog.SelectScope[e.name] && e.name != name {
			return false
		}
	}
	return false
}

func (b *Balancer) processInSelectInTable(tok scanner.Token) (bool, error) {
	if tok.Kind == scanner.StartTag {
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.err("select-in-table-breakout", perr.RecoveryBestEffort)
			if err := b.closeElementsUntil("select"); err != nil {
				return false, err
			}
			b.resetInsertionModeAppropriately()
			return true, nil
		}
	}
	if tok.Kind == scanner.EndTag {
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			if !b.hasElementInTableScope(tok.Name) {
				return false, nil
			}
			if err := b.closeElementsUntil("select"); err != nil {
				return false, err
			}
			b.resetInsertionModeAppropriately()
			return true, nil
		}
	}
	return b.processInSelect(tok)
}

func (b *Balancer) processAfterBody(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return b.processInBody(tok)
		}
	case scanner.Comment:
		return false, b.insertComment(tok.Data, false)
	case scanner.Doctype:
		return false, nil
	case scanner.StartTag:
		if tok.Name == "html" {
			return b.processInBody(tok)
		}
	case scanner.EndTag:
		if tok.Name == "html" {
			b.mode = AfterAfterBody
			return false, nil
		}
	case scanner.EOFToken:
		return false, nil
	}
	b.mode = InBody
	return true, nil
}

func (b *Balancer) processAfterAfterBody(tok scanner.Token) (bool, error) {
	switch tok.Kind {
	case scanner.Comment:
		return false, b.sink.Comment(tok.Data, tokenAugment(tok))
	case scanner.Characters:
		if isAllWhitespace(tok.Data) {
			return b.processInBody(tok)
		}
	case scanner.Doctype:
		return b.processInBody(tok)
	case scanner.StartTag:
		if tok.Name == "html" {
			return b.processInBody(tok)
		}
	case scanner.EOFToken:
		return false, nil
	}
	b.mode = InBody
	return true, nil
}
