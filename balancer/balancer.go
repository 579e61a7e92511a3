package balancer

import (
	"github.com/MeKo-Christian/htmlcore/internal/catalog"
	"github.com/MeKo-Christian/htmlcore/perr"
	"github.com/MeKo-Christian/htmlcore/scanner"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// stackEntry is the balancer's lightweight stand-in for the prior
// *dom.Element open-elements-stack entries: just enough identity (name,
// namespace) for scope checks and sink event replay, since the balancer
// builds no tree — the DOM object model is explicitly out of scope here;
// sink.Sink is the only consumer of element identity.
type stackEntry struct {
	name string
	namespace string
	attrs []sink.Attr
}

// formattingEntry mirrors the prior treebuilder.formattingEntry
// (treebuilder/formatting.go), minus the *dom.Element back-reference: a
// reopened formatting element is identified by matching its stack entry
// pointer-for-pointer is unavailable without a tree, so reopening instead
// re-derives a fresh stackEntry and relies on stack position for identity.
type formattingEntry struct {
	marker bool
	name string
	attrs []sink.Attr
	inUse bool // true while the element this entry describes is on the open stack
}

// Options configures the balancer, generalizing the prior
// TreeBuilder/FragmentContext construction knobs (treebuilder/builder.go,
// treebuilder/context.go) into spec §6's Configuration Surface.
type Options struct {
	// NamespaceAware enables SVG/MathML foreign-content handling and
	// prefix binding (the "Namespaces" rule).
	NamespaceAware bool

	// IframeSrcdoc matches the prior SetIframeSrcdoc: relaxes the
	// no-DOCTYPE-seen quirks-mode default for srcdoc documents.
	IframeSrcdoc bool

	// ProcessingInstructions mirrors scanner.Options.AllowProcessingInstructions
	// so the balancer knows whether to expect ProcessingInstruction tokens.
	ProcessingInstructions bool

	// ReopenDepthLimit bounds how many formatting elements a single
	// reconstruction pass reopens before giving up, a fixed constant rather
	// than an unbounded reconstruction loop.
	ReopenDepthLimit int
}

func defaultOptions() Options {
	return Options{ReopenDepthLimit: 8}
}

// Context describes the fragment parsing context element, grounded on the
// prior treebuilder.FragmentContext (treebuilder/context.go).
type Context struct {
	TagName string
	Namespace string // "", "svg", or "mathml"
}

// Balancer pulls tokens from a scanner.Scanner and pushes a balanced
// event stream into a sink.Sink, owning the open-element stack and
// active-formatting list itself.
type Balancer struct {
	scan *scanner.Scanner
	sink sink.Sink
	rep perr.Reporter
	opts Options

	openElements []stackEntry
	activeFormatting []formattingEntry

	mode Mode
	originalMode Mode

	framesetOK bool
	headSeen bool

	pendingTableText []pendingChar
	tableTextHadNonSpace bool
	tableTextOriginalMode Mode

	deferredTableText []pendingChar // character runs deferred for replay after </table>

	nsStack []nsFrame

	quirksMode string // "no-quirks" | "quirks" | "limited-quirks"

	fragmentContext *Context
	fragmentRoot bool

	stopped bool
}

type pendingChar struct {
	data string
	aug sink.Augment
}

type nsFrame struct {
	bindings map[string]string // prefix -> URI, "" key is the default namespace
}

// New constructs a Balancer reading tokens from scan and delivering events
// to out. rep receives structural-violation diagnostics (stray end tags,
// select-content drops); nil is accepted.
func New(scan *scanner.Scanner, out sink.Sink, rep perr.Reporter, opts Options) *Balancer {
	if rep == nil {
		rep = perr.DiscardReporter{}
	}
	if opts.ReopenDepthLimit <= 0 {
		opts.ReopenDepthLimit = 8
	}
	return &Balancer{
		scan: scan,
		sink: out,
		rep: rep,
		opts: opts,
		mode: Initial,
		framesetOK: true,
		quirksMode: "no-quirks",
	}
}

// NewFragment constructs a Balancer for fragment parsing, grounded on the
// prior treebuilder.NewFragment (treebuilder/builder.go): seeds the
// open-element stack with a synthetic <html> root plus the context
// element, and derives the initial mode from the context element's name.
func NewFragment(scan *scanner.Scanner, out sink.Sink, rep perr.Reporter, opts Options, ctx Context) *Balancer {
	b := New(scan, out, rep, opts)
	b.fragmentContext = &ctx
	b.framesetOK = false

	ns := catalog.NamespaceHTML
	switch ctx.Namespace {
	case "svg":
		ns = catalog.NamespaceSVG
	case "mathml":
		ns = catalog.NamespaceMathML
	}
	b.openElements = append(b.openElements, stackEntry{name: "html", namespace: catalog.NamespaceHTML})
	b.fragmentRoot = true
	if opts.NamespaceAware {
		b.pushNamespaceFrameFromSinkAttrs(nil)
	}

	if ctx.TagName != "" {
		b.openElements = append(b.openElements, stackEntry{name: ctx.TagName, namespace: ns})
		if opts.NamespaceAware {
			b.pushNamespaceFrameFromSinkAttrs(nil)
		}
		if ctx.Namespace == "" {
			switch ctx.TagName {
			case "tbody", "thead", "tfoot":
				b.mode = InTableBody
			case "tr":
				b.mode = InRow
			case "td", "th":
				b.mode = InCell
			case "caption":
				b.mode = InCaption
			case "colgroup":
				b.mode = InColgroup
			case "table":
				b.mode = InTable
			case "select":
				b.mode = InSelect
			default:
				b.mode = InBody
			}
		} else {
			b.mode = InBody
		}
		b.originalMode = b.mode

		switch ctx.TagName {
		case "title", "textarea":
			scan.SetState(scannerRCDATA(), ctx.TagName)
		case "script":
			scan.SetState(scanner.ScriptDataState, ctx.TagName)
		case "style", "xmp", "iframe", "noembed", "noframes", "noscript":
			scan.SetState(scannerRAWTEXT(), ctx.TagName)
		case "plaintext":
			scan.SetState(scannerPlaintext(), "")
		}
	}
	return b
}

func scannerRCDATA() scanner.State { return scanner.RCDATAState }
func scannerRAWTEXT() scanner.State { return scanner.RAWTEXTState }
func scannerPlaintext() scanner.State { return scanner.PLAINTEXTState }

// Run drives the scanner to completion, emitting sink events. Returns the
// error a Sink callback raised (ErrStop or otherwise), or nil on a clean
// EOF.
func (b *Balancer) Run() error {
	if err := b.emitStartDocument(); err != nil {
		return err
	}
	for {
		tok := b.scan.Next()
		if err := b.processToken(tok); err != nil {
			return err
		}
		if b.stopped {
			return nil
		}
		if tok.Kind == scanner.EOFToken {
			return b.finish()
		}
	}
}

func (b *Balancer) emitStartDocument() error {
	return b.sink.StartDocument("", b.opts.NamespaceAware, sink.Augment{})
}

func (b *Balancer) finish() error {
	if err := b.flushDeferredTableText(); err != nil {
		return err
	}
	for len(b.openElements) > 0 {
		e := b.popCurrent()
		if err := b.sink.EndElement(e.name, e.namespace, sink.AugmentSynthesized()); err != nil {
			return err
		}
	}
	return b.sink.EndDocument(sink.Augment{})
}

func (b *Balancer) currentEntry() *stackEntry {
	if len(b.openElements) == 0 {
		return nil
	}
	return &b.openElements[len(b.openElements)-1]
}

func (b *Balancer) currentName() string {
	e := b.currentEntry()
	if e == nil {
		return ""
	}
	return e.name
}

func (b *Balancer) popCurrent() stackEntry {
	e := b.openElements[len(b.openElements)-1]
	b.openElements = b.openElements[:len(b.openElements)-1]
	if b.opts.NamespaceAware {
		b.popNamespaceFrame()
	}
	// Keep no more same-named active formatting entries inUse than remain open.
	open := 0
	for _, o := range b.openElements {
		if o.name == e.name {
			open++
		}
	}
	for i := range b.activeFormatting {
		if f := &b.activeFormatting[i]; !f.marker && f.inUse && f.name == e.name {
			if open > 0 {
				open--
			} else {
				f.inUse = false
			}
		}
	}
	return e
}

func (b *Balancer) err(code string, recovery perr.Recovery) {
	perr.New(b.rep, code, code, 0, 0, recovery)
}

// processToken dispatches tok to the handler for the current mode, looping
// while a handler asks for reprocessing (the same token re-evaluated after
// the mode changed mid-handler, e.g. an implied </p> before a new <p> is
// opened), grounded on the prior TreeBuilder.ProcessToken
// (treebuilder/builder.go)'s for{}-loop-until-no-reprocess shape, minus the
// foreign-content branch (see processForeignContentToken, invoked first
// here the same way it gates on shouldUseForeignContent).
func (b *Balancer) processToken(tok scanner.Token) error {
	for {
		if b.opts.NamespaceAware && b.shouldUseForeignContent(tok) {
			reprocess, err := b.processForeignContentToken(tok)
			if err != nil {
				return err
			}
			if !reprocess {
				return nil
			}
			continue
		}

		if tok.Kind == scanner.CDATA {
			return b.insertCDATA(tok.Data)
		}

		var reprocess bool
		var err error
		switch b.mode {
		case Initial:
			reprocess, err = b.processInitial(tok)
		case BeforeHTML:
			reprocess, err = b.processBeforeHTML(tok)
		case InHead:
			reprocess, err = b.processInHead(tok)
		case AfterHead:
			reprocess, err = b.processAfterHead(tok)
		case InBody:
			reprocess, err = b.processInBody(tok)
		case InTable:
			reprocess, err = b.processInTable(tok)
		case InTableText:
			reprocess, err = b.processInTableText(tok)
		case InCaption:
			reprocess, err = b.processInCaption(tok)
		case InColgroup:
			reprocess, err = b.processInColgroup(tok)
		case InTableBody:
			reprocess, err = b.processInTableBody(tok)
		case InRow:
			reprocess, err = b.processInRow(tok)
		case InCell:
			reprocess, err = b.processInCell(tok)
		case InSelect:
			reprocess, err = b.processInSelect(tok)
		case InSelectInTable:
			reprocess, err = b.processInSelectInTable(tok)
		case AfterBody:
			reprocess, err = b.processAfterBody(tok)
		case AfterAfterBody:
			reprocess, err = b.processAfterAfterBody(tok)
		default:
			reprocess, err = b.processInBody(tok)
		}
		if err != nil {
			return err
		}
		if !reprocess {
			return nil
		}
	}
}

func tokenAugment(tok scanner.Token) sink.Augment {
	return sink.Augment{
		Begin: sink.Position{Line: tok.Begin.Line, Column: tok.Begin.Column},
		End: sink.Position{Line: tok.End.Line, Column: tok.End.Column},
	}
}

func tokenAttrs(tok scanner.Token) []sink.Attr {
	if len(tok.Attrs) == 0 {
		return nil
	}
	attrs := make([]sink.Attr, 0, len(tok.Attrs))
	seen := make(map[string]bool, len(tok.Attrs))
	for _, a := range tok.Attrs {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		attrs = append(attrs, sink.Attr{LocalName: a.Name, Value: a.Value})
	}
	return attrs
}
