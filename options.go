package htmlcore

import (
	"github.com/MeKo-Christian/htmlcore/balancer"
	"github.com/MeKo-Christian/htmlcore/perr"
)

// namePolicy is the case-folding policy the `names-elems`/
// `names-attrs` row names.
type namePolicy int

const (
	namePreserve namePolicy = iota
	nameUpper
	nameLower
)

// config holds every knob spec §6's Configuration Surface table names,
// generalizing the prior config (options.go) which covered only
// encoding/fragment/iframeSrcdoc/strict/collectErrors.
type config struct {
	// ambient / ambient-inherited
	defaultEncoding string
	fragmentContext *balancer.Context
	iframeSrcdoc bool
	xmlCoercion bool
	strict bool
	collectErrors bool

	// spec §6 Configuration Surface
	namespaces bool
	overrideNamespaces bool
	insertNamespaces bool
	includeComments bool
	createCDATANodes bool
	createEntityRefNodes bool
	includeIgnorableWhitespace bool
	namesElems namePolicy
	namesAttrs namePolicy
	reportErrors bool

	processingInstructions bool
	reopenDepthLimit int
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		includeComments: true,
		reportErrors: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.reopenDepthLimit < 0 {
		return nil, &perr.ParseError{
			Code: "configuration-error",
			Message: "ReopenDepthLimit cannot be negative",
		}
	}
	return cfg, nil
}

func (c *config) reporter() perr.Reporter {
	if !c.reportErrors {
		return perr.DiscardReporter{}
	}
	return &perr.CollectingReporter{}
}

// Option configures parser behavior.
type Option func(*config)

// WithEncoding sets the character encoding label used for ParseBytes,
// overriding <meta> sniffing; a byte-order mark still takes precedence.
func WithEncoding(enc string) Option {
	return func(c *config) { c.defaultEncoding = enc }
}

// WithDefaultEncoding sets the same label as WithEncoding: ParseBytes tries
// it after a byte-order mark and before any <meta> declaration, so it is not
// a last-resort fallback. With no label set, ParseBytes falls back to
// windows-1252 when neither a byte-order mark nor <meta> names an encoding.
func WithDefaultEncoding(enc string) Option {
	return func(c *config) { c.defaultEncoding = enc }
}

// WithFragment sets the parsing context for fragment parsing, typically
// applied internally by ParseFragment.
func WithFragment(tagName string) Option {
	return func(c *config) {
		c.fragmentContext = &balancer.Context{TagName: tagName}
	}
}

// WithFragmentNS sets the fragment parsing context with a foreign-content
// namespace ("svg" or "mathml"), for parsing SVG/MathML fragments.
func WithFragmentNS(tagName, namespace string) Option {
	return func(c *config) {
		c.fragmentContext = &balancer.Context{TagName: tagName, Namespace: namespace}
	}
}

// WithIframeSrcdoc enables iframe srcdoc parsing mode, relaxing the
// no-DOCTYPE quirks-mode default per the supplemented feature.
func WithIframeSrcdoc() Option {
	return func(c *config) { c.iframeSrcdoc = true }
}

// WithXMLCoercion enables the scanner's XML-safe text/comment coercion
//, useful when namespace-aware mode feeds an XML sink.
func WithXMLCoercion() Option {
	return func(c *config) { c.xmlCoercion = true }
}

// WithStrictMode makes the parse return the first reported anomaly as its
// error. The balancer still recovers and the whole document is delivered to
// the sink before that error is returned.
func WithStrictMode() Option {
	return func(c *config) { c.strict = true }
}

// WithCollectErrors causes every reported anomaly to be returned as a
// perr.ParseErrors once parsing completes, instead of being discarded.
func WithCollectErrors() Option {
	return func(c *config) { c.collectErrors = true }
}

// WithReportErrors toggles whether anomalies are routed to the error
// reporter at all (the "report-errors" rule); disabling this is a silent
// best-effort parse even under WithStrictMode/WithCollectErrors.
func WithReportErrors(enabled bool) Option {
	return func(c *config) { c.reportErrors = enabled }
}

// WithNamespaces enables SVG/MathML foreign-content handling and the
// balancer's per-element xmlns scope tracking (the "namespaces" rule). That
// tracking does not change the namespace reported for ordinary HTML elements.
func WithNamespaces(enabled bool) Option {
	return func(c *config) { c.namespaces = enabled }
}

// WithOverrideNamespaces rebinds an HTML element found in a bound
// non-default namespace back to XHTML (the "override-namespaces" rule).
func WithOverrideNamespaces(enabled bool) Option {
	return func(c *config) { c.overrideNamespaces = enabled }
}

// WithInsertNamespaces synthesizes an xmlns attribute on an HTML element
// that lacks a namespace binding of its own (the "insert-namespaces" rule).
func WithInsertNamespaces(enabled bool) Option {
	return func(c *config) { c.insertNamespaces = enabled }
}

// WithComments toggles whether Comment events reach the sink at all
// (the "include-comments" rule); defaults to on.
func WithComments(enabled bool) Option {
	return func(c *config) { c.includeComments = enabled }
}

// WithCDATANodes toggles StartCDATA/Characters/EndCDATA as distinct events
// versus collapsing a CDATA section into a plain Characters event
// (the "create-cdata-nodes" rule).
func WithCDATANodes(enabled bool) Option {
	return func(c *config) { c.createCDATANodes = enabled }
}

// WithEntityRefNodes records the "create-entity-ref-nodes" setting. It has
// no effect on output: the scanner inlines character references and the
// balancer never emits StartGeneralEntity/EndGeneralEntity events.
func WithEntityRefNodes(enabled bool) Option {
	return func(c *config) { c.createEntityRefNodes = enabled }
}

// WithIgnorableWhitespace toggles whether whitespace-only character runs in
// element content reach the sink (the "include-ignorable-whitespace" rule).
func WithIgnorableWhitespace(enabled bool) Option {
	return func(c *config) { c.includeIgnorableWhitespace = enabled }
}

// CasePolicy selects how element/attribute names are cased on the way out,
// per the "names-elems"/"names-attrs" row.
type CasePolicy int

const (
	CasePreserve CasePolicy = iota
	CaseUpper
	CaseLower
)

// WithElementNameCase sets the case policy applied to element names.
func WithElementNameCase(policy CasePolicy) Option {
	return func(c *config) { c.namesElems = namePolicy(policy) }
}

// WithAttributeNameCase sets the case policy applied to attribute names.
func WithAttributeNameCase(policy CasePolicy) Option {
	return func(c *config) { c.namesAttrs = namePolicy(policy) }
}

// WithProcessingInstructions enables `<?target data?>` recognition as a
// ProcessingInstruction event rather than folding it into a bogus comment.
// Off by default, matching HTML5's own non-recognition of processing
// instructions.
func WithProcessingInstructions(enabled bool) Option {
	return func(c *config) { c.processingInstructions = enabled }
}

// WithReopenDepthLimit bounds how many active formatting elements a single
// reconstruction pass reopens, overriding the default of 8.
func WithReopenDepthLimit(n int) Option {
	return func(c *config) { c.reopenDepthLimit = n }
}
