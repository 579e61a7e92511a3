package perr

// Reporter is a push-style sink for anomalies: the scanner and balancer
// call Warning/Error/Fatal as each anomaly is detected rather than
// returning a batch at the end. Warning covers the MalformedToken,
// InvalidCharRef, and StructuralViolation taxonomy — logged and
// recovered locally, the parse continues. Error is for anomalies a
// caller may want to treat more seriously than a warning without
// unwinding the parse. Fatal unwinds the current parse; the only
// built-in trigger is the encoding layer's "replacement" sentinel,
// where the pipeline runs to completion over a single substituted
// U+FFFD character instead of the original document.
//
// CollectingReporter below reproduces the prior default behavior
// (tokenizer.Tokenizer.errors/Errors) across all three methods.
type Reporter interface {
	Warning(err *ParseError)
	Error(err *ParseError)
	Fatal(err *ParseError)
}

// CollectingReporter accumulates every reported anomaly into a slice,
// reproducing the prior default behavior (tokenizer.Tokenizer.Errors()).
type CollectingReporter struct {
	errors ParseErrors
}

// Warning implements Reporter.
func (c *CollectingReporter) Warning(err *ParseError) {
	err.Severity = SeverityWarning
	c.errors = append(c.errors, err)
}

// Error implements Reporter.
func (c *CollectingReporter) Error(err *ParseError) {
	err.Severity = SeverityError
	c.errors = append(c.errors, err)
}

// Fatal implements Reporter.
func (c *CollectingReporter) Fatal(err *ParseError) {
	err.Severity = SeverityFatal
	c.errors = append(c.errors, err)
}

// Errors returns every anomaly collected so far.
func (c *CollectingReporter) Errors() ParseErrors {
	return c.errors
}

// DiscardReporter drops every anomaly; useful when a caller only wants the
// event stream and has no interest in diagnostics.
type DiscardReporter struct{}

// Warning implements Reporter.
func (DiscardReporter) Warning(*ParseError) {}

// Error implements Reporter.
func (DiscardReporter) Error(*ParseError) {}

// Fatal implements Reporter.
func (DiscardReporter) Fatal(*ParseError) {}

// New constructs a ParseError at the given position with a recovery tag
// and reports it through r as a warning — every anomaly the scanner and
// balancer themselves raise (MalformedToken, InvalidCharRef,
// StructuralViolation) is warning-level per the documented taxonomy.
// Centralizing the constructor keeps call sites at scanner/balancer
// sites terse, mirroring the prior emitError helper
// (tokenizer/tokenizer.go).
func New(r Reporter, code, message string, line, column int, recovery Recovery) {
	if r == nil {
		return
	}
	r.Warning(&ParseError{
		Code: code,
		Message: message,
		Line: line,
		Column: column,
		Recovery: recovery,
	})
}

// NewFatal constructs a fatal ParseError and reports it through r. Used
// by the top-level pipeline when the encoding layer reports the
// replacement-encoding sentinel; not called from the scanner or
// balancer, which never raise anomalies above warning severity.
func NewFatal(r Reporter, code, message string) {
	if r == nil {
		return
	}
	r.Fatal(&ParseError{
		Code: code,
		Message: message,
		Recovery: RecoveryBestEffort,
	})
}
