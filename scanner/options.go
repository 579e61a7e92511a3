package scanner

// Options configures scanner behavior. Generalized from the prior
// tokenizer.Options (tokenizer/options.go), which carries just DiscardBOM
// and XMLCoercion; the configuration surface adds the
// processing-instruction and CDATA toggles this scanner needs.
type Options struct {
	// AllowProcessingInstructions enables `<?target data?>` recognition as
	// a ProcessingInstruction token rather than folding it into a bogus
	// comment. Off by default, matching HTML5's own non-recognition of
	// processing instructions.
	AllowProcessingInstructions bool

	// AllowCDATA enables `<![CDATA[...]]>` recognition as a CDATA token;
	// with it off, a CDATA section becomes a bogus comment. The scanner does
	// not track foreign content, so this one switch applies everywhere,
	// matching the prior SetAllowCDATA escape hatch (tokenizer/tokenizer.go).
	AllowCDATA bool

	// XMLCoercion mangles text/comment output into a form that survives XML
	// serialization (form feeds in text replaced by spaces, "--" split inside
	// comments), ported from the prior SetXMLCoercion
	// (tokenizer/tokenizer.go), for callers feeding this scanner's output
	// into an XML-shaped sink .
	XMLCoercion bool
}

func defaultOptions() Options {
	return Options{}
}
