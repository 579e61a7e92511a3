package perr

// Error codes, ported from the prior errors/codes.go (WHATWG parse-error
// names) and extended with the PI/CDATA/foreign-content/namespace codes
// the own anomaly list (§4.4 "Failures", §8 "MalformedToken") names
// that the prior HTML-only tokenizer never needed.
const (
	AbruptClosingOfEmptyComment = "abrupt-closing-of-empty-comment"
	AbruptDoctypePublicIdentifier = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier = "abrupt-doctype-system-identifier"
	AbsenceOfDigitsInNumericCharReference = "absence-of-digits-in-numeric-character-reference"
	CDATAInHTMLContent = "cdata-in-html-content"
	CharacterReferenceOutsideUnicodeRange = "character-reference-outside-unicode-range"
	ControlCharacterInInputStream = "control-character-in-input-stream"
	ControlCharacterReference = "control-character-reference"
	DuplicateAttribute = "duplicate-attribute"
	EndTagWithAttributes = "end-tag-with-attributes"
	EndTagWithTrailingSolidus = "end-tag-with-trailing-solidus"
	EOFBeforeTagName = "eof-before-tag-name"
	EOFInCDATA = "eof-in-cdata"
	EOFInComment = "eof-in-comment"
	EOFInDoctype = "eof-in-doctype"
	EOFInTag = "eof-in-tag"
	IncorrectlyClosedComment = "incorrectly-closed-comment"
	IncorrectlyOpenedComment = "incorrectly-opened-comment"
	InvalidCharacterSequenceAfterDoctypeName = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName = "invalid-first-character-of-tag-name"
	MissingAttributeValue = "missing-attribute-value"
	MissingDoctypeName = "missing-doctype-name"
	MissingDoctypePublicIdentifier = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier = "missing-doctype-system-identifier"
	MissingEndTagName = "missing-end-tag-name"
	MissingQuoteBeforeDoctypePublicIdentifier = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier = "missing-quote-before-doctype-system-identifier"
	MissingSemicolonAfterCharacterReference = "missing-semicolon-after-character-reference"
	MissingWhitespaceAfterDoctypePublicKeyword = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers = "missing-whitespace-between-doctype-public-and-system-identifiers"
	NestedComment = "nested-comment"
	NonVoidHTMLElementStartTagWithTrailingSolidus = "non-void-html-element-start-tag-with-trailing-solidus"
	NullCharacterReference = "null-character-reference"
	SurrogateCharacterReference = "surrogate-character-reference"
	UnexpectedCharacterAfterDoctypeSystemIdentifier = "unexpected-character-after-doctype-system-identifier"
	UnexpectedCharacterInAttributeName = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName = "unexpected-equals-sign-before-attribute-name"
	UnexpectedNullCharacter = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag = "unexpected-solidus-in-tag"
	UnknownNamedCharacterReference = "unknown-named-character-reference"

	// Tree construction errors, ported from the prior tree-builder
	// error emission (treebuilder/mode_handlers.go, utils.go).
	NonSpaceCharacterInTableText = "non-space-character-in-table-text"
	DeferredTableCharacterData = "deferred-table-character-data"
	StrayEndTag = "stray-end-tag"
	UnexpectedTagInSelect = "unexpected-tag-in-select"
	AdoptionAgencyBoundHit = "adoption-agency-bound-hit"

	// Encoding errors.
	EncodingRestartAfterCommit = "encoding-restart-after-commit"
	UnsupportedEncodingLabel = "unsupported-encoding-label"

	// Malformed-doctype and bogus-markup codes that the prior codes.go
	// grouped under other names; kept distinct here as their own
	// first-class anomaly categories.
	MalformedDoctype = "malformed-doctype"
	UnterminatedCDATA = "unterminated-cdata"
	InvalidCharRef = "invalid-character-reference"
	BogusProcessingInstruction = "bogus-processing-instruction"
)
