package scanner

// State names the scanner's current lexical state. This is a deliberately
// flatter state set than the prior tokenizer.State (tokenizer/states.go),
// which models every WHATWG escaped-script-data sub-state individually;
// this scanner collapses those into a single SCRIPT_DATA content model
// and leaves escape-sequence detection out of scope — RAWTEXT and
// SCRIPT_DATA share the same end-tag-matching behavior, differing only
// in the content model value reported to the balancer.
type State int

const (
	DataState State = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	PLAINTEXTState

	TagOpenState
	TagNameState
	AttrNameState
	BeforeAttrValueState
	AttrValueQuotedState
	AttrValueUnquotedState
	SelfClosingStartTagState

	CommentState
	BogusCommentState
	DoctypeState
	CDATASectionState
	MarkupDeclarationOpenState
	ProcessingInstructionState
)

func (s State) String() string {
	switch s {
	case DataState:
		return "DATA"
	case RCDATAState:
		return "RCDATA"
	case RAWTEXTState:
		return "RAWTEXT"
	case ScriptDataState:
		return "SCRIPT_DATA"
	case PLAINTEXTState:
		return "PLAINTEXT"
	case TagOpenState:
		return "TAG_OPEN"
	case TagNameState:
		return "TAG_NAME"
	case AttrNameState:
		return "ATTR_NAME"
	case BeforeAttrValueState:
		return "BEFORE_ATTR_VALUE"
	case AttrValueQuotedState:
		return "ATTR_VALUE_QUOTED"
	case AttrValueUnquotedState:
		return "ATTR_VALUE_UNQUOTED"
	case SelfClosingStartTagState:
		return "SELF_CLOSING_START_TAG"
	case CommentState:
		return "COMMENT"
	case BogusCommentState:
		return "BOGUS_COMMENT"
	case DoctypeState:
		return "DOCTYPE"
	case CDATASectionState:
		return "CDATA_SECTION"
	case MarkupDeclarationOpenState:
		return "MARKUP_DECLARATION_OPEN"
	case ProcessingInstructionState:
		return "PROCESSING_INSTRUCTION"
	default:
		return "UNKNOWN"
	}
}

// IsTextContentModel reports whether s is one of the five content-model
// states the balancer switches the scanner into after rawtext/rcdata/
// script/plaintext-triggering elements (the "Content-model
// switching" rule).
func (s State) IsTextContentModel() bool {
	switch s {
	case DataState, RCDATAState, RAWTEXTState, ScriptDataState, PLAINTEXTState:
		return true
	default:
		return false
	}
}
