package scanner

import (
	"testing"

	"github.com/MeKo-Christian/htmlcore/charreader"
)

func collectTokens(html string, initial State) []Token {
	r := charreader.New(html)
	s := New(r, nil, defaultOptions())
	if initial != DataState {
		s.SetState(initial, "")
	}
	var out []Token
	for {
		tok := s.Next()
		if tok.Kind == EOFToken {
			break
		}
		out = append(out, tok)
	}
	return out
}

func TestScanner_CRLFNormalization(t *testing.T) {
	tokens := collectTokens("a\r\nb\rc", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Characters {
		t.Fatalf("tokens = %#v, want single Characters", tokens)
	}
	if tokens[0].Data != "a\nb\nc" {
		t.Fatalf("data = %q, want %q", tokens[0].Data, "a\nb\nc")
	}
}

func TestScanner_SimpleStartTag(t *testing.T) {
	tokens := collectTokens("<div class=\"a\">", DataState)
	if len(tokens) != 1 || tokens[0].Kind != StartTag {
		t.Fatalf("tokens = %#v, want single StartTag", tokens)
	}
	if tokens[0].Name != "div" {
		t.Fatalf("name = %q, want div", tokens[0].Name)
	}
	if got := tokens[0].AttrVal("class"); got != "a" {
		t.Fatalf("class = %q, want a", got)
	}
}

func TestScanner_EndTag(t *testing.T) {
	tokens := collectTokens("</div>", DataState)
	if len(tokens) != 1 || tokens[0].Kind != EndTag || tokens[0].Name != "div" {
		t.Fatalf("tokens = %#v, want single EndTag(div)", tokens)
	}
}

func TestScanner_NullInAttrNameAndValue(t *testing.T) {
	tokens := collectTokens("<div a b='b c'>", DataState)
	if len(tokens) != 1 || tokens[0].Kind != StartTag {
		t.Fatalf("tokens = %#v, want single StartTag", tokens)
	}
	if got := tokens[0].AttrVal("a�b"); got != "b�c" {
		t.Fatalf("attrs = %#v, want a\\ufffdb=b\\ufffdc", tokens[0].Attrs)
	}
}

func TestScanner_MissingAttrValue(t *testing.T) {
	tokens := collectTokens("<div a=>", DataState)
	if len(tokens) != 1 || tokens[0].Kind != StartTag {
		t.Fatalf("tokens = %#v, want StartTag", tokens)
	}
	if got := tokens[0].AttrVal("a"); got != "" {
		t.Fatalf("attrs[a] = %q, want empty", got)
	}
}

func TestScanner_DuplicateAttributeDropped(t *testing.T) {
	tokens := collectTokens(`<div a="1" a="2">`, DataState)
	if len(tokens) != 1 || tokens[0].Kind != StartTag {
		t.Fatalf("tokens = %#v, want StartTag", tokens)
	}
	if len(tokens[0].Attrs) != 1 || tokens[0].AttrVal("a") != "1" {
		t.Fatalf("attrs = %#v, want single a=1 (first wins)", tokens[0].Attrs)
	}
}

func TestScanner_SelfClosingTag(t *testing.T) {
	tokens := collectTokens("<br/>", DataState)
	if len(tokens) != 1 || !tokens[0].SelfClosing {
		t.Fatalf("tokens = %#v, want self-closing", tokens)
	}
}

func TestScanner_RCDATATitleDecodesEntities(t *testing.T) {
	r := charreader.New("Hi &amp; bye</title>")
	s := New(r, nil, defaultOptions())
	s.SetState(RCDATAState, "title")
	var kinds []Kind
	var datas []string
	for {
		tok := s.Next()
		if tok.Kind == EOFToken {
			break
		}
		kinds = append(kinds, tok.Kind)
		datas = append(datas, tok.Data)
	}
	if len(kinds) != 2 || kinds[0] != Characters || kinds[1] != EndTag {
		t.Fatalf("kinds = %#v, want [Characters EndTag]", kinds)
	}
	if datas[0] != "Hi & bye" {
		t.Fatalf("data = %q, want entity-decoded text", datas[0])
	}
}

func TestScanner_RAWTEXTIgnoresLiteralLessThan(t *testing.T) {
	r := charreader.New("1 < 2</script>")
	s := New(r, nil, defaultOptions())
	s.SetState(RAWTEXTState, "script")
	var kinds []Kind
	var datas []string
	for {
		tok := s.Next()
		if tok.Kind == EOFToken {
			break
		}
		kinds = append(kinds, tok.Kind)
		datas = append(datas, tok.Data)
	}
	if len(kinds) != 2 || kinds[0] != Characters || kinds[1] != EndTag {
		t.Fatalf("kinds = %#v, want [Characters EndTag]", kinds)
	}
	if datas[0] != "1 < 2" {
		t.Fatalf("data = %q, want literal '<' preserved", datas[0])
	}
}

func TestScanner_CommentBasic(t *testing.T) {
	tokens := collectTokens("<!-- hi -->", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Comment || tokens[0].Data != " hi " {
		t.Fatalf("tokens = %#v, want Comment(' hi ')", tokens)
	}
}

func TestScanner_BogusCommentFromMarkupDeclaration(t *testing.T) {
	tokens := collectTokens("<!weird>rest", DataState)
	if len(tokens) < 1 || tokens[0].Kind != Comment {
		t.Fatalf("tokens = %#v, want leading Comment (bogus)", tokens)
	}
}

func TestScanner_DoctypeBasic(t *testing.T) {
	tokens := collectTokens("<!DOCTYPE html>", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Doctype || tokens[0].Name != "html" {
		t.Fatalf("tokens = %#v, want Doctype(html)", tokens)
	}
	if tokens[0].ForceQuirks {
		t.Fatalf("tokens[0].ForceQuirks = true, want false for well-formed doctype")
	}
}

func TestScanner_DoctypeWithPublicAndSystemID(t *testing.T) {
	tokens := collectTokens(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`, DataState)
	if len(tokens) != 1 || tokens[0].Kind != Doctype {
		t.Fatalf("tokens = %#v, want single Doctype", tokens)
	}
	if tokens[0].PublicID == nil || *tokens[0].PublicID != "-//W3C//DTD HTML 4.01//EN" {
		t.Fatalf("PublicID = %v, want W3C strict identifier", tokens[0].PublicID)
	}
	if tokens[0].SystemID == nil || *tokens[0].SystemID != "http://www.w3.org/TR/html4/strict.dtd" {
		t.Fatalf("SystemID = %v, want strict.dtd url", tokens[0].SystemID)
	}
}

func TestScanner_DoctypeMissingNameForcesQuirks(t *testing.T) {
	tokens := collectTokens("<!DOCTYPE >", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Doctype {
		t.Fatalf("tokens = %#v, want single Doctype", tokens)
	}
	if !tokens[0].ForceQuirks {
		t.Fatalf("ForceQuirks = false, want true for missing doctype name")
	}
}

func TestScanner_CDATASectionRequiresOption(t *testing.T) {
	r := charreader.New("<![CDATA[hello]]>")
	opts := defaultOptions()
	opts.AllowCDATA = true
	s := New(r, nil, opts)
	var tokens []Token
	for {
		tok := s.Next()
		if tok.Kind == EOFToken {
			break
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) != 1 || tokens[0].Kind != CDATA || tokens[0].Data != "hello" {
		t.Fatalf("tokens = %#v, want CDATA(hello)", tokens)
	}
}

func TestScanner_CDATAFallsBackToBogusCommentWhenDisallowed(t *testing.T) {
	tokens := collectTokens("<![CDATA[hello]]>", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Comment {
		t.Fatalf("tokens = %#v, want bogus Comment fallback", tokens)
	}
}

func TestScanner_ProcessingInstructionRequiresOption(t *testing.T) {
	r := charreader.New("<?xml version=\"1.0\"?>")
	opts := defaultOptions()
	opts.AllowProcessingInstructions = true
	s := New(r, nil, opts)
	tok := s.Next()
	if tok.Kind != ProcessingInstruction || tok.Target != "xml" {
		t.Fatalf("tok = %#v, want ProcessingInstruction(xml)", tok)
	}
}

func TestScanner_NamedCharRefWithSemicolon(t *testing.T) {
	tokens := collectTokens("a&amp;b", DataState)
	if len(tokens) != 1 || tokens[0].Data != "a&b" {
		t.Fatalf("tokens = %#v, want a&b", tokens)
	}
}

func TestScanner_AmbiguousAmpersandRejected(t *testing.T) {
	tokens := collectTokens("&notit;", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Characters {
		t.Fatalf("tokens = %#v, want single Characters", tokens)
	}
	if tokens[0].Data != "¬it;" {
		t.Fatalf("data = %q, want legacy 'not' expansion followed by literal 'it;'", tokens[0].Data)
	}
}

func TestScanner_AmbiguousAmpersandInTextRewound(t *testing.T) {
	tokens := collectTokens("&notin", DataState)
	if len(tokens) != 1 || tokens[0].Kind != Characters {
		t.Fatalf("tokens = %#v, want single Characters", tokens)
	}
	if tokens[0].Data != "&notin" {
		t.Fatalf("data = %q, want literal '&notin' (ambiguous ampersand rewound)", tokens[0].Data)
	}
}

func TestScanner_NumericCharRefDecimal(t *testing.T) {
	tokens := collectTokens("&#65;", DataState)
	if len(tokens) != 1 || tokens[0].Data != "A" {
		t.Fatalf("tokens = %#v, want 'A'", tokens)
	}
}

func TestScanner_NumericCharRefHex(t *testing.T) {
	tokens := collectTokens("&#x41;", DataState)
	if len(tokens) != 1 || tokens[0].Data != "A" {
		t.Fatalf("tokens = %#v, want 'A'", tokens)
	}
}

func TestScanner_NumericCharRefNullReplaced(t *testing.T) {
	tokens := collectTokens("&#0;", DataState)
	if len(tokens) != 1 || tokens[0].Data != "�" {
		t.Fatalf("tokens = %#v, want replacement character", tokens)
	}
}

func TestScanner_UnexpectedNullCharacterInText(t *testing.T) {
	tokens := collectTokens("a\x00b", DataState)
	if len(tokens) != 1 || tokens[0].Data != "a\x00b" {
		t.Fatalf("data = %q, want literal null preserved in DATA", tokens[0].Data)
	}
}

func TestScanner_TokenPositionsAreDistinctAcrossTokens(t *testing.T) {
	tokens := collectTokens("ab<div>", DataState)
	if len(tokens) != 2 {
		t.Fatalf("tokens = %#v, want 2 tokens", tokens)
	}
	if tokens[0].Begin == tokens[1].Begin {
		t.Fatalf("token begins collide: %#v vs %#v", tokens[0].Begin, tokens[1].Begin)
	}
	if tokens[0].Begin.Column != 1 {
		t.Fatalf("first token begin column = %d, want 1", tokens[0].Begin.Column)
	}
}

func TestScanner_MetaCharsetOffererInvokedOnMetaTag(t *testing.T) {
	r := charreader.New(`<meta charset="utf-8">`)
	s := New(r, nil, defaultOptions())
	var captured []Attr
	s.SetMetaCharsetOfferer(offererFunc(func(attrs []Attr) bool {
		captured = attrs
		return false
	}))
	tok := s.Next()
	if tok.Kind != StartTag || tok.Name != "meta" {
		t.Fatalf("tok = %#v, want StartTag(meta)", tok)
	}
	if len(captured) != 1 || captured[0].Name != "charset" || captured[0].Value != "utf-8" {
		t.Fatalf("captured = %#v, want [charset=utf-8]", captured)
	}
}

type offererFunc func(attrs []Attr) bool

func (f offererFunc) OfferMeta(attrs []Attr) bool { return f(attrs) }

func TestScanner_EndTagWithAttributesDropped(t *testing.T) {
	tokens := collectTokens(`</div a="1">`, DataState)
	if len(tokens) != 1 || tokens[0].Kind != EndTag {
		t.Fatalf("tokens = %#v, want EndTag", tokens)
	}
	if len(tokens[0].Attrs) != 0 {
		t.Fatalf("attrs = %#v, want dropped on end tag", tokens[0].Attrs)
	}
}

func TestScanner_EOFInTagEmitsEOFAfterDiagnostic(t *testing.T) {
	tokens := collectTokens("<div a=", DataState)
	for _, tok := range tokens {
		if tok.Kind == EOFToken {
			t.Fatalf("collectTokens should not include EOFToken, got %#v", tokens)
		}
	}
}
