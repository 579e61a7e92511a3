package htmlcore_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Christian/htmlcore"
	"github.com/MeKo-Christian/htmlcore/perr"
	"github.com/MeKo-Christian/htmlcore/sink"
	"github.com/MeKo-Christian/htmlcore/sink/etreesink"
)

func TestParse_ImpliedStructure(t *testing.T) {
	var rec sink.Recording
	require.NoError(t, htmlcore.Parse("<p>hi</p>", &rec))
	want := []string{
		"StartDocument", "StartElement:html", "StartElement:head", "EndElement:head",
		"StartElement:body", "StartElement:p", "Characters", "EndElement:p",
		"EndElement:body", "EndElement:html", "EndDocument",
	}
	if diff := cmp.Diff(want, rec.Names()); diff != "" {
		t.Fatalf("event sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CommentsAndDoctype(t *testing.T) {
	var rec sink.Recording
	html := "<!DOCTYPE html><!-- top --><html><body>x</body></html>"
	require.NoError(t, htmlcore.Parse(html, &rec))
	require.Equal(t, "StartDocument", rec.Events[0].Kind)
	require.Equal(t, "DoctypeDecl", rec.Events[1].Kind)
	require.True(t, hasEvent(rec, "Comment", " top "), "expected comment event with data ' top '")
}

func TestParse_WithComments_Disabled(t *testing.T) {
	var rec sink.Recording
	html := "<html><body><!-- gone -->x</body></html>"
	require.NoError(t, htmlcore.Parse(html, &rec, htmlcore.WithComments(false)))
	require.False(t, hasEvent(rec, "Comment", ""), "expected no Comment events with WithComments(false)")
}

func TestParse_IgnorableWhitespaceDropped(t *testing.T) {
	var rec sink.Recording
	html := "<table>\n  <tr><td>x</td></tr>\n</table>"
	require.NoError(t, htmlcore.Parse(html, &rec, htmlcore.WithIgnorableWhitespace(false)))
	for _, e := range rec.Events {
		if e.Kind == "Characters" {
			require.Equal(t, "x", e.Data, "unexpected whitespace-only Characters event")
		}
	}
}

func TestParse_ElementNameCaseUpper(t *testing.T) {
	var rec sink.Recording
	require.NoError(t, htmlcore.Parse("<p>hi</p>", &rec, htmlcore.WithElementNameCase(htmlcore.CaseUpper)))
	require.True(t, hasStartElement(rec, "P"), "expected StartElement with upper-cased name P")
}

func TestParse_MisnestedFormattingRecovers(t *testing.T) {
	var rec sink.Recording
	html := "<p>1<b>2<i>3</p>4</i>5</b>"
	require.NoError(t, htmlcore.Parse(html, &rec))
	// The balancer must still close out every opened element by EOF; no
	// panics, no runaway stack.
	depth := 0
	for _, e := range rec.Events {
		switch e.Kind {
		case "StartElement":
			depth++
		case "EndElement":
			depth--
		}
	}
	require.Zero(t, depth, "unbalanced stack at EOF")
}

func TestParseFragment_SeedsTableContext(t *testing.T) {
	var rec sink.Recording
	require.NoError(t, htmlcore.ParseFragment("<tr><td>x</td></tr>", "tbody", &rec))
	names := rec.Names()
	require.NotEmpty(t, names)
	require.Equal(t, "StartDocument", names[0])
	require.Contains(t, names, "StartElement:tr")
}

func TestParseBytes_UTF8BOM(t *testing.T) {
	var rec sink.Recording
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<p>café</p>")...)
	require.NoError(t, htmlcore.ParseBytes(data, &rec))
	require.True(t, hasEvent(rec, "Characters", "café"), "expected decoded BOM-prefixed text event")
}

func TestParseBytes_Windows1252(t *testing.T) {
	var rec sink.Recording
	// 0x93/0x94 are windows-1252's curly double quotes; x/text/encoding/
	// charmap decodes them to the corresponding Unicode quotation marks.
	data := []byte("<p>\x93quoted\x94</p>")
	require.NoError(t, htmlcore.ParseBytes(data, &rec, htmlcore.WithDefaultEncoding("windows-1252")))
	require.True(t, hasEvent(rec, "Characters", "“quoted”"))
}

func TestParse_CDATAInForeignContentCollapsed(t *testing.T) {
	var rec sink.Recording
	html := "<html><body><svg><![CDATA[raw]]></svg></body></html>"
	require.NoError(t, htmlcore.Parse(html, &rec, htmlcore.WithNamespaces(true), htmlcore.WithCDATANodes(false)))
	require.False(t, hasEvent(rec, "StartCDATA", ""), "expected CDATA events collapsed when WithCDATANodes(false)")
	require.True(t, hasEvent(rec, "Characters", "raw"), "expected collapsed CDATA text to still arrive as Characters")
}

func TestParseBytes_ReplacementEncodingAbortsFatal(t *testing.T) {
	var rec sink.Recording
	data := []byte("<p>hello</p>")
	err := htmlcore.ParseBytes(data, &rec,
		htmlcore.WithDefaultEncoding("iso-2022-kr"), htmlcore.WithCollectErrors())

	var errs perr.ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	require.Equal(t, perr.SeverityFatal, errs[0].Severity)

	// The pipeline still runs to completion over a single substituted
	// U+FFFD character instead of the original document bytes.
	require.True(t, hasEvent(rec, "Characters", "�"), "expected a single U+FFFD character event")
	require.False(t, hasEvent(rec, "Characters", "hello"), "original document content must not reach the sink")
	names := rec.Names()
	require.Equal(t, "StartDocument", names[0])
	require.Equal(t, "EndDocument", names[len(names)-1])
}

func TestParse_EtreeSinkRoundTrip(t *testing.T) {
	out := etreesink.New()
	require.NoError(t, htmlcore.Parse("<p>hello <b>world</b></p>", out))
	s, err := out.String()
	require.NoError(t, err)
	require.NotEmpty(t, s)
}

func hasEvent(rec sink.Recording, kind, data string) bool {
	for _, e := range rec.Events {
		if e.Kind == kind && (data == "" || e.Data == data) {
			return true
		}
	}
	return false
}

func hasStartElement(rec sink.Recording, name string) bool {
	for _, e := range rec.Events {
		if e.Kind == "StartElement" && e.Name == name {
			return true
		}
	}
	return false
}
