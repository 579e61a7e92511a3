// Package catalog holds the static, process-wide metadata the scanner and
// balancer consult: which elements are void, which are special, which
// scopes they terminate, and how foreign (SVG/MathML) names and attributes
// get case-adjusted. Everything here is built once at init and is safe for
// concurrent reads.
package catalog

import "golang.org/x/net/html/atom"

// Category is a bitset describing an element's content category.
type Category uint32

const (
	Block Category = 1 << iota
	Inline
	HeadContent
	Table
	Row
	Cell
	SelectContent
	Special
	Empty
	CDATAContent
	RCDATAContent
)

// Flag is a bitset of per-element parsing flags.
type Flag uint8

const (
	SelfClosingAllowed Flag = 1 << iota
	ImplicitOpenOnChild
	ClosesOptionalParents
)

// Entry is a single element catalog entry: name, content category,
// allowed-parent category, and parsing flags, per the Data Model's
// "Element catalog entry" shape.
type Entry struct {
	Name string
	Category Category
	Flags Flag
}

// table holds the canonical entries for the elements this engine cares
// about, merged from the prior several independent boolean sets
// (VoidElements, RawTextElements, EscapableRawTextElements,
// SpecialElements, FormattingElements, ImpliedEndTagElements) into one
// struct per element, per the Data Model §3.
var table = map[string]*Entry{}

func define(name string, cat Category, flags Flag) {
	table[name] = &Entry{Name: name, Category: cat, Flags: flags}
}

func init() {
	for name := range voidNames {
		define(name, Empty, SelfClosingAllowed)
	}
	for name := range rawTextNames {
		merge(name, CDATAContent, 0)
	}
	for name := range escapableRawTextNames {
		merge(name, RCDATAContent, 0)
	}
	for name := range specialNames {
		merge(name, Special, 0)
	}
	for name := range formattingNames {
		merge(name, Inline, 0)
	}
	for name := range impliedEndTagNames {
		merge(name, 0, ClosesOptionalParents)
	}
	for name := range tableAllowedChildren {
		merge(name, Table, 0)
	}
}

func merge(name string, cat Category, flags Flag) {
	e, ok := table[name]
	if !ok {
		e = &Entry{Name: name}
		table[name] = e
	}
	e.Category |= cat
	e.Flags |= flags
}

// Lookup returns the catalog entry for name under the HTML namespace.
// Names recognized by golang.org/x/net/html/atom resolve without a map
// probe; everything else (custom elements, foreign names the atom table
// doesn't carry) falls back to the merged table built above.
func Lookup(name string) (*Entry, bool) {
	if a := atom.Lookup([]byte(name)); a != 0 {
		if e, ok := table[a.String()]; ok {
			return e, true
		}
		// Known HTML element with no special rules: plain inline/block entry.
		return &Entry{Name: a.String()}, true
	}
	e, ok := table[name]
	return e, ok
}

// IsVoid reports whether name is a void (self-closing, no content) element.
func IsVoid(name string) bool { return voidNames[name] }

// IsRawText reports whether name switches the scanner into CDATA-content
// (RAWTEXT) mode: <script>, <style>.
func IsRawText(name string) bool { return rawTextNames[name] }

// IsEscapableRawText reports whether name switches the scanner into
// RCDATA mode: <textarea>, <title>.
func IsEscapableRawText(name string) bool { return escapableRawTextNames[name] }

// IsSpecial reports whether name is a "special" element per the HTML5
// tree-construction special-element list.
func IsSpecial(name string) bool { return specialNames[name] }

// IsFormatting reports whether name belongs to the small set of inline
// formatting elements tracked on the active formatting list.
func IsFormatting(name string) bool { return formattingNames[name] }

// ImpliesCloseOnParent reports whether an open element of this name should
// be implicitly closed when a new occurrence (or a related element) opens.
func ImpliesCloseOnParent(name string) bool { return impliedEndTagNames[name] }

// ThoroughlyImplied reports membership in the "generate implied end tags,
// thoroughly" element set (adds table-section/table-cell/caption names).
func ThoroughlyImplied(name string) bool { return thoroughlyImpliedNames[name] }

// TableAllowedChild reports whether name is legal as a direct child of a
// <table> element (caption, colgroup, tbody/thead/tfoot, tr, td/th, plus
// script/template/style).
func TableAllowedChild(name string) bool { return tableAllowedChildren[name] }

// TableFosterTarget reports whether name is one of the elements a foster
// parent search walks past: table, tbody, tfoot, thead, tr.
func TableFosterTarget(name string) bool { return tableFosterTargets[name] }

var voidNames = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextNames = map[string]bool{
	"script": true, "style": true,
}

var escapableRawTextNames = map[string]bool{
	"textarea": true, "title": true,
}

var specialNames = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dialog": true, "dir": true,
	"div": true, "dl": true, "dt": true, "embed": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true, "frame": true,
	"frameset": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "head": true, "header": true, "hgroup": true, "hr": true,
	"html": true, "iframe": true, "img": true, "input": true, "keygen": true,
	"li": true, "link": true, "listing": true, "main": true, "marquee": true,
	"menu": true, "menuitem": true, "meta": true, "nav": true, "noembed": true,
	"noframes": true, "noscript": true, "object": true, "ol": true, "p": true,
	"param": true, "plaintext": true, "pre": true, "script": true, "search": true,
	"section": true, "select": true, "source": true, "style": true, "summary": true,
	"table": true, "tbody": true, "td": true, "template": true, "textarea": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"track": true, "ul": true, "wbr": true,
}

var formattingNames = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

var impliedEndTagNames = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

var thoroughlyImpliedNames = map[string]bool{
	"caption": true, "colgroup": true, "dd": true, "dt": true, "li": true,
	"optgroup": true, "option": true, "p": true, "rb": true, "rp": true,
	"rt": true, "rtc": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true,
}

var tableAllowedChildren = map[string]bool{
	"caption": true, "colgroup": true, "tbody": true, "tfoot": true,
	"thead": true, "tr": true, "td": true, "th": true, "script": true,
	"template": true, "style": true,
}

var tableFosterTargets = map[string]bool{
	"table": true, "tbody": true, "tfoot": true, "thead": true, "tr": true,
}
