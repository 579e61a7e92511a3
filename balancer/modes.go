// Package balancer implements an HTML tag balancer: it consumes scanner
// tokens and emits a balanced stream of sink events, maintaining the
// open-element stack and active-formatting list itself rather than
// building a DOM, generalized from the prior treebuilder package
// (treebuilder/builder.go).
package balancer

// Mode names the balancer's current insertion mode. Deliberately flatter
// than the prior treebuilder.InsertionMode: no InHeadNoscript/InTemplate/
// InFrameset/AfterFrameset/AfterAfterFrameset/Text sub-modes, since this
// mode set folds noscript and frameset content into ordinary body
// handling, and the scanner's text content-model switch already covers
// what the prior dedicated Text mode exists for.
type Mode int

const (
	Initial Mode = iota
	BeforeHTML
	InHead
	AfterHead
	InBody
	InTable
	InTableText
	InCaption
	InColgroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	AfterBody
	AfterAfterBody
)

func (m Mode) String() string {
	switch m {
	case Initial:
		return "INITIAL"
	case BeforeHTML:
		return "BEFORE_HTML"
	case InHead:
		return "IN_HEAD"
	case AfterHead:
		return "AFTER_HEAD"
	case InBody:
		return "IN_BODY"
	case InTable:
		return "IN_TABLE"
	case InTableText:
		return "IN_TABLE_TEXT"
	case InCaption:
		return "IN_CAPTION"
	case InColgroup:
		return "IN_COLGROUP"
	case InTableBody:
		return "IN_TABLE_BODY"
	case InRow:
		return "IN_ROW"
	case InCell:
		return "IN_CELL"
	case InSelect:
		return "IN_SELECT"
	case InSelectInTable:
		return "IN_SELECT_IN_TABLE"
	case AfterBody:
		return "AFTER_BODY"
	case AfterAfterBody:
		return "AFTER_AFTER_BODY"
	default:
		return "UNKNOWN"
	}
}
