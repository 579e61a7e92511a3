package catalog

// Scope terminator sets, generalized from the prior
// internal/constants/scopes.go. A name present in a scope set stops the
// open-element-stack walk used by "has an element in scope"-style checks
// (the "Scoping for end tags" rule).
var (
	DefaultScope = set(
		"applet", "caption", "html", "table", "td", "th", "marquee", "object", "template",
		"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
		"foreignObject", "desc", "title",
	)

	ListItemScope = set(
		"applet", "caption", "html", "table", "td", "th", "marquee", "object", "template",
		"ol", "ul",
		"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
		"foreignObject", "desc", "title",
	)

	ButtonScope = set(
		"applet", "caption", "html", "table", "td", "th", "marquee", "object", "template",
		"button",
		"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
		"foreignObject", "desc", "title",
	)

	TableScope = set("html", "table", "template")

	TableBodyScope = set("html", "table", "template", "tbody", "tfoot", "thead")

	TableRowScope = set("html", "table", "template", "tbody", "tfoot", "thead", "tr")

	// SelectScope holds the names that ARE legal inside a <select>; every
	// other name is a scope terminator for select-content checks.
	SelectScope = set("optgroup", "option")
)

// AutoCloseable reports whether name is safe for the balancer to close
// implicitly while searching the stack for an end tag's match. Table/row/
// cell/caption/select/template act as scoping barriers and are never
// auto-closed.
func AutoCloseable(name string) bool {
	switch name {
	case "table", "td", "th", "tr", "thead", "tbody", "tfoot", "caption", "select", "template":
		return false
	default:
		return true
	}
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
