package balancer

import (
	"sort"
	"strings"

	"github.com/MeKo-Christian/htmlcore/internal/catalog"
	"github.com/MeKo-Christian/htmlcore/perr"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// pushFormattingMarker and clearActiveFormattingUpToMarker bound the active
// list to the current table cell/caption/object scope, same role as the
// prior marker entries (treebuilder/formatting.go).
func (b *Balancer) pushFormattingMarker() {
	b.activeFormatting = append(b.activeFormatting, formattingEntry{marker: true})
}

func (b *Balancer) clearActiveFormattingUpToMarker() {
	for len(b.activeFormatting) > 0 {
		last := b.activeFormatting[len(b.activeFormatting)-1]
		b.activeFormatting = b.activeFormatting[:len(b.activeFormatting)-1]
		if last.marker {
			return
		}
	}
}

func attrsSignature(attrs []sink.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		keys = append(keys, a.LocalName)
		values[a.LocalName] = a.Value
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(values[k])
		sb.WriteByte(0)
	}
	return sb.String()
}

// pushFormattingEntry appends a newly opened formatting element to the
// active list, applying the prior Noah's-Ark dedup (treebuilder/
// formatting.go's findActiveFormattingDuplicate): if three identical
// (name, attrs) entries already sit above the last marker, the earliest
// of them is dropped first, preventing unbounded accumulation from a
// pathological run of `<b><b><b>...`.
func (b *Balancer) pushFormattingEntry(name string, attrs []sink.Attr) {
	sig := attrsSignature(attrs)
	matches := 0
	firstMatch := -1
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		e := b.activeFormatting[i]
		if e.marker {
			break
		}
		if e.name == name && attrsSignature(e.attrs) == sig {
			matches++
			firstMatch = i
		}
	}
	if matches >= 3 {
		b.activeFormatting = append(b.activeFormatting[:firstMatch], b.activeFormatting[firstMatch+1:]...)
	}
	b.activeFormatting = append(b.activeFormatting, formattingEntry{name: name, attrs: attrs, inUse: true})
}

func (b *Balancer) findActiveFormattingIndex(name string) (int, bool) {
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		e := b.activeFormatting[i]
		if e.marker {
			break
		}
		if e.name == name {
			return i, true
		}
	}
	return -1, false
}

func (b *Balancer) removeActiveFormattingEntry(index int) {
	if index < 0 || index >= len(b.activeFormatting) {
		return
	}
	b.activeFormatting = append(b.activeFormatting[:index], b.activeFormatting[index+1:]...)
}

// reconstructActiveFormattingElements reopens formatting elements that fell
// off the open-element stack (e.g. a `<p>` closed everything down to and
// including a still-active `<b>`) at the current insertion point, per
// the "Formatting elements" rule. Grounded on the prior
// reconstructActiveFormattingElements (treebuilder/formatting.go), with the
// prior DOM-node identity check replaced by the inUse flag this
// tree-less model tracks instead, and a hard stop at
// Options.ReopenDepthLimit consecutive reopenings of the same run, per
// the explicit bounded-depth requirement.
func (b *Balancer) reconstructActiveFormattingElements() error {
	if len(b.activeFormatting) == 0 {
		return nil
	}
	last := b.activeFormatting[len(b.activeFormatting)-1]
	if last.marker || last.inUse {
		return nil
	}

	index := len(b.activeFormatting) - 1
	for index > 0 {
		index--
		e := b.activeFormatting[index]
		if e.marker || e.inUse {
			index++
			break
		}
	}

	reopened := 0
	for index < len(b.activeFormatting) {
		if reopened >= b.opts.ReopenDepthLimit {
			b.err("adoption-agency-bound-hit", perr.RecoveryBestEffort)
			return nil
		}
		e := b.activeFormatting[index]
		if err := b.insertElement(e.name, e.attrs, catalog.NamespaceHTML, true); err != nil {
			return err
		}
		b.activeFormatting[index].inUse = true
		index++
		reopened++
	}
	return nil
}
