package balancer

import (
	"strings"

	"github.com/MeKo-Christian/htmlcore/perr"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// insertElement emits a StartElement event and pushes the new element onto
// the open stack, the balancer's equivalent of the prior insertElement
// (treebuilder/builder.go) minus the dom.Element allocation: this model has
// no tree to attach the node to, so "insertion" is just bookkeeping plus the
// sink callback.
func (b *Balancer) insertElement(name string, attrs []sink.Attr, namespace string, synthesized bool) error {
	aug := sink.Augment{}
	if synthesized {
		aug.Synthesized = true
	}
	if b.opts.NamespaceAware {
		b.pushNamespaceFrameFromSinkAttrs(attrs)
		if namespace == "" {
			namespace = b.currentDefaultNamespace()
		}
	}
	if err := b.sink.StartElement(name, namespace, attrs, aug); err != nil {
		return err
	}
	b.openElements = append(b.openElements, stackEntry{name: name, namespace: namespace, attrs: attrs})
	return nil
}

// insertCDATA emits a CDATA section as StartCDATA/Characters/EndCDATA,
// the richest representation; a caller that asked for
// create-cdata-nodes=false collapses this triple back into a single
// Characters event at the htmlcore facade layer, not here.
func (b *Balancer) insertCDATA(data string) error {
	if err := b.sink.StartCDATA(sink.Augment{}); err != nil {
		return err
	}
	if err := b.sink.Characters(data, sink.Augment{}); err != nil {
		return err
	}
	return b.sink.EndCDATA(sink.Augment{})
}

func (b *Balancer) insertComment(data string, synthesized bool) error {
	aug := sink.Augment{}
	if synthesized {
		aug.Synthesized = true
	}
	return b.sink.Comment(data, aug)
}

// insertText routes a run of character data to the sink, or into the
// table-text buffer when the current mode is IN_TABLE/IN_TABLE_BODY/IN_ROW.
// Grounded on the prior insertText plus its
// stepInTableText/reconstructTableText dance (treebuilder/modes.go), but
// implementing a deliberately simplified policy: a run containing
// non-whitespace is deferred until the table closes and re-emitted as
// siblings after </table>, instead of the prior foster-parenting into the
// table's parent node (which requires a tree this balancer doesn't build).
func (b *Balancer) insertText(data string, synthesized bool) error {
	if data == "" {
		return nil
	}
	switch b.mode {
	case InTable, InTableBody, InRow:
		if len(b.pendingTableText) == 0 {
			b.tableTextOriginalMode = b.mode
			b.tableTextHadNonSpace = false
		}
		aug := sink.Augment{}
		if synthesized {
			aug.Synthesized = true
		}
		b.pendingTableText = append(b.pendingTableText, pendingChar{data: data, aug: aug})
		if strings.TrimLeft(data, " \t\n\f\r") != "" {
			b.tableTextHadNonSpace = true
		}
		b.mode = InTableText
		return nil
	default:
		aug := sink.Augment{}
		if synthesized {
			aug.Synthesized = true
		}
		return b.sink.Characters(data, aug)
	}
}

// resolvePendingTableText is called whenever IN_TABLE_TEXT sees a token
// other than a character token: whitespace-only runs are emitted in place
// (they're legal directly inside table/tbody/tr), while a run containing
// non-whitespace is moved to the deferred queue for replay after </table>.
func (b *Balancer) resolvePendingTableText() error {
	if len(b.pendingTableText) == 0 {
		b.mode = b.tableTextOriginalMode
		return nil
	}
	if b.tableTextHadNonSpace {
		b.err("table-text-deferred", perr.RecoveryBestEffort)
		b.deferredTableText = append(b.deferredTableText, b.pendingTableText...)
	} else {
		for _, pc := range b.pendingTableText {
			if err := b.sink.Characters(pc.data, pc.aug); err != nil {
				return err
			}
		}
	}
	b.pendingTableText = nil
	b.tableTextHadNonSpace = false
	b.mode = b.tableTextOriginalMode
	return nil
}

// flushDeferredTableText replays character runs that landed inside a table
// but outside any cell/caption, after the enclosing table element has
// closed. Called both when </table> is processed and (defensively) at
// end-of-document for an unterminated table.
func (b *Balancer) flushDeferredTableText() error {
	if len(b.deferredTableText) == 0 {
		return nil
	}
	pending := b.deferredTableText
	b.deferredTableText = nil
	for _, pc := range pending {
		if err := b.sink.Characters(pc.data, pc.aug); err != nil {
			return err
		}
	}
	return nil
}
