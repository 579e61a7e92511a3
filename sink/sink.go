// Package sink defines the Event Sink contract: the balancer is a pure
// producer and knows nothing about trees, selectors, or serialization —
// it only pushes a balanced event stream at whatever Sink implementation
// the caller supplies. Grounded on the prior stream.Event shape
// (stream/stream.go), widened into the full external event list a
// complete HTML5 tree-construction observer needs, and restructured from
// a channel-send API into a push-callback interface so a callback can
// raise the cancellation signal below.
package sink

import "errors"

// ErrStop is returned by a Sink method to request that the pipeline halt
// immediately: no further events are delivered and the parse call
// returns this error to its caller.
var ErrStop = errors.New("sink: stop requested")

// Position is a 1-based line/column location in the original decoded
// character stream.
type Position struct {
	Line int
	Column int
}

// Augment is the augmentation bag attached to every event: begin/end
// location plus whether the balancer synthesized the token
// (an implicit <html>/<head>/<body>/<tbody> open, an implied end tag, a
// reopened formatting element) rather than the scanner having reported it.
type Augment struct {
	Begin Position
	End Position
	Synthesized bool
}

// AugmentSynthesized returns an empty Augment with Synthesized set, a
// shorthand for the common case of a balancer-inserted token with no
// source location of its own.
func AugmentSynthesized() Augment {
	return Augment{Synthesized: true}
}

// Attr is a single element attribute, namespace-resolved by the balancer
// when namespace-aware mode is enabled (the "Namespaces" rule).
type Attr struct {
	Prefix string
	LocalName string
	NamespaceURL string
	Value string
}

// QName returns the attribute's serialized name: "prefix:local" when a
// prefix is bound, else just the local name.
func (a Attr) QName() string {
	if a.Prefix == "" {
		return a.LocalName
	}
	return a.Prefix + ":" + a.LocalName
}

// Sink receives the balanced event stream produced by balancer.Balancer.
// Every method may return ErrStop (or any other error, treated the same
// way) to cancel the in-progress parse; all other return values are
// reserved for future use and should be nil.
type Sink interface {
	StartDocument(encodingName string, namespaceAware bool, aug Augment) error
	XMLDecl(version, encodingName string, standalone *bool, aug Augment) error
	DoctypeDecl(name, publicID, systemID string, forceQuirks bool, aug Augment) error
	StartElement(name string, namespaceURI string, attrs []Attr, aug Augment) error
	EndElement(name string, namespaceURI string, aug Augment) error
	Characters(data string, aug Augment) error
	Comment(data string, aug Augment) error
	ProcessingInstruction(target, data string, aug Augment) error
	StartCDATA(aug Augment) error
	EndCDATA(aug Augment) error
	StartGeneralEntity(name string, aug Augment) error
	EndGeneralEntity(aug Augment) error
	EndDocument(aug Augment) error
}
