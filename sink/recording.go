package sink

// RecordedEvent is one call captured by Recording, tagged by Kind so a
// test can assert on the whole sequence with a single slice comparison
// (go-cmp or reflect.DeepEqual), the same shape the prior
// stream.Event gives callers of stream.Stream.
type RecordedEvent struct {
	Kind string

	Name         string
	NamespaceURI string
	Attrs        []Attr
	Data         string
	Target       string
	PublicID     string
	SystemID     string
	ForceQuirks  bool
	EncodingName string
	Version      string
	Standalone   *bool
	NamespaceAware bool

	Aug Augment
}

// Recording is a Sink that appends every call to Events, for use in
// balancer scenario tests in place of a real tree or serializer.
type Recording struct {
	Events []RecordedEvent
}

func (r *Recording) StartDocument(encodingName string, namespaceAware bool, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "StartDocument", EncodingName: encodingName, NamespaceAware: namespaceAware, Aug: aug})
	return nil
}

func (r *Recording) XMLDecl(version, encodingName string, standalone *bool, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "XMLDecl", Version: version, EncodingName: encodingName, Standalone: standalone, Aug: aug})
	return nil
}

func (r *Recording) DoctypeDecl(name, publicID, systemID string, forceQuirks bool, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "DoctypeDecl", Name: name, PublicID: publicID, SystemID: systemID, ForceQuirks: forceQuirks, Aug: aug})
	return nil
}

func (r *Recording) StartElement(name, namespaceURI string, attrs []Attr, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "StartElement", Name: name, NamespaceURI: namespaceURI, Attrs: attrs, Aug: aug})
	return nil
}

func (r *Recording) EndElement(name, namespaceURI string, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "EndElement", Name: name, NamespaceURI: namespaceURI, Aug: aug})
	return nil
}

func (r *Recording) Characters(data string, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "Characters", Data: data, Aug: aug})
	return nil
}

func (r *Recording) Comment(data string, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "Comment", Data: data, Aug: aug})
	return nil
}

func (r *Recording) ProcessingInstruction(target, data string, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "ProcessingInstruction", Target: target, Data: data, Aug: aug})
	return nil
}

func (r *Recording) StartCDATA(aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "StartCDATA", Aug: aug})
	return nil
}

func (r *Recording) EndCDATA(aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "EndCDATA", Aug: aug})
	return nil
}

func (r *Recording) StartGeneralEntity(name string, aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "StartGeneralEntity", Name: name, Aug: aug})
	return nil
}

func (r *Recording) EndGeneralEntity(aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "EndGeneralEntity", Aug: aug})
	return nil
}

func (r *Recording) EndDocument(aug Augment) error {
	r.Events = append(r.Events, RecordedEvent{Kind: "EndDocument", Aug: aug})
	return nil
}

// Names returns just the Kind/Name pairs, handy for quick sequence
// assertions without comparing full augmentation bags.
func (r *Recording) Names() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		if e.Name != "" {
			out[i] = e.Kind + ":" + e.Name
		} else {
			out[i] = e.Kind
		}
	}
	return out
}
