package mavlink

import (
	"slices"
)

// Message is a fully laid out MAVLink message. Fields are stored in wire
// order, not declaration order.
type Message struct {
	ID          uint32
	Name        string
	Description string
	WIP         bool
	Fields      []*Field
	CRCExtra    uint8
}

// NewMessage lays out the declared fields in wire order and computes the CRC-EXTRA seed.
func NewMessage(id uint32, name, description string, wip bool, declared []*Field) (*Message, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	fields := WireOrder(declared)
	return &Message{
		ID:          id,
		Name:        name,
		Description: description,
		WIP:         wip,
		Fields:      fields,
		CRCExtra:    CRCExtra(name, fields),
	}, nil
}

// WireOrder returns the fields in on-wire order: base fields sorted by
// descending element size (ties keep declaration order), followed by the
// extension fields in declaration order.
func WireOrder(fields []*Field) []*Field {
	out := make([]*Field, 0, len(fields))
	for _, f := range fields {
		if !f.Extension {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(a, b *Field) int {
		return b.Type.Size() - a.Type.Size()
	})
	for _, f := range fields {
		if f.Extension {
			out = append(out, f)
		}
	}
	return out
}

// BaseFields returns the non-extension fields in wire order.
func (m *Message) BaseFields() []*Field {
	var out []*Field
	for _, f := range m.Fields {
		if !f.Extension {
			out = append(out, f)
		}
	}
	return out
}

// ExtensionFields returns the extension fields in declaration order.
func (m *Message) ExtensionFields() []*Field {
	var out []*Field
	for _, f := range m.Fields {
		if f.Extension {
			out = append(out, f)
		}
	}
	return out
}

// HasArrays reports whether any field is a fixed-length array.
func (m *Message) HasArrays() bool {
	return slices.ContainsFunc(m.Fields, (*Field).IsArray)
}

// PayloadLength is the payload size of the base fields, i.e. what a MAVLink 1 peer sends.
func (m *Message) PayloadLength() int {
	n := 0
	for _, f := range m.BaseFields() {
		n += f.ByteSize()
	}
	return n
}

// MaxPayloadLength includes the extension fields.
func (m *Message) MaxPayloadLength() int {
	n := 0
	for _, f := range m.Fields {
		n += f.ByteSize()
	}
	return n
}

// Signature returns the bytes CRCExtra was computed from.
func (m *Message) Signature() []byte {
	return Signature(m.Name, m.Fields)
}
