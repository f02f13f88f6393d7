package mavlink

import "slices"

// Dialect describes how a schema generation marks and treats extension fields.
type Dialect struct {
	Name string
	// ExtensionMarkers are the element names that open the extension region of a message.
	ExtensionMarkers []string
	// DropExtensions removes extension fields from the model instead of flagging them.
	DropExtensions bool
	// MaxMessageID is the largest id a frame of this protocol version can carry.
	MaxMessageID uint32
}

var (
	DialectV1 = Dialect{
		Name:             "v1",
		ExtensionMarkers: []string{"extensions", "extension"},
		DropExtensions:   true,
		MaxMessageID:     0xFF,
	}
	DialectV2 = Dialect{
		Name:             "v2",
		ExtensionMarkers: []string{"extensions"},
		MaxMessageID:     0xFFFFFF,
	}
)

// IsExtensionMarker reports whether an element name opens the extension region.
func (d Dialect) IsExtensionMarker(tag string) bool {
	return slices.Contains(d.ExtensionMarkers, tag)
}

// DialectByName returns the dialect registered under name.
func DialectByName(name string) (Dialect, bool) {
	switch name {
	case DialectV1.Name, "1":
		return DialectV1, true
	case DialectV2.Name, "2", "":
		return DialectV2, true
	}
	return Dialect{}, false
}
