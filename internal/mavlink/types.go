// Package mavlink models MAVLink messages: wire types, field layout and the CRC-EXTRA seed.
package mavlink

import (
	"fmt"
	"strings"
)

// WireType is one of the primitive MAVLink wire types.
type WireType struct {
	name       string
	size       int
	nativeType string
}

// Name returns the canonical C type name used in the CRC-EXTRA signature (e.g. "uint16_t").
func (t WireType) Name() string { return t.name }

// Size returns the storage size of one element in bytes.
func (t WireType) Size() int { return t.size }

// NativeType returns the representation tag consumed by renderers (e.g. "UINT_16").
func (t WireType) NativeType() string { return t.nativeType }

// IsZero reports whether t is the unresolved zero value.
func (t WireType) IsZero() bool { return t.name == "" }

func (t WireType) String() string { return t.name }

var (
	Uint8   = WireType{"uint8_t", 1, "UINT_8"}
	Uint16  = WireType{"uint16_t", 2, "UINT_16"}
	Uint32  = WireType{"uint32_t", 4, "UINT_32"}
	Uint64  = WireType{"uint64_t", 8, "UINT_64"}
	Int8    = WireType{"int8_t", 1, "INT_8"}
	Int16   = WireType{"int16_t", 2, "INT_16"}
	Int32   = WireType{"int32_t", 4, "INT_32"}
	Int64   = WireType{"int64_t", 8, "INT_64"}
	Float32 = WireType{"float", 4, "FLOAT"}
	Float64 = WireType{"double", 8, "DOUBLE"}
	Char    = WireType{"char", 1, "CHAR"}
)

// catalog is checked in order, first containment match wins. The unsigned
// types must stay ahead of the signed ones since "int8_t" is a substring of
// "uint8_t".
var catalog = []struct {
	match string
	typ   WireType
}{
	{"uint8_t", Uint8},
	{"uint16_t", Uint16},
	{"uint32_t", Uint32},
	{"uint64_t", Uint64},
	{"int8_t", Int8},
	{"int16_t", Int16},
	{"int32_t", Int32},
	{"int64_t", Int64},
	{"float", Float32},
	{"double", Float64},
	{"char", Char},
}

// ResolveType maps a schema type token to its wire type. Tokens may carry
// decorations such as "uint8_t_mavlink_version" or an array suffix.
func ResolveType(token string) (WireType, error) {
	for _, c := range catalog {
		if strings.Contains(token, c.match) {
			return c.typ, nil
		}
	}
	return WireType{}, fmt.Errorf("%w: %q", ErrUnknownType, token)
}

// WireTypes returns every catalog entry in resolution order.
func WireTypes() []WireType {
	out := make([]WireType, len(catalog))
	for i, c := range catalog {
		out[i] = c.typ
	}
	return out
}
