package mavlink

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is a single declared message field.
type Field struct {
	Type        WireType
	ArrayLength int // 0 for scalars
	Name        string
	Description string
	Extension   bool
}

// NewField builds a field from a raw schema type token such as "uint16_t" or "char[16]".
func NewField(token, name, description string, extension bool) (*Field, error) {
	base, length, err := splitArray(token)
	if err != nil {
		return nil, wrapWithField(err, name)
	}
	typ, err := ResolveType(base)
	if err != nil {
		return nil, wrapWithField(err, name)
	}
	return &Field{
		Type:        typ,
		ArrayLength: length,
		Name:        name,
		Description: description,
		Extension:   extension,
	}, nil
}

// IsArray reports whether the field is a fixed-length array.
func (f *Field) IsArray() bool { return f.ArrayLength > 0 }

// ByteSize returns the number of payload bytes the field occupies.
func (f *Field) ByteSize() int {
	if f.IsArray() {
		return f.Type.Size() * f.ArrayLength
	}
	return f.Type.Size()
}

// TypeToken returns the canonical type token, e.g. "char[16]".
func (f *Field) TypeToken() string {
	if f.IsArray() {
		return f.Type.Name() + "[" + strconv.Itoa(f.ArrayLength) + "]"
	}
	return f.Type.Name()
}

// splitArray separates "type[N]" into "type" and N. Tokens without brackets return length 0.
func splitArray(token string) (string, int, error) {
	open := strings.IndexByte(token, '[')
	closing := strings.IndexByte(token, ']')
	switch {
	case open < 0 && closing < 0:
		return token, 0, nil
	case open < 0 || closing < open:
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedArraySyntax, token)
	case closing != len(token)-1:
		return "", 0, fmt.Errorf("%w: trailing characters in %q", ErrMalformedArraySyntax, token)
	}

	n, err := strconv.Atoi(token[open+1 : closing])
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("%w: length in %q is not a positive integer", ErrMalformedArraySyntax, token)
	}
	return token[:open], n, nil
}
