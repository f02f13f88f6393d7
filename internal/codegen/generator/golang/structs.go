package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/wuespace/mavgen/internal/codegen/common"
	"github.com/wuespace/mavgen/internal/codegen/meta"
	"github.com/wuespace/mavgen/internal/mavlink"
)

const DefaultPackage = "message"

type codeBuilder struct {
	buf    bytes.Buffer
	indent int
}

func (b *codeBuilder) P(format string, args ...any) {
	for i := 0; i < b.indent; i++ {
		b.buf.WriteString("\t")
	}
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteString("\n")
}

func (b *codeBuilder) In()  { b.indent++ }
func (b *codeBuilder) Out() { b.indent-- }

func (b *codeBuilder) Bytes() ([]byte, error) {
	return format.Source(b.buf.Bytes())
}

// Renderer emits one Go file per message.
type Renderer struct{}

func (Renderer) Lang() string { return "go" }

func (Renderer) FileName(msg *mavlink.Message, _ *meta.Metadata) string {
	return strings.ToLower(msg.Name) + ".go"
}

// Render produces a gofmt'ed Go source file declaring the message struct and its metadata.
func (Renderer) Render(msg *mavlink.Message, md *meta.Metadata) ([]byte, error) {
	typeName := TypeName(msg.Name)
	g := &codeBuilder{}

	g.P("// Code generated by mavgen v%s from %s. DO NOT EDIT.", md.Version, sourceName(md))
	g.P("")
	g.P("package %s", PackageName(md.Package))
	g.P("")

	g.P("// %s is MAVLink message %s (id %d).", typeName, msg.Name, msg.ID)
	if msg.Description != "" {
		g.P("//")
		for _, line := range wrap(msg.Description, 90) {
			g.P("// %s", line)
		}
	}
	if msg.WIP {
		g.P("//")
		g.P("// Deprecated: work in progress, the definition might change.")
	}
	g.P("type %s struct {", typeName)
	g.In()
	for _, f := range msg.Fields {
		if f.Description != "" {
			for _, line := range wrap(f.Description, 86) {
				g.P("// %s", line)
			}
		}
		g.P("%s %s `%s`", common.SanitizeLeadingDigit(common.ToPascalCase(f.Name)), goType(f), fieldTag(f))
	}
	g.Out()
	g.P("}")
	g.P("")

	g.P("const (")
	g.In()
	g.P("%sID uint32 = %d", typeName, msg.ID)
	g.P("%sCRCExtra uint8 = %d", typeName, msg.CRCExtra)
	g.P("%sPayloadLength = %d", typeName, msg.PayloadLength())
	g.P("%sMaxPayloadLength = %d", typeName, msg.MaxPayloadLength())
	g.Out()
	g.P(")")
	g.P("")

	g.P("// MessageID returns the MAVLink message id.")
	g.P("func (*%s) MessageID() uint32 { return %sID }", typeName, typeName)
	g.P("")
	g.P("// CRCExtra returns the CRC-EXTRA seed of the message definition.")
	g.P("func (*%s) CRCExtra() uint8 { return %sCRCExtra }", typeName, typeName)

	out, err := g.Bytes()
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", typeName, err)
	}
	return out, nil
}

// TypeName converts a MAVLink message name to an exported Go identifier.
func TypeName(name string) string {
	return common.SanitizeLeadingDigit(common.ToPascalCase(name))
}

// PackageName derives a Go package clause from a dotted or slashed package path.
func PackageName(pkg string) string {
	if i := strings.LastIndexAny(pkg, "./"); i >= 0 {
		pkg = pkg[i+1:]
	}
	pkg = strings.ToLower(strings.ReplaceAll(pkg, "-", "_"))
	if pkg == "" {
		return DefaultPackage
	}
	return pkg
}

func goType(f *mavlink.Field) string {
	var t string
	switch f.Type {
	case mavlink.Uint8, mavlink.Char:
		t = "uint8"
	case mavlink.Uint16:
		t = "uint16"
	case mavlink.Uint32:
		t = "uint32"
	case mavlink.Uint64:
		t = "uint64"
	case mavlink.Int8:
		t = "int8"
	case mavlink.Int16:
		t = "int16"
	case mavlink.Int32:
		t = "int32"
	case mavlink.Int64:
		t = "int64"
	case mavlink.Float32:
		t = "float32"
	case mavlink.Float64:
		t = "float64"
	}
	if f.IsArray() {
		return fmt.Sprintf("[%d]%s", f.ArrayLength, t)
	}
	return t
}

func fieldTag(f *mavlink.Field) string {
	opts := f.Type.Name()
	if f.IsArray() {
		opts = fmt.Sprintf("%s,len=%d", opts, f.ArrayLength)
	}
	if f.Extension {
		opts += ",extension"
	}
	return fmt.Sprintf(`mavlink:"%s,%s" json:"%s"`, f.Name, opts, f.Name)
}

func sourceName(md *meta.Metadata) string {
	if md.Source == "" {
		return "schema"
	}
	s := md.Source
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// wrap splits text into lines of at most width bytes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
