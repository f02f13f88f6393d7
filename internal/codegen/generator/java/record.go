package java

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/wuespace/mavgen/internal/codegen/common"
	"github.com/wuespace/mavgen/internal/codegen/meta"
	"github.com/wuespace/mavgen/internal/mavlink"
)

const (
	DefaultPackage        = "org.telestion.adapter.mavlink.message"
	DefaultRuntimePackage = "org.telestion.protocol.mavlink"
)

const recordTemplate = `package {{.Package}};

import {{.RuntimePackage}}.annotation.MavField;
import {{.RuntimePackage}}.annotation.MavInfo;
import {{.RuntimePackage}}.annotation.NativeType;
{{- if .HasArrays}}
import {{.RuntimePackage}}.annotation.MavArray;
{{- end}}
{{- if .ImportMessage}}
import {{.RuntimePackage}}.message.MavlinkMessage;
{{- end}}

import com.fasterxml.jackson.annotation.JsonProperty;

/**
 * {{.Description}}<br>
 * <br>
 * <i>{{.GeneratedBy}}</i>
 *
 * @version {{.Version}} (autogenerated)
{{- if .WIP}}
 * @deprecated This is still WIP and might change!
{{- end}}
 */
{{- if .WIP}}
@Deprecated
{{- end}}
@MavInfo(id = {{.ID}}, crc = {{.CRC}})
public record {{.Name}}({{range $i, $f := .Fields}}{{if $i}},{{end}}
	/**
	 * {{$f.Doc}}<br>
	 * <br>
	 * <i>{{$.GeneratedBy}}</i>
	 */
{{- if $f.ArrayLength}}
	@MavArray(length = {{$f.ArrayLength}})
{{- end}}
	@MavField(nativeType = NativeType.{{$f.NativeType}}{{if $f.Extension}}, extension = true{{end}})
	@JsonProperty {{$f.JavaType}} {{$f.Name}}{{end}}) implements MavlinkMessage {
{{- if .Fields}}
	/**
	 * There shall be no default-constructor for normal developers.
	 */
	@SuppressWarnings("unused")
	private {{.Name}}() {
		this({{.Defaults}});
	}
{{- end}}
}
`

var tmpl = template.Must(template.New("record").Parse(recordTemplate))

type recordField struct {
	Doc         string
	Name        string
	JavaType    string
	NativeType  string
	ArrayLength int
	Extension   bool
}

type recordData struct {
	Package        string
	RuntimePackage string
	ImportMessage  bool
	HasArrays      bool
	Description    string
	GeneratedBy    string
	Version        string
	WIP            bool
	ID             uint32
	CRC            uint8
	Name           string
	Fields         []recordField
	Defaults       string
}

// Renderer emits one Java record per message.
type Renderer struct{}

func (Renderer) Lang() string { return "java" }

// FileName places the record under the directory matching its package.
func (Renderer) FileName(msg *mavlink.Message, md *meta.Metadata) string {
	return filepath.Join(strings.ReplaceAll(packageOf(md), ".", string(filepath.Separator)), RecordName(msg.Name)+".java")
}

// Render produces the Java source of msg.
func (Renderer) Render(msg *mavlink.Message, md *meta.Metadata) ([]byte, error) {
	pkg := packageOf(md)
	runtimePkg := md.RuntimePackage
	if runtimePkg == "" {
		runtimePkg = DefaultRuntimePackage
	}

	data := recordData{
		Package:        pkg,
		RuntimePackage: runtimePkg,
		ImportMessage:  pkg != runtimePkg+".message",
		HasArrays:      msg.HasArrays(),
		Description:    escapeJavadoc(msg.Description),
		GeneratedBy:    common.GeneratedBy(md.Version),
		Version:        md.Version,
		WIP:            msg.WIP,
		ID:             msg.ID,
		CRC:            msg.CRCExtra,
		Name:           RecordName(msg.Name),
	}

	defaults := make([]string, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		data.Fields = append(data.Fields, recordField{
			Doc:         escapeJavadoc(f.Description),
			Name:        ComponentName(f.Name),
			JavaType:    javaType(f),
			NativeType:  f.Type.NativeType(),
			ArrayLength: f.ArrayLength,
			Extension:   f.Extension,
		})
		defaults = append(defaults, defaultValue(f))
	}
	data.Defaults = strings.Join(defaults, ", ")

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute record template: %w", err)
	}
	return buf.Bytes(), nil
}

// RecordName converts a MAVLink message name to the Java record name, e.g. PARAM_VALUE -> ParamValue.
func RecordName(name string) string {
	return common.SanitizeLeadingDigit(common.ToPascalCase(name))
}

// ComponentName converts a field name to a record component name, avoiding Java keywords.
func ComponentName(name string) string {
	n := common.ToCamelCase(name)
	if isJavaKeyword(n) {
		return n + "_"
	}
	return n
}

func packageOf(md *meta.Metadata) string {
	if md.Package == "" {
		return DefaultPackage
	}
	return md.Package
}

func javaType(f *mavlink.Field) string {
	var t string
	switch f.Type {
	case mavlink.Int64, mavlink.Uint32, mavlink.Uint64:
		t = "long"
	case mavlink.Float32, mavlink.Float64:
		t = "double"
	case mavlink.Char:
		t = "char"
	default:
		t = "int"
	}
	if f.IsArray() {
		t += "[]"
	}
	return t
}

func defaultValue(f *mavlink.Field) string {
	switch {
	case f.IsArray():
		return "null"
	case f.Type == mavlink.Char:
		return "(char) 0"
	default:
		return "0"
	}
}

var javadocEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "*/", "*&#47;")

func escapeJavadoc(s string) string {
	return javadocEscaper.Replace(s)
}

func isJavaKeyword(s string) bool {
	keywords := map[string]bool{
		"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
		"case": true, "catch": true, "char": true, "class": true, "const": true,
		"continue": true, "default": true, "do": true, "double": true, "else": true,
		"enum": true, "extends": true, "final": true, "finally": true, "float": true,
		"for": true, "goto": true, "if": true, "implements": true, "import": true,
		"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
		"new": true, "package": true, "private": true, "protected": true, "public": true,
		"return": true, "short": true, "static": true, "strictfp": true, "super": true,
		"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
		"transient": true, "try": true, "void": true, "volatile": true, "while": true,
		"record": true, "yield": true, "var": true, "true": true, "false": true, "null": true,
	}
	return keywords[s]
}
