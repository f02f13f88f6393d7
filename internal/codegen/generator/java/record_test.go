package java

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuespace/mavgen/internal/codegen/meta"
	"github.com/wuespace/mavgen/internal/mavlink"
)

func field(t *testing.T, token, name, desc string, ext bool) *mavlink.Field {
	t.Helper()
	f, err := mavlink.NewField(token, name, desc, ext)
	require.NoError(t, err)
	return f
}

func TestRenderStatustext(t *testing.T) {
	msg, err := mavlink.NewMessage(253, "STATUSTEXT", "Status text message. <b>bold</b>", false, []*mavlink.Field{
		field(t, "uint8_t", "severity", "Severity of status.", false),
		field(t, "char[50]", "text", "Status text message", false),
		field(t, "uint16_t", "id", "Unique identifier", true),
	})
	require.NoError(t, err)

	out, err := Renderer{}.Render(msg, &meta.Metadata{Version: "1.0.0"})
	require.NoError(t, err)
	src := string(out)

	assert.True(t, strings.HasPrefix(src, "package org.telestion.adapter.mavlink.message;\n"))
	assert.Contains(t, src, "import org.telestion.protocol.mavlink.annotation.MavArray;")
	assert.Contains(t, src, "import org.telestion.protocol.mavlink.message.MavlinkMessage;")
	assert.Contains(t, src, "import com.fasterxml.jackson.annotation.JsonProperty;")
	assert.Contains(t, src, " * Status text message. &lt;b&gt;bold&lt;/b&gt;<br>")
	assert.Contains(t, src, "<i>Autogenerated by mavgen v1.0.0</i>")
	assert.Contains(t, src, "@MavInfo(id = 253, crc = 83)")
	assert.Contains(t, src, "public record Statustext(")
	assert.Contains(t, src, "\t@MavArray(length = 50)\n\t@MavField(nativeType = NativeType.CHAR)\n\t@JsonProperty char[] text,")
	assert.Contains(t, src, "@MavField(nativeType = NativeType.UINT_16, extension = true)\n\t@JsonProperty int id) implements MavlinkMessage {")
	assert.Contains(t, src, "\t\tthis(0, null, 0);")
	assert.NotContains(t, src, "@Deprecated")

	severity := strings.Index(src, "severity,")
	text := strings.Index(src, "text,")
	id := strings.Index(src, "int id)")
	assert.True(t, severity < text && text < id, "components must follow wire order")
}

func TestRenderWIPAndTypes(t *testing.T) {
	msg, err := mavlink.NewMessage(0, "HEARTBEAT", "The heartbeat message", true, []*mavlink.Field{
		field(t, "uint8_t", "type", "", false),
		field(t, "uint32_t", "custom_mode", "", false),
		field(t, "float", "value", "", false),
		field(t, "char", "flag", "", false),
	})
	require.NoError(t, err)

	out, err := Renderer{}.Render(msg, &meta.Metadata{Version: "1.0.0", Package: "org.telestion.protocol.mavlink.message"})
	require.NoError(t, err)
	src := string(out)

	assert.Contains(t, src, " * @deprecated This is still WIP and might change!\n */\n@Deprecated\n@MavInfo(id = 0, crc = ")
	assert.NotContains(t, src, "import org.telestion.protocol.mavlink.message.MavlinkMessage;")
	assert.NotContains(t, src, "MavArray")
	assert.Contains(t, src, "@JsonProperty long customMode,")
	assert.Contains(t, src, "@JsonProperty double value,")
	assert.Contains(t, src, "@JsonProperty int type,")
	assert.Contains(t, src, "@JsonProperty char flag)")
	assert.Contains(t, src, "this(0, 0, 0, (char) 0);")
}

func TestRenderNoFields(t *testing.T) {
	msg, err := mavlink.NewMessage(5, "PING_EMPTY", "Nothing to see.", false, nil)
	require.NoError(t, err)

	out, err := Renderer{}.Render(msg, &meta.Metadata{Version: "1.0.0"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "public record PingEmpty() implements MavlinkMessage {\n}\n")
}

func TestFileName(t *testing.T) {
	msg, err := mavlink.NewMessage(22, "PARAM_VALUE", "", false, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("org", "telestion", "adapter", "mavlink", "message", "ParamValue.java"),
		Renderer{}.FileName(msg, &meta.Metadata{}))
	assert.Equal(t, filepath.Join("com", "example", "ParamValue.java"),
		Renderer{}.FileName(msg, &meta.Metadata{Package: "com.example"}))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "ParamValue", RecordName("PARAM_VALUE"))
	assert.Equal(t, "customMode", ComponentName("custom_mode"))
	assert.Equal(t, "class_", ComponentName("class"))
}
