package mavlink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuespace/mavgen/internal/mavlink"
)

func mustField(t *testing.T, token, name string, ext bool) *mavlink.Field {
	t.Helper()
	f, err := mavlink.NewField(token, name, "", ext)
	require.NoError(t, err)
	return f
}

func fieldNames(fields []*mavlink.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		token string
		want  mavlink.WireType
	}{
		{"uint8_t", mavlink.Uint8},
		{"uint16_t", mavlink.Uint16},
		{"uint16_t[4]", mavlink.Uint16},
		{"uint32_t", mavlink.Uint32},
		{"uint64_t", mavlink.Uint64},
		{"int8_t", mavlink.Int8},
		{"int16_t", mavlink.Int16},
		{"int32_t", mavlink.Int32},
		{"int64_t", mavlink.Int64},
		{"float", mavlink.Float32},
		{"float[4]", mavlink.Float32},
		{"double", mavlink.Float64},
		{"char", mavlink.Char},
		{"char[16]", mavlink.Char},
		{"uint8_t_mavlink_version", mavlink.Uint8},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := mavlink.ResolveType(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := mavlink.ResolveType(tt.token)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestResolveTypeUnknown(t *testing.T) {
	_, err := mavlink.ResolveType("weird_t")
	require.ErrorIs(t, err, mavlink.ErrUnknownType)
	assert.Contains(t, err.Error(), "weird_t")
}

func TestWireTypeSizes(t *testing.T) {
	sizes := map[string]int{
		"uint8_t": 1, "uint16_t": 2, "uint32_t": 4, "uint64_t": 8,
		"int8_t": 1, "int16_t": 2, "int32_t": 4, "int64_t": 8,
		"float": 4, "double": 8, "char": 1,
	}
	types := mavlink.WireTypes()
	require.Len(t, types, len(sizes))
	for _, typ := range types {
		assert.Equal(t, sizes[typ.Name()], typ.Size(), typ.Name())
		assert.NotEmpty(t, typ.NativeType())
	}
}

func TestNewField(t *testing.T) {
	f, err := mavlink.NewField("char[16]", "text", "Status text", false)
	require.NoError(t, err)
	assert.Equal(t, mavlink.Char, f.Type)
	assert.Equal(t, 16, f.ArrayLength)
	assert.True(t, f.IsArray())
	assert.Equal(t, 1, f.Type.Size())
	assert.Equal(t, 16, f.ByteSize())
	assert.Equal(t, "char[16]", f.TypeToken())
	assert.Equal(t, "Status text", f.Description)

	scalar := mustField(t, "uint32_t", "custom_mode", false)
	assert.False(t, scalar.IsArray())
	assert.Equal(t, 0, scalar.ArrayLength)
	assert.Equal(t, "uint32_t", scalar.TypeToken())
}

func TestNewFieldErrors(t *testing.T) {
	tests := []struct {
		token string
		want  error
	}{
		{"weird_t", mavlink.ErrUnknownType},
		{"weird_t[3]", mavlink.ErrUnknownType},
		{"char[16", mavlink.ErrMalformedArraySyntax},
		{"char16]", mavlink.ErrMalformedArraySyntax},
		{"char]16[", mavlink.ErrMalformedArraySyntax},
		{"char[]", mavlink.ErrMalformedArraySyntax},
		{"char[abc]", mavlink.ErrMalformedArraySyntax},
		{"char[0]", mavlink.ErrMalformedArraySyntax},
		{"char[-2]", mavlink.ErrMalformedArraySyntax},
		{"char[2]x", mavlink.ErrMalformedArraySyntax},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := mavlink.NewField(tt.token, "value", "", false)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "field value")
		})
	}
}

func TestWireOrder(t *testing.T) {
	fields := []*mavlink.Field{
		mustField(t, "uint8_t", "a", false),
		mustField(t, "uint64_t", "b", false),
		mustField(t, "uint16_t", "c", false),
		mustField(t, "uint64_t", "ext_big", true),
		mustField(t, "char[32]", "d", false),
		mustField(t, "uint8_t", "ext_small", true),
		mustField(t, "float", "e", false),
		mustField(t, "uint16_t", "f", false),
	}

	ordered := mavlink.WireOrder(fields)
	assert.Equal(t, []string{"b", "e", "c", "f", "a", "d", "ext_big", "ext_small"}, fieldNames(ordered))
	assert.Equal(t, "a", fields[0].Name, "input must not be reordered")

	again := mavlink.WireOrder(ordered)
	assert.Equal(t, fieldNames(ordered), fieldNames(again))
}

func TestWireOrderExtensionsTrailBase(t *testing.T) {
	fields := []*mavlink.Field{
		mustField(t, "uint8_t", "ext1", true),
		mustField(t, "uint8_t", "base1", false),
		mustField(t, "double", "ext2", true),
		mustField(t, "int32_t", "base2", false),
	}

	ordered := mavlink.WireOrder(fields)
	assert.Equal(t, []string{"base2", "base1", "ext1", "ext2"}, fieldNames(ordered))
}

func heartbeatFields(t *testing.T) []*mavlink.Field {
	return []*mavlink.Field{
		mustField(t, "uint8_t", "type", false),
		mustField(t, "uint8_t", "autopilot", false),
		mustField(t, "uint8_t", "base_mode", false),
		mustField(t, "uint32_t", "custom_mode", false),
		mustField(t, "uint8_t", "system_status", false),
		mustField(t, "uint8_t_mavlink_version", "mavlink_version", false),
	}
}

func TestHeartbeat(t *testing.T) {
	msg, err := mavlink.NewMessage(0, "HEARTBEAT", "The heartbeat message", false, heartbeatFields(t))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"custom_mode", "type", "autopilot", "base_mode", "system_status", "mavlink_version"},
		fieldNames(msg.Fields))
	assert.Equal(t,
		"HEARTBEAT uint32_t custom_mode uint8_t type uint8_t autopilot uint8_t base_mode uint8_t system_status uint8_t mavlink_version ",
		string(msg.Signature()))
	assert.Equal(t, uint8(50), msg.CRCExtra)
	assert.Equal(t, 9, msg.PayloadLength())
	assert.Equal(t, 9, msg.MaxPayloadLength())
	assert.False(t, msg.HasArrays())
}

func TestCRCExtraGolden(t *testing.T) {
	tests := []struct {
		name   string
		fields []*mavlink.Field
		want   uint8
	}{
		{
			name: "SYS_STATUS",
			fields: []*mavlink.Field{
				mustField(t, "uint32_t", "onboard_control_sensors_present", false),
				mustField(t, "uint32_t", "onboard_control_sensors_enabled", false),
				mustField(t, "uint32_t", "onboard_control_sensors_health", false),
				mustField(t, "uint16_t", "load", false),
				mustField(t, "uint16_t", "voltage_battery", false),
				mustField(t, "int16_t", "current_battery", false),
				mustField(t, "int8_t", "battery_remaining", false),
				mustField(t, "uint16_t", "drop_rate_comm", false),
				mustField(t, "uint16_t", "errors_comm", false),
				mustField(t, "uint16_t", "errors_count1", false),
				mustField(t, "uint16_t", "errors_count2", false),
				mustField(t, "uint16_t", "errors_count3", false),
				mustField(t, "uint16_t", "errors_count4", false),
				mustField(t, "uint32_t", "onboard_control_sensors_present_extended", true),
			},
			want: 124,
		},
		{
			name: "PARAM_VALUE",
			fields: []*mavlink.Field{
				mustField(t, "char[16]", "param_id", false),
				mustField(t, "float", "param_value", false),
				mustField(t, "uint8_t", "param_type", false),
				mustField(t, "uint16_t", "param_count", false),
				mustField(t, "uint16_t", "param_index", false),
			},
			want: 220,
		},
		{
			name: "STATUSTEXT",
			fields: []*mavlink.Field{
				mustField(t, "uint8_t", "severity", false),
				mustField(t, "char[50]", "text", false),
				mustField(t, "uint16_t", "id", true),
				mustField(t, "uint8_t", "chunk_seq", true),
			},
			want: 83,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := mavlink.NewMessage(1, tt.name, "", false, tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.CRCExtra)
		})
	}
}

func TestCRCExtraIgnoresExtensions(t *testing.T) {
	base := heartbeatFields(t)
	plain, err := mavlink.NewMessage(0, "HEARTBEAT", "", false, base)
	require.NoError(t, err)

	extended := append(heartbeatFields(t),
		mustField(t, "uint64_t", "later", true),
		mustField(t, "char[8]", "tag", true))
	withExt, err := mavlink.NewMessage(0, "HEARTBEAT", "", false, extended)
	require.NoError(t, err)

	assert.Equal(t, plain.CRCExtra, withExt.CRCExtra)
	assert.Equal(t, plain.Signature(), withExt.Signature())
	assert.Equal(t, []string{"later", "tag"}, fieldNames(withExt.ExtensionFields()))
	assert.Equal(t, plain.PayloadLength(), withExt.PayloadLength())
	assert.Equal(t, plain.PayloadLength()+16, withExt.MaxPayloadLength())
}

func TestCRCExtraSameSizeOrderMatters(t *testing.T) {
	ab := []*mavlink.Field{mustField(t, "uint8_t", "a", false), mustField(t, "int8_t", "b", false)}
	ba := []*mavlink.Field{mustField(t, "int8_t", "b", false), mustField(t, "uint8_t", "a", false)}

	m1, err := mavlink.NewMessage(7, "PAIR", "", false, ab)
	require.NoError(t, err)
	m2, err := mavlink.NewMessage(7, "PAIR", "", false, ba)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, fieldNames(m1.Fields))
	assert.Equal(t, []string{"b", "a"}, fieldNames(m2.Fields))
	assert.Equal(t, "PAIR uint8_t a int8_t b ", string(m1.Signature()))
	assert.Equal(t, "PAIR int8_t b uint8_t a ", string(m2.Signature()))
}

func TestSignatureArrayLengthByte(t *testing.T) {
	fields := []*mavlink.Field{mustField(t, "char[16]", "text", false)}
	sig := mavlink.Signature("TEXT", fields)
	assert.Equal(t, append([]byte("TEXT char text "), 16), sig)
}

func TestCRCExtraDeterministic(t *testing.T) {
	fields := heartbeatFields(t)
	first := mavlink.CRCExtra("HEARTBEAT", mavlink.WireOrder(fields))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, mavlink.CRCExtra("HEARTBEAT", mavlink.WireOrder(fields)))
	}
}

func TestChecksum(t *testing.T) {
	// CRC-16/MCRF4XX check value
	assert.Equal(t, uint16(0x6F91), mavlink.Checksum([]byte("123456789")))
	assert.Equal(t, uint16(0xFFFF), mavlink.Checksum(nil))
}

func TestNewMessageMissingName(t *testing.T) {
	_, err := mavlink.NewMessage(1, "", "", false, nil)
	require.ErrorIs(t, err, mavlink.ErrMissingName)
}

func TestMessageError(t *testing.T) {
	_, cause := mavlink.NewField("weird_t", "x", "", false)
	err := &mavlink.MessageError{ID: "42", Name: "BROKEN", Err: cause}
	require.ErrorIs(t, err, mavlink.ErrUnknownType)
	assert.Equal(t, `message BROKEN (id=42): field x: unknown type: "weird_t"`, err.Error())
}

func TestDialectByName(t *testing.T) {
	d, ok := mavlink.DialectByName("v1")
	require.True(t, ok)
	assert.True(t, d.DropExtensions)
	assert.True(t, d.IsExtensionMarker("extension"))
	assert.True(t, d.IsExtensionMarker("extensions"))

	d, ok = mavlink.DialectByName("")
	require.True(t, ok)
	assert.Equal(t, mavlink.DialectV2.Name, d.Name)
	assert.False(t, d.IsExtensionMarker("extension"))

	_, ok = mavlink.DialectByName("v3")
	assert.False(t, ok)
}
