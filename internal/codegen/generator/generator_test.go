package generator_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuespace/mavgen/internal/codegen/generator"
	"github.com/wuespace/mavgen/internal/codegen/manifest"
	"github.com/wuespace/mavgen/internal/codegen/meta"
	"github.com/wuespace/mavgen/internal/log"
	"github.com/wuespace/mavgen/internal/schema"
)

const doc = `<mavlink><messages>
	<message id="0" name="HEARTBEAT"><description>The heartbeat message.</description>
		<field type="uint8_t" name="type">Type.</field>
		<field type="uint32_t" name="custom_mode">Mode.</field>
	</message>
	<message id="1" name="BROKEN"><description>Bad.</description>
		<field type="weird_t" name="bad">Bad.</field>
	</message>
	<message id="253" name="STATUSTEXT"><description>Status text.</description>
		<field type="uint8_t" name="severity">Severity.</field>
		<field type="char[50]" name="text">Text.</field>
		<extensions/>
		<field type="uint16_t" name="id">Id.</field>
	</message>
</messages></mavlink>`

func load(t *testing.T) *schema.Result {
	t.Helper()
	d, err := schema.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	res, err := schema.Load(context.Background(), d)
	require.NoError(t, err)
	return res
}

func TestGenerateLangJava(t *testing.T) {
	out := t.TempDir()
	var report bytes.Buffer
	gen := generator.New(out, slog.New(slog.DiscardHandler), log.NewReporter(&report))

	md := &meta.Metadata{Source: "test.xml", Package: "com.example.msg", Version: "1.0.0"}
	summary, err := gen.GenerateLang("java", load(t), md)
	require.NoError(t, err)

	assert.Equal(t, generator.Summary{Produced: 2, Attempted: 3}, summary)

	hb, err := os.ReadFile(filepath.Join(out, "com", "example", "msg", "Heartbeat.java"))
	require.NoError(t, err)
	assert.Contains(t, string(hb), "@MavInfo(id = 0, crc = ")
	_, err = os.Stat(filepath.Join(out, "com", "example", "msg", "Statustext.java"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(report.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "HEARTBEAT (id=0)")
	assert.Contains(t, lines[0], "Success!")
	assert.Contains(t, lines[1], "STATUSTEXT (id=253)")
	assert.Contains(t, lines[2], "BROKEN (id=1)")
	assert.Contains(t, lines[2], "Failed!")
	assert.Contains(t, lines[3], "unknown type")
	assert.Equal(t, "Finished [2/3 messages produced]", lines[4])

	readme, err := os.ReadFile(filepath.Join(out, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "Autogenerated by mavgen v1.0.0 from `test.xml`")
	assert.Contains(t, string(readme), "| STATUSTEXT | 253 |")
	assert.NotContains(t, string(readme), "BROKEN")

	mf, err := manifest.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "java", mf.Lang)
	assert.Len(t, mf.Entries, 2)
	assert.NoError(t, mf.Verify(out))
}

func TestGenAll(t *testing.T) {
	out := t.TempDir()
	gen := generator.New(out, slog.New(slog.DiscardHandler), log.NewReporter(nil))

	summary, err := gen.GenAll(load(t), &meta.Metadata{Source: "test.xml", Version: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, generator.Summary{Produced: 4, Attempted: 6}, summary)

	_, err = os.Stat(filepath.Join(out, "go", "heartbeat.go"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "java", "org", "telestion", "adapter", "mavlink", "message", "Heartbeat.java"))
	require.NoError(t, err)
	_, err = manifest.Load(filepath.Join(out, "go"))
	require.NoError(t, err)
}

func TestUnsupportedLanguage(t *testing.T) {
	gen := generator.New(t.TempDir(), slog.New(slog.DiscardHandler), log.NewReporter(nil))
	_, err := gen.GenerateLang("cobol", load(t), &meta.Metadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language 'cobol'")
	assert.Equal(t, []string{"go", "java"}, generator.Languages())
}
