package common

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/wuespace/mavgen/internal/mavlink"
)

const readmeTemplate = `# MAVLink records ({{.Lang}})

{{.GeneratedBy}} from ` + "`{{.Source}}`" + `. Do not edit by hand; rerun the generator instead.

| Message | ID | CRC-EXTRA | Payload | Max payload |
|---|---:|---:|---:|---:|
{{- range .Messages}}
| {{.Name}}{{if .WIP}} (WIP){{end}} | {{.ID}} | {{.CRCExtra}} | {{.PayloadLength}} | {{.MaxPayloadLength}} |
{{- end}}
`

var readmeTmpl = template.Must(template.New("readme").Parse(readmeTemplate))

// GenerateReadme writes a README.md indexing the generated records of one language.
func GenerateReadme(logger *slog.Logger, outputDir, lang, source, version string, msgs []*mavlink.Message) error {
	readmePath := filepath.Join(outputDir, "README.md")

	var b strings.Builder
	err := readmeTmpl.Execute(&b, struct {
		Lang, Source, GeneratedBy string
		Messages                  []*mavlink.Message
	}{lang, filepath.ToSlash(source), GeneratedBy(version), msgs})
	if err != nil {
		return fmt.Errorf("render README.md: %w", err)
	}

	if err := os.WriteFile(readmePath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write README.md: %w", err)
	}

	logger.Debug("Generated README.md", "path", readmePath)
	return nil
}
