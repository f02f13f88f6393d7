package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/wuespace/mavgen/internal/codegen/common"
	"github.com/wuespace/mavgen/internal/codegen/generator/golang"
	"github.com/wuespace/mavgen/internal/codegen/generator/java"
	"github.com/wuespace/mavgen/internal/codegen/manifest"
	"github.com/wuespace/mavgen/internal/codegen/meta"
	"github.com/wuespace/mavgen/internal/log"
	"github.com/wuespace/mavgen/internal/mavlink"
	"github.com/wuespace/mavgen/internal/schema"
)

// Renderer turns one message into one source artifact.
type Renderer interface {
	Lang() string
	// FileName is the artifact path relative to the language output directory.
	FileName(msg *mavlink.Message, md *meta.Metadata) string
	Render(msg *mavlink.Message, md *meta.Metadata) ([]byte, error)
}

var renderers = map[string]Renderer{
	"java": java.Renderer{},
	"go":   golang.Renderer{},
}

// Languages returns the supported target languages in sorted order.
func Languages() []string {
	var langs []string
	for k := range renderers {
		langs = append(langs, k)
	}
	slices.Sort(langs)
	return langs
}

// Summary counts the outcome of one generator run.
type Summary struct {
	Produced  int
	Attempted int
}

type Generator struct {
	outputDir string
	logger    *slog.Logger
	reporter  log.Reporter
}

func New(outputDir string, logger *slog.Logger, reporter log.Reporter) *Generator {
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		reporter:  reporter,
	}
}

// GenAll renders res for every supported language, each into its own subdirectory.
func (g *Generator) GenAll(res *schema.Result, md *meta.Metadata) (Summary, error) {
	var total Summary
	for _, lang := range Languages() {
		s, err := g.generate(lang, filepath.Join(g.outputDir, lang), res, md)
		if err != nil {
			return total, fmt.Errorf("generate %s records: %w", lang, err)
		}
		total.Produced += s.Produced
		total.Attempted += s.Attempted
	}
	return total, nil
}

// GenerateLang renders res for a single language directly into the output directory.
func (g *Generator) GenerateLang(lang string, res *schema.Result, md *meta.Metadata) (Summary, error) {
	return g.generate(lang, g.outputDir, res, md)
}

func (g *Generator) generate(lang, outputPath string, res *schema.Result, md *meta.Metadata) (Summary, error) {
	r, ok := renderers[lang]
	if !ok {
		return Summary{}, fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}

	g.logger.Info("Generating records", "language", lang, "source", md.Source, "messages", len(res.Messages))

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return Summary{}, fmt.Errorf("failed to create %s output directory: %w", lang, err)
	}

	total := res.Attempted
	summary := Summary{Attempted: total}
	mf := manifest.New("mavgen v"+md.Version, lang, md.Source)
	var written []*mavlink.Message

	for i, msg := range res.Messages {
		err := g.writeMessage(r, outputPath, msg, md, mf)
		g.reporter.Message(i, total, msg.Name, strconv.FormatUint(uint64(msg.ID), 10), err)
		if err != nil {
			g.logger.Error("Failed to generate record", "language", lang, "message", msg.Name, "id", msg.ID, "error", err)
			continue
		}
		summary.Produced++
		written = append(written, msg)
	}
	for i, f := range res.Failures {
		g.reporter.Message(len(res.Messages)+i, total, f.Name, f.ID, f.Err)
	}
	g.reporter.Summary(summary.Produced, summary.Attempted)

	if err := mf.Write(outputPath); err != nil {
		return summary, err
	}
	if err := common.GenerateReadme(g.logger, outputPath, lang, md.Source, md.Version, written); err != nil {
		return summary, err
	}

	g.logger.Info("Record generation complete", "language", lang, "output", outputPath,
		"produced", summary.Produced, "attempted", summary.Attempted)
	return summary, nil
}

func (g *Generator) writeMessage(r Renderer, outputPath string, msg *mavlink.Message, md *meta.Metadata, mf *manifest.Manifest) error {
	content, err := r.Render(msg, md)
	if err != nil {
		return err
	}

	rel := r.FileName(msg, md)
	path := filepath.Join(outputPath, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}

	mf.Add(rel, msg, content)
	g.logger.Debug("Generated record", "message", msg.Name, "path", path)
	return nil
}
