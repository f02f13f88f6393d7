package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wuespace/mavgen/internal/codegen/common"
	"github.com/wuespace/mavgen/internal/codegen/generator"
	"github.com/wuespace/mavgen/internal/codegen/meta"
	"github.com/wuespace/mavgen/internal/log"
	"github.com/wuespace/mavgen/internal/mavlink"
	"github.com/wuespace/mavgen/internal/schema"
)

type Generate struct {
	Input              []string `arg:"" name:"input" help:"MAVLink XML definition files; glob patterns such as defs/*.xml are expanded"`
	Output             string   `help:"Output directory, '*' is replaced by the definition file name" default:"./generated" short:"o" env:"MAVGEN_OUTPUT"`
	Package            string   `help:"Target package of the generated records, '*' is replaced by the definition file name" default:"org.telestion.adapter.mavlink.message" short:"p" env:"MAVGEN_PACKAGE"`
	RuntimePackage     string   `help:"Java package providing the MAVLink annotations" default:"org.telestion.protocol.mavlink" env:"MAVGEN_RUNTIME_PACKAGE"`
	Lang               string   `help:"Target language: java, go, or 'all'" default:"java" enum:"java,go,all" env:"MAVGEN_LANG"`
	Dialect            string   `help:"Schema dialect, selects the extension marker and id range" default:"v2" enum:"v1,v2" env:"MAVGEN_DIALECT"`
	Workers            int      `help:"Number of messages built concurrently" default:"1" env:"MAVGEN_WORKERS"`
	StrictDescriptions bool     `help:"Also require a description on every field" env:"MAVGEN_STRICT_DESCRIPTIONS"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, reporter log.Reporter) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Execute(ctx, logger, reporter)
}

// Execute generates records for every input file. A file that cannot be
// read does not stop the remaining ones; all such errors are returned together.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger, reporter log.Reporter) error {
	files, err := expandInputs(g.Input)
	if err != nil {
		return err
	}
	version, err := common.GetVersion()
	if err != nil {
		return err
	}

	var errs []error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.generateFile(ctx, logger, reporter, file, version); err != nil {
			logger.Error("Failed to generate records", "file", file, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
		}
	}
	return errors.Join(errs...)
}

func (g *Generate) generateFile(ctx context.Context, logger *slog.Logger, reporter log.Reporter, file, version string) error {
	l := loader{Dialect: g.Dialect, Workers: g.Workers, StrictDescriptions: g.StrictDescriptions}
	doc, res, err := l.load(ctx, logger, file)
	if err != nil {
		return err
	}

	md := &meta.Metadata{
		Source:         file,
		Package:        common.ExpandStem(g.Package, file),
		RuntimePackage: g.RuntimePackage,
		Version:        version,
		Includes:       doc.Includes,
		Dialect:        l.dialect(),
	}
	gen := generator.New(common.ExpandStem(g.Output, file), logger, reporter)

	var summary generator.Summary
	if g.Lang == "all" {
		summary, err = gen.GenAll(res, md)
	} else {
		summary, err = gen.GenerateLang(g.Lang, res, md)
	}
	if err != nil {
		return err
	}
	logger.Info("Finished definition file", "file", file, "produced", summary.Produced, "attempted", summary.Attempted)
	return nil
}

// loader holds the schema options shared by the generate and dump commands.
type loader struct {
	Dialect            string
	Workers            int
	StrictDescriptions bool
}

func (l loader) dialect() mavlink.Dialect {
	d, _ := mavlink.DialectByName(l.Dialect)
	return d
}

func (l loader) load(ctx context.Context, logger *slog.Logger, file string) (*schema.Document, *schema.Result, error) {
	if _, ok := mavlink.DialectByName(l.Dialect); !ok {
		return nil, nil, fmt.Errorf("unknown dialect '%s'", l.Dialect)
	}

	logger.Info("Reading MAVLink definitions", "file", file, "dialect", l.dialect().Name)
	doc, err := schema.ParseFile(file)
	if err != nil {
		return nil, nil, err
	}
	if len(doc.Includes) > 0 {
		logger.Info("Definition file includes other files; only its own messages are generated",
			"file", file, "includes", doc.Includes)
	}

	res, err := schema.Load(ctx, doc,
		schema.WithDialect(l.dialect()),
		schema.WithWorkers(l.Workers),
		schema.WithDescriptionPolicy(true, l.StrictDescriptions),
		schema.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Interpreted MAVLink definitions", "file", file, "version", doc.Version,
		"valid", res.Produced(), "attempted", res.Attempted)
	return doc, res, nil
}
