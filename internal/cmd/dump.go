package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/wuespace/mavgen/internal/mavlink"
	"github.com/wuespace/mavgen/internal/schema"
)

type Dump struct {
	Input   string `arg:"" name:"input" help:"MAVLink XML definition file" type:"existingfile"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json" short:"f" env:"MAVGEN_DUMP_FORMAT"`
	Output  string `help:"Write to this file instead of stdout" short:"o"`
	Dialect string `help:"Schema dialect, selects the extension marker and id range" default:"v2" enum:"v1,v2" env:"MAVGEN_DIALECT"`
}

// Run is called by Kong when the dump command is executed.
func (d *Dump) Run(logger *slog.Logger) error {
	w := io.Writer(os.Stdout)
	if d.Output != "" {
		f, err := os.Create(d.Output)
		if err != nil {
			return fmt.Errorf("create dump file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return d.Write(context.Background(), logger, w)
}

// Write loads the input and writes its computed layout to w.
func (d *Dump) Write(ctx context.Context, logger *slog.Logger, w io.Writer) error {
	l := loader{Dialect: d.Dialect, Workers: 1}
	_, res, err := l.load(ctx, logger, d.Input)
	if err != nil {
		return err
	}
	data, err := encodeDump(newDumpView(d.Input, l.dialect(), res), d.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type dumpView struct {
	Source   string        `json:"source" yaml:"source" toml:"source"`
	Dialect  string        `json:"dialect" yaml:"dialect" toml:"dialect"`
	Messages []messageView `json:"messages" yaml:"messages" toml:"messages,omitempty"`
	Failures []failureView `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
}

type messageView struct {
	ID               uint32      `json:"id" yaml:"id" toml:"id"`
	Name             string      `json:"name" yaml:"name" toml:"name"`
	Description      string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	WIP              bool        `json:"wip,omitempty" yaml:"wip,omitempty" toml:"wip,omitempty"`
	CRCExtra         uint8       `json:"crcExtra" yaml:"crcExtra" toml:"crcExtra"`
	PayloadLength    int         `json:"payloadLength" yaml:"payloadLength" toml:"payloadLength"`
	MaxPayloadLength int         `json:"maxPayloadLength" yaml:"maxPayloadLength" toml:"maxPayloadLength"`
	Fields           []fieldView `json:"fields" yaml:"fields" toml:"fields,omitempty"`
}

type fieldView struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Type        string `json:"type" yaml:"type" toml:"type"`
	ArrayLength int    `json:"arrayLength,omitempty" yaml:"arrayLength,omitempty" toml:"arrayLength,omitempty"`
	Size        int    `json:"size" yaml:"size" toml:"size"`
	Extension   bool   `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

type failureView struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Error string `json:"error" yaml:"error" toml:"error"`
}

func newDumpView(source string, dialect mavlink.Dialect, res *schema.Result) dumpView {
	v := dumpView{Source: source, Dialect: dialect.Name, Messages: []messageView{}}
	for _, msg := range res.Messages {
		mv := messageView{
			ID:               msg.ID,
			Name:             msg.Name,
			Description:      msg.Description,
			WIP:              msg.WIP,
			CRCExtra:         msg.CRCExtra,
			PayloadLength:    msg.PayloadLength(),
			MaxPayloadLength: msg.MaxPayloadLength(),
			Fields:           []fieldView{},
		}
		for _, f := range msg.Fields {
			mv.Fields = append(mv.Fields, fieldView{
				Name:        f.Name,
				Type:        f.Type.Name(),
				ArrayLength: f.ArrayLength,
				Size:        f.ByteSize(),
				Extension:   f.Extension,
				Description: f.Description,
			})
		}
		v.Messages = append(v.Messages, mv)
	}
	for _, f := range res.Failures {
		v.Failures = append(v.Failures, failureView{ID: f.ID, Name: f.Name, Error: f.Err.Error()})
	}
	return v
}

func encodeDump(v dumpView, format string) ([]byte, error) {
	switch normalizeFormat(format) {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(v)
	case "toml":
		return toml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
