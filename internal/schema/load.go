package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wuespace/mavgen/internal/mavlink"
)

var (
	ErrNilDocument = errors.New("nil document")
	ErrNoMessages  = errors.New("document has no <messages> container")
)

// Result is the outcome of loading one document.
type Result struct {
	Messages  []*mavlink.Message      // successfully built, in document order
	Failures  []*mavlink.MessageError // skipped messages, in document order
	Attempted int
}

// Produced returns the number of messages that were built.
func (r *Result) Produced() int { return len(r.Messages) }

type options struct {
	dialect                   mavlink.Dialect
	workers                   int
	requireMessageDescription bool
	requireFieldDescription   bool
	logger                    *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithDialect selects the extension convention and id range. Defaults to mavlink.DialectV2.
func WithDialect(d mavlink.Dialect) Option {
	return func(o *options) { o.dialect = d }
}

// WithWorkers builds up to n messages concurrently.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithDescriptionPolicy controls which elements must carry descriptive text.
// Messages require a description by default, fields do not.
func WithDescriptionPolicy(message, field bool) Option {
	return func(o *options) {
		o.requireMessageDescription = message
		o.requireFieldDescription = field
	}
}

// WithLogger sets the logger used for per-message diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Load builds every message of doc. A message that cannot be built is
// recorded in Result.Failures and skipped; only a structurally unusable
// document or a cancelled context fails the whole call.
func Load(ctx context.Context, doc *Document, opts ...Option) (*Result, error) {
	o := options{
		dialect:                   mavlink.DialectV2,
		workers:                   1,
		requireMessageDescription: true,
		logger:                    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if doc == nil {
		return nil, ErrNilDocument
	}
	if doc.Messages == nil {
		return nil, ErrNoMessages
	}

	nodes := doc.Messages.Messages
	built := make([]*mavlink.Message, len(nodes))
	failed := make([]*mavlink.MessageError, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.workers, 1))
	for i := range nodes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			msg, err := buildMessage(&nodes[i], &o)
			if err != nil {
				failed[i] = &mavlink.MessageError{ID: nodes[i].ID, Name: nodes[i].Name, Err: err}
				return nil
			}
			built[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Attempted: len(nodes)}
	for i := range nodes {
		if failed[i] != nil {
			o.logger.Warn("Skipping message", "message", failed[i].Name, "id", failed[i].ID, "error", failed[i].Err)
			res.Failures = append(res.Failures, failed[i])
			continue
		}
		o.logger.Debug("Built message", "message", built[i].Name, "id", built[i].ID, "crc_extra", built[i].CRCExtra)
		res.Messages = append(res.Messages, built[i])
	}
	return res, nil
}

func buildMessage(node *MessageNode, o *options) (*mavlink.Message, error) {
	name := strings.TrimSpace(node.Name)
	if name == "" {
		return nil, mavlink.ErrMissingName
	}

	id, err := strconv.ParseUint(strings.TrimSpace(node.ID), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", mavlink.ErrInvalidMessageID, node.ID)
	}
	if uint32(id) > o.dialect.MaxMessageID {
		return nil, fmt.Errorf("%w: %d exceeds %d for dialect %s", mavlink.ErrInvalidMessageID, id, o.dialect.MaxMessageID, o.dialect.Name)
	}

	var description string
	if node.Description != nil {
		description = normalizeText(*node.Description)
	}
	if description == "" && o.requireMessageDescription {
		return nil, mavlink.ErrMissingDescription
	}

	var acc fieldAccumulator
	for _, n := range node.Nodes {
		if err := acc.add(n, o); err != nil {
			return nil, err
		}
	}

	return mavlink.NewMessage(uint32(id), name, description, node.WIP != nil, acc.fields)
}

// fieldAccumulator folds a message's child nodes into fields, tracking
// whether the extension marker has been passed.
type fieldAccumulator struct {
	inExtensions bool
	fields       []*mavlink.Field
}

func (a *fieldAccumulator) add(n Node, o *options) error {
	if o.dialect.IsExtensionMarker(n.XMLName.Local) {
		a.inExtensions = true
		return nil
	}
	if !n.IsField() {
		return nil
	}
	if a.inExtensions && o.dialect.DropExtensions {
		return nil
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("field of type %q: %w", n.Type, mavlink.ErrMissingName)
	}

	description := normalizeText(n.Text)
	if description == "" && o.requireFieldDescription {
		return fmt.Errorf("field %s: %w", n.Name, mavlink.ErrMissingDescription)
	}
	f, err := mavlink.NewField(strings.TrimSpace(n.Type), n.Name, description, a.inExtensions)
	if err != nil {
		return err
	}
	a.fields = append(a.fields, f)
	return nil
}
