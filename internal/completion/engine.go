package completion

import (
	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
	"github.com/NikitaCOEUR/pipecomplete/internal/pipeline"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

// DefaultMaxInputLength bounds the raw text accepted by Complete, in bytes
const DefaultMaxInputLength = 4096

// SnapshotProvider yields the stage catalog in effect.
// *registry.Store satisfies it.
type SnapshotProvider interface {
	Current() *registry.Snapshot
}

// Engine dispatches parsed input to the generator for its position.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	registry SnapshotProvider
	explain  *Explainer
	maxInput int
	log      *logger.Logger

	stages  Generator
	options Generator
	values  Generator
	pipe    Generator
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for debug tracing
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.WithComponent("completion")
		}
	}
}

// WithExplainer replaces the explanation renderer
func WithExplainer(ex *Explainer) Option {
	return func(e *Engine) {
		if ex != nil {
			e.explain = ex
		}
	}
}

// WithMaxInputLength sets the input length above which no proposals are made.
// Zero or less keeps the default.
func WithMaxInputLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxInput = n
		}
	}
}

// NewEngine creates a completion engine reading stage kinds from provider
func NewEngine(provider SnapshotProvider, opts ...Option) *Engine {
	e := &Engine{
		registry: provider,
		explain:  MustExplainer(DefaultThresholds()),
		maxInput: DefaultMaxInputLength,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.stages = StageNameGenerator{explain: e.explain}
	e.options = OptionNameGenerator{explain: e.explain}
	e.values = OptionValueGenerator{explain: e.explain}
	e.pipe = PipeGenerator{explain: e.explain}
	return e
}

func (e *Engine) snapshot() *registry.Snapshot {
	if e.registry == nil {
		return registry.EmptySnapshot()
	}
	if snap := e.registry.Current(); snap != nil {
		return snap
	}
	return registry.EmptySnapshot()
}

// Serve answers a completion request
func (e *Engine) Serve(req Request) []Proposal {
	return e.Complete(req.RawText, req.Level())
}

// Complete returns the proposals for raw at the given detail level.
// It never fails: malformed input or an unknown stage yields an empty list.
func (e *Engine) Complete(raw string, level int) []Proposal {
	if level < 1 {
		level = 1
	}
	if len(raw) > e.maxInput {
		e.log.Debug().Int("length", len(raw)).Int("max", e.maxInput).Msg("Input too long, no completion")
		return []Proposal{}
	}

	snap := e.snapshot()
	expr := pipeline.Parse(raw)
	gen, ctx := e.dispatch(expr)

	var candidates []Candidate
	if gen != nil {
		candidates = gen.Generate(ctx, snap, level)
	}

	proposals := make([]Proposal, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.Continuation == "" {
			continue
		}
		text := raw + c.Continuation
		if seen[text] {
			continue
		}
		seen[text] = true
		proposals = append(proposals, Proposal{Text: text, Explanation: c.Explanation})
	}

	if e.log.IsDebug() {
		e.log.Debug().
			Str("position", expr.Trailing.Kind()).
			Str("stage", ctx.Stage.Name).
			Int("level", level).
			Int("proposals", len(proposals)).
			Msg("Completed")
	}
	return proposals
}

// dispatch selects the generator for the trailing position
func (e *Engine) dispatch(expr *pipeline.Expression) (Generator, Context) {
	ctx := Context{Expr: expr, Stage: expr.Current()}

	switch pos := expr.Trailing.(type) {
	case pipeline.StageNamePartial:
		ctx.Prefix = pos.Prefix
		return e.stages, ctx
	case pipeline.PipePending:
		if !expr.TrailingSpace {
			ctx.Lead = " "
		}
		return e.stages, ctx
	case pipeline.OptionNamePartial:
		ctx.Prefix = pos.Prefix
		return e.options, ctx
	case pipeline.OptionValuePending:
		ctx.Option = pos.Option
		return e.values, ctx
	case pipeline.OptionValuePartial:
		ctx.Option = pos.Option
		ctx.Prefix = pos.Prefix
		ctx.Quote = pos.Quote
		return e.values, ctx
	case pipeline.Closed:
		return e.pipe, ctx
	default:
		return nil, ctx
	}
}
