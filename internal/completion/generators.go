package completion

import (
	"strings"

	"github.com/NikitaCOEUR/pipecomplete/internal/pipeline"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

// StageNameGenerator proposes stage names matching the typed prefix
type StageNameGenerator struct {
	explain *Explainer
}

// Generate proposes the rest of every stage name starting with ctx.Prefix
func (g StageNameGenerator) Generate(ctx Context, snap *registry.Snapshot, level int) []Candidate {
	kinds := snap.WithPrefix(ctx.Prefix)
	out := make([]Candidate, 0, len(kinds))
	for _, kind := range kinds {
		rest := kind.Name[len(ctx.Prefix):]
		if rest == "" {
			continue
		}
		out = append(out, Candidate{
			Continuation: ctx.Lead + rest,
			Explanation:  g.explain.Stage(kind, level),
		})
	}
	sortCandidates(out)
	return out
}

// OptionNameGenerator proposes options of the current stage not yet set
type OptionNameGenerator struct {
	explain *Explainer
}

// Generate proposes `rest-of-name=` for each matching unset option
func (g OptionNameGenerator) Generate(ctx Context, snap *registry.Snapshot, level int) []Candidate {
	kind, ok := snap.Lookup(ctx.Stage.Name)
	if !ok {
		return nil
	}

	var out []Candidate
	for _, opt := range kind.Options {
		if !strings.HasPrefix(opt.Name, ctx.Prefix) || ctx.Stage.Has(opt.Name) {
			continue
		}
		out = append(out, Candidate{
			Continuation: opt.Name[len(ctx.Prefix):] + pipeline.ValueSep,
			Explanation:  g.explain.Option(opt, level),
		})
	}
	sortCandidates(out)
	return out
}

// OptionValueGenerator proposes enum literals, or the default of a free-form option
type OptionValueGenerator struct {
	explain *Explainer
}

// Generate proposes values for ctx.Option
func (g OptionValueGenerator) Generate(ctx Context, snap *registry.Snapshot, level int) []Candidate {
	kind, ok := snap.Lookup(ctx.Stage.Name)
	if !ok {
		return nil
	}
	opt, ok := kind.Option(ctx.Option)
	if !ok {
		return nil
	}

	var out []Candidate
	if opt.Type == registry.TypeEnum {
		for _, v := range opt.AllowedValues {
			if !strings.HasPrefix(v, ctx.Prefix) {
				continue
			}
			cont := valueContinuation(v, ctx.Prefix, ctx.Quote)
			if cont == "" {
				continue
			}
			out = append(out, Candidate{
				Continuation: cont,
				Explanation:  g.explain.Value(opt, level),
			})
		}
		sortCandidates(out)
		return out
	}

	if ctx.Prefix == "" && opt.HasDefault() && g.explain.ShowDefault(level) {
		out = append(out, Candidate{
			Continuation: valueContinuation(opt.Default, "", ctx.Quote),
			Explanation:  g.explain.Default(opt, level),
		})
	}
	return out
}

// valueContinuation returns what completes prefix into value.
// Inside an open quote the quote is closed; a bare value that would not
// survive tokenizing is quoted, or skipped ("") when a bare prefix is
// already typed.
func valueContinuation(value, prefix, quote string) string {
	rest := value[len(prefix):]
	if quote != "" {
		return rest + quote
	}
	if needsQuoting(value) {
		if prefix != "" {
			return ""
		}
		q := "'"
		if strings.Contains(value, q) {
			q = `"`
		}
		return q + value + q
	}
	return rest
}

func needsQuoting(v string) bool {
	return strings.ContainsAny(v, " \t|'\"")
}

// PipeGenerator proposes continuing the pipeline after a complete stage
type PipeGenerator struct {
	explain *Explainer
}

// Generate proposes the pipe operator when the current stage is known,
// well formed and has every required option set
func (g PipeGenerator) Generate(ctx Context, snap *registry.Snapshot, level int) []Candidate {
	stage := ctx.Stage
	if stage.Malformed || stage.Name == "" {
		return nil
	}
	kind, ok := snap.Lookup(stage.Name)
	if !ok {
		return nil
	}
	if len(kind.MissingRequired(stage.Options)) > 0 {
		return nil
	}

	cont := " " + pipeline.PipeSymbol + " "
	if ctx.Expr.TrailingSpace {
		cont = pipeline.PipeSymbol + " "
	}
	return []Candidate{{
		Continuation: cont,
		Explanation:  g.explain.Pipe(kind, level),
	}}
}
