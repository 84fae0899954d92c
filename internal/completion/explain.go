package completion

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

// Thresholds are the detail levels from which explanations grow
type Thresholds struct {
	StageDescription int `koanf:"stage_description" json:"stage_description" yaml:"stage_description"`
	StageDetails     int `koanf:"stage_details" json:"stage_details" yaml:"stage_details"`
	OptionDetails    int `koanf:"option_details" json:"option_details" yaml:"option_details"`
	DefaultValue     int `koanf:"default_value" json:"default_value" yaml:"default_value"`
	PipeDetails      int `koanf:"pipe_details" json:"pipe_details" yaml:"pipe_details"`
}

// DefaultThresholds returns the built-in detail thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		StageDescription: 2,
		StageDetails:     3,
		OptionDetails:    3,
		DefaultValue:     2,
		PipeDetails:      2,
	}
}

// Template names accepted by NewExplainer overrides
const (
	TemplateStage   = "stage"
	TemplateOption  = "option"
	TemplateValue   = "value"
	TemplateDefault = "default"
	TemplatePipe    = "pipe"
)

// Each template only appends text as its flags turn on, so a higher
// detail level never yields a shorter explanation.
var defaultTemplates = map[string]string{
	TemplateStage: `{{ if .Describe }}{{ .Kind.Description }}{{ end }}` +
		`{{ if .Details }}{{ with .Kind.Role }} [{{ . }}]{{ end }}` +
		`{{ with .Kind.Options }} ({{ len . }} {{ if eq (len .) 1 }}option{{ else }}options{{ end }}){{ end }}{{ end }}`,
	TemplateOption: `{{ .Option.Description | default (printf "%s option" .Option.Name) }}` +
		`{{ if .Details }} ({{ .Option.Type }}{{ with .Option.Default }}, default: {{ . }}{{ end }}` +
		`{{ if .Option.Required }}, required{{ end }}){{ end }}`,
	TemplateValue: `{{ .Option.Description | default (printf "value of --%s" .Option.Name) }}` +
		`{{ if .Details }} (one of: {{ join ", " .Option.AllowedValues }}){{ end }}`,
	TemplateDefault: `default value{{ with .Option.Description }}: {{ . }}{{ end }}` +
		`{{ if .Details }} ({{ .Option.Type }}){{ end }}`,
	TemplatePipe: `continue pipeline{{ if .Details }} after {{ .Kind.Name }}{{ end }}`,
}

// explainData is the template input; flags are resolved from the thresholds
type explainData struct {
	Level    int
	Describe bool
	Details  bool
	Kind     registry.StageKind
	Option   registry.OptionSpec
}

// Explainer renders explanation strings for a detail level
type Explainer struct {
	thresholds Thresholds
	templates  *template.Template
}

// NewExplainer parses the built-in templates, replacing any named in overrides
func NewExplainer(th Thresholds, overrides map[string]string) (*Explainer, error) {
	root := template.New("explain").Funcs(sprig.TxtFuncMap())
	for name, text := range defaultTemplates {
		if o, ok := overrides[name]; ok && strings.TrimSpace(o) != "" {
			text = o
		}
		if _, err := root.New(name).Parse(text); err != nil {
			return nil, fmt.Errorf("invalid %s explanation template: %w", name, err)
		}
	}
	for name := range overrides {
		if _, ok := defaultTemplates[name]; !ok {
			return nil, fmt.Errorf("unknown explanation template %q", name)
		}
	}
	return &Explainer{thresholds: th, templates: root}, nil
}

// MustExplainer is NewExplainer for built-in templates, which always parse
func MustExplainer(th Thresholds) *Explainer {
	ex, err := NewExplainer(th, nil)
	if err != nil {
		panic(err)
	}
	return ex
}

// Thresholds returns the detail thresholds in effect
func (e *Explainer) Thresholds() Thresholds {
	return e.thresholds
}

// ShowDefault reports whether default values are proposed at level
func (e *Explainer) ShowDefault(level int) bool {
	return level >= e.thresholds.DefaultValue
}

// Stage explains a stage-name proposal
func (e *Explainer) Stage(kind registry.StageKind, level int) string {
	return e.render(TemplateStage, explainData{
		Level:    level,
		Describe: level >= e.thresholds.StageDescription,
		Details:  level >= e.thresholds.StageDetails,
		Kind:     kind,
	})
}

// Option explains an option-name proposal
func (e *Explainer) Option(opt registry.OptionSpec, level int) string {
	return e.render(TemplateOption, explainData{
		Level:    level,
		Describe: true,
		Details:  level >= e.thresholds.OptionDetails,
		Option:   opt,
	})
}

// Value explains an enum literal proposal
func (e *Explainer) Value(opt registry.OptionSpec, level int) string {
	return e.render(TemplateValue, explainData{
		Level:    level,
		Describe: true,
		Details:  level >= e.thresholds.OptionDetails,
		Option:   opt,
	})
}

// Default explains a default value proposal
func (e *Explainer) Default(opt registry.OptionSpec, level int) string {
	return e.render(TemplateDefault, explainData{
		Level:    level,
		Describe: true,
		Details:  level >= e.thresholds.OptionDetails,
		Option:   opt,
	})
}

// Pipe explains the pipe proposal
func (e *Explainer) Pipe(kind registry.StageKind, level int) string {
	return e.render(TemplatePipe, explainData{
		Level:    level,
		Describe: true,
		Details:  level >= e.thresholds.PipeDetails,
		Kind:     kind,
	})
}

func (e *Explainer) render(name string, data explainData) string {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		// a broken override degrades to the raw description
		if data.Option.Name != "" {
			return data.Option.Description
		}
		return data.Kind.Description
	}
	return strings.TrimSpace(buf.String())
}
