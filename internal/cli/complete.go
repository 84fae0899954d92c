package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NikitaCOEUR/pipecomplete/internal/completion"
	"github.com/NikitaCOEUR/pipecomplete/internal/status"
	"github.com/NikitaCOEUR/pipecomplete/internal/timing"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Text         string
	Detail       int
	Format       string
	LogLevel     string
	ConfigPath   string
	RegistryPath string
}

// Complete prints the completion proposals for a partial pipeline
func Complete(params CompleteParams) error {
	timer := timing.NewTimer()

	comps, err := initializeComponents(params.ConfigPath, params.RegistryPath, params.LogLevel)
	if err != nil {
		return err
	}
	log := comps.log
	timer.Step("init")

	log.Debug().
		Str("text", params.Text).
		Int("detail", params.Detail).
		Int("stages", comps.store.Current().Len()).
		Msg("Received completion request")

	proposals := comps.engine.Serve(completion.Request{
		RawText:     params.Text,
		DetailLevel: params.Detail,
	})
	timer.Step("complete")

	output, err := formatProposals(proposals, params.Format)
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}
	timer.Step("render")

	log.Debug().Int("proposals", len(proposals)).Str("timing", timer.Summary()).Msg("Completion done")
	timer.Log(log, "Completion timing")
	return nil
}

// formatProposals renders proposals in one of the output formats
func formatProposals(proposals []completion.Proposal, format string) (string, error) {
	switch format {
	case "", FormatText:
		// one proposal per line, explanation after a tab, for shell consumption
		lines := make([]string, 0, len(proposals))
		for _, p := range proposals {
			if p.Explanation == "" {
				lines = append(lines, p.Text)
				continue
			}
			lines = append(lines, p.Text+"\t"+p.Explanation)
		}
		return strings.Join(lines, "\n"), nil
	case FormatPretty:
		return status.RenderProposals(proposals), nil
	case FormatJSON:
		data, err := json.MarshalIndent(proposals, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode proposals: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(proposals)
		if err != nil {
			return "", fmt.Errorf("failed to encode proposals: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
