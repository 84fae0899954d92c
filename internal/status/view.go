package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/pipecomplete/internal/completion"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	b.WriteString("\n\n")

	b.WriteString(renderConfigInfo(data))
	b.WriteString("\n\n")

	b.WriteString(renderCompletionInfo(data))
	b.WriteString("\n\n")

	b.WriteString(renderRegistryInfo(data.Registry))

	return b.String()
}

func renderConfigInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	if data.ConfigPath == "" {
		b.WriteString("   " + subtleStyle.Render("No configuration file found, using defaults") + "\n")
	} else {
		status := successStyle.Render("✓")
		if data.ConfigError != "" {
			status = errorStyle.Render("✗")
		}
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) + " " + status + "\n")
	}
	if data.ConfigError != "" {
		b.WriteString("   " + errorStyle.Render(data.ConfigError) + "\n")
		b.WriteString("   " + warningStyle.Render("Falling back to defaults") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel) + "\n")
	b.WriteString("   " + keyStyle.Render("Log format: ") + valueStyle.Render(data.LogFormat))
	return b.String()
}

func renderCompletionInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔄 Completion:") + "\n")

	th := data.Thresholds
	b.WriteString("   " + keyStyle.Render("Max input length: ") + valueStyle.Render(fmt.Sprintf("%d", data.MaxInputLength)) + "\n")
	b.WriteString("   " + keyStyle.Render("Detail thresholds:") + "\n")
	for _, row := range []struct {
		label string
		level int
	}{
		{"stage description", th.StageDescription},
		{"stage details", th.StageDetails},
		{"option details", th.OptionDetails},
		{"default value", th.DefaultValue},
		{"pipe details", th.PipeDetails},
	} {
		b.WriteString(fmt.Sprintf("      %s %s\n",
			keyStyle.Render(row.label+":"),
			valueStyle.Render(fmt.Sprintf("%d", row.level))))
	}

	if len(data.TemplateOverrides) > 0 {
		b.WriteString("   " + keyStyle.Render("Template overrides: ") + valueStyle.Render(strings.Join(data.TemplateOverrides, ", ")))
	} else {
		b.WriteString("   " + subtleStyle.Render("Built-in explanation templates"))
	}
	return b.String()
}

func renderRegistryInfo(info *RegistryInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🧩 Stage catalog:") + "\n")

	if info == nil {
		b.WriteString("   " + subtleStyle.Render("Not loaded"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Source: ") + subtleStyle.Render(info.Source) + "\n")
	b.WriteString("   " + keyStyle.Render("Size: ") + valueStyle.Render(formatBytes(info.Size)) + "\n")

	if info.Error != "" {
		b.WriteString("   " + keyStyle.Render("Status: ") + errorStyle.Render("✗ "+info.Error) + "\n")
		b.WriteString("   " + warningStyle.Render("Completion will propose nothing until the catalog loads"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Status: ") + successStyle.Render("✓ Loaded") + "\n")
	b.WriteString("   " + keyStyle.Render("Stages: ") + valueStyle.Render(fmt.Sprintf("%d", len(info.Stages))))
	for _, s := range info.Stages {
		line := fmt.Sprintf("\n      %s %s", valueStyle.Render(s.Name), subtleStyle.Render(plural(s.Options, "option")))
		if s.Role != "" {
			line += " " + keyStyle.Render("["+s.Role+"]")
		}
		if s.Required > 0 {
			line += " " + warningStyle.Render(fmt.Sprintf("%d required", s.Required))
		}
		b.WriteString(line)
	}
	return b.String()
}

// RenderCatalog renders every stage kind with its options
func RenderCatalog(kinds []registry.StageKind) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("🧩 %s:", plural(len(kinds), "stage"))))

	for _, kind := range kinds {
		b.WriteString("\n\n")
		header := titleStyle.Render(kind.Name)
		if kind.Role != "" {
			header += " " + keyStyle.Render("["+kind.Role+"]")
		}
		b.WriteString(header)
		if kind.Description != "" {
			b.WriteString("\n   " + valueStyle.Render(kind.Description))
		}

		for _, opt := range kind.Options {
			b.WriteString(fmt.Sprintf("\n   %s %s",
				keyStyle.Render("--"+opt.Name),
				subtleStyle.Render(string(opt.Type))))
			if opt.Required {
				b.WriteString(" " + warningStyle.Render("required"))
			}
			if opt.HasDefault() {
				b.WriteString(" " + subtleStyle.Render("default: "+opt.Default))
			}
			if len(opt.AllowedValues) > 0 {
				b.WriteString(" " + subtleStyle.Render("{"+strings.Join(opt.AllowedValues, ", ")+"}"))
			}
			if opt.Description != "" {
				b.WriteString("\n      " + valueStyle.Render(truncateString(opt.Description, 72)))
			}
		}
	}
	return b.String()
}

// RenderProposals renders proposals as an aligned, styled list
func RenderProposals(proposals []completion.Proposal) string {
	if len(proposals) == 0 {
		return subtleStyle.Render("No proposals")
	}

	width := 0
	for _, p := range proposals {
		if w := lipgloss.Width(p.Text); w > width {
			width = w
		}
	}

	textStyle := valueStyle.Width(width)
	var b strings.Builder
	for i, p := range proposals {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(textStyle.Render(p.Text))
		if p.Explanation != "" {
			b.WriteString("  " + subtleStyle.Render(p.Explanation))
		}
	}
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
