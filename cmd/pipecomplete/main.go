// Package main is the entry point for the pipecomplete CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	pcli "github.com/NikitaCOEUR/pipecomplete/internal/cli"
	"github.com/NikitaCOEUR/pipecomplete/pkg/version"
)

func main() {
	if err := newApp(os.Stdin).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree; stdin feeds `complete --stdin`
func newApp(stdin io.Reader) *cli.Command {
	return &cli.Command{
		Name:                  "pipecomplete",
		Usage:                 "Context-aware completion for stream pipeline definitions",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the config file",
				Sources: cli.EnvVars("PIPECOMPLETE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: $XDG_CONFIG_HOME/pipecomplete/pipecomplete.yml)",
				Sources: cli.EnvVars("PIPECOMPLETE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "registry",
				Aliases: []string{"r"},
				Usage:   "Stage catalog file (YAML, TOML or JSON), overrides the config file",
				Sources: cli.EnvVars("PIPECOMPLETE_REGISTRY"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print completion proposals for a partial pipeline",
				ArgsUsage: "[--] <text>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "detail",
						Aliases: []string{"d"},
						Value:   1,
						Usage:   "Detail level of explanations (1 = terse)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   pcli.FormatText,
						Usage:   "Output format: text, pretty, json or yaml",
					},
					&cli.BoolFlag{
						Name:  "stdin",
						Usage: "Read the text to complete from stdin",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					text := strings.Join(cmd.Args().Slice(), " ")
					if cmd.Bool("stdin") {
						data, err := io.ReadAll(stdin)
						if err != nil {
							return fmt.Errorf("failed to read stdin: %w", err)
						}
						text = strings.TrimSuffix(string(data), "\n")
					}

					return pcli.Complete(pcli.CompleteParams{
						Text:         text,
						Detail:       int(cmd.Int("detail")),
						Format:       cmd.String("format"),
						LogLevel:     cmd.String("log-level"),
						ConfigPath:   cmd.String("config"),
						RegistryPath: cmd.String("registry"),
					})
				},
			},
			{
				Name:      "stages",
				Usage:     "List the stage kinds of the catalog",
				ArgsUsage: "[prefix]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   pcli.FormatPretty,
						Usage:   "Output format: pretty, text, yaml or json",
					},
					&cli.BoolFlag{
						Name:  "fuzzy",
						Usage: "Fuzzy-match the argument instead of using it as a name prefix",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pcli.Stages(pcli.StagesParams{
						Prefix:       cmd.Args().First(),
						Fuzzy:        cmd.Bool("fuzzy"),
						Format:       cmd.String("format"),
						LogLevel:     cmd.String("log-level"),
						ConfigPath:   cmd.String("config"),
						RegistryPath: cmd.String("registry"),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the effective configuration and stage catalog",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pcli.Status(pcli.StatusParams{
						ConfigPath:   cmd.String("config"),
						RegistryPath: cmd.String("registry"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a stage catalog file",
				ArgsUsage: "[catalog-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						path = cmd.String("registry")
					}
					return pcli.Validate(pcli.ValidateParams{
						Path:       path,
						ConfigPath: cmd.String("config"),
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for stage catalog files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return pcli.Schema(outputPath)
				},
			},
		},
	}
}
