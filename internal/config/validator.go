package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/pipecomplete/internal/completion"
	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
)

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks field values that decoding alone cannot reject
func (c *Config) Validate() error {
	if !lo.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return derrors.NewValidationError("log_level",
			fmt.Sprintf("unknown log level %q, expected one of %s", c.LogLevel, strings.Join(validLogLevels, ", ")), nil)
	}
	if c.LogFormat != logger.FormatText && c.LogFormat != logger.FormatJSON {
		return derrors.NewValidationError("log_format",
			fmt.Sprintf("unknown log format %q, expected %s or %s", c.LogFormat, logger.FormatText, logger.FormatJSON), nil)
	}
	if c.MaxInputLength < 0 {
		return derrors.NewValidationError("max_input_length", "must not be negative", nil)
	}

	th := c.Thresholds
	for field, v := range map[string]int{
		"thresholds.stage_description": th.StageDescription,
		"thresholds.stage_details":     th.StageDetails,
		"thresholds.option_details":    th.OptionDetails,
		"thresholds.default_value":     th.DefaultValue,
		"thresholds.pipe_details":      th.PipeDetails,
	} {
		if v < 1 {
			return derrors.NewValidationError(field, "detail threshold must be at least 1", nil)
		}
	}

	// overrides must parse against the built-in template set
	if _, err := completion.NewExplainer(th, c.Templates); err != nil {
		return derrors.NewValidationError("templates", "invalid explanation template", err)
	}
	return nil
}
