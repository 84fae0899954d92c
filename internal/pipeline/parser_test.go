package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Positions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Position
	}{
		{name: "empty", raw: "", want: StageNamePartial{}},
		{name: "whitespace only", raw: "   ", want: StageNamePartial{}},
		{name: "partial name", raw: "fo", want: StageNamePartial{Prefix: "fo"}},
		{name: "leading whitespace", raw: "  fo", want: StageNamePartial{Prefix: "fo"}},
		{name: "name then space", raw: "foo ", want: Closed{}},
		{name: "trailing pipe", raw: "foo |", want: PipePending{}},
		{name: "trailing pipe and space", raw: "foo | ", want: PipePending{}},
		{name: "pipe without spaces", raw: "foo|", want: PipePending{}},
		{name: "second stage partial", raw: "foo | ba", want: StageNamePartial{Prefix: "ba"}},
		{name: "dangling marker", raw: "foo --", want: OptionNamePartial{}},
		{name: "partial option", raw: "foo --ba", want: OptionNamePartial{Prefix: "ba"}},
		{name: "value pending", raw: "foo --mode=", want: OptionValuePending{Option: "mode"}},
		{name: "value partial", raw: "foo --mode=a", want: OptionValuePartial{Option: "mode", Prefix: "a"}},
		{name: "value closed by space", raw: "foo --mode=a ", want: Closed{}},
		{name: "second option marker", raw: "foo --bar=x --", want: OptionNamePartial{}},
		{name: "quoted value open", raw: "foo --expr='a b", want: OptionValuePartial{Option: "expr", Prefix: "a b", Quote: "'"}},
		{name: "double quoted open", raw: `foo --expr="x`, want: OptionValuePartial{Option: "expr", Prefix: "x", Quote: `"`}},
		{name: "quoted value closed", raw: "foo --expr='a b'", want: Closed{}},
		{name: "flag then space", raw: "foo --verbose ", want: Closed{}},
		{name: "stray word", raw: "foo bar", want: Closed{}},
		{name: "double pipe", raw: "foo ||", want: PipePending{}},
		{name: "value with equals", raw: "foo --expr=a=b", want: OptionValuePartial{Option: "expr", Prefix: "a=b"}},
		{name: "tab separated", raw: "foo\t--", want: OptionNamePartial{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := Parse(tt.raw)
			require.NotNil(t, expr)
			require.NotEmpty(t, expr.Stages)
			assert.Equal(t, tt.want, expr.Trailing)
		})
	}
}

func TestParse_Stages(t *testing.T) {
	expr := Parse("http --port=8080 --path-pattern='/in put' | filter --expression=x>1 | lo")

	require.Len(t, expr.Stages, 3)

	http := expr.Stages[0]
	assert.Equal(t, "http", http.Name)
	assert.Equal(t, map[string]string{"port": "8080", "path-pattern": "/in put"}, http.Options)
	assert.False(t, http.Malformed)

	filter := expr.Stages[1]
	assert.Equal(t, "filter", filter.Name)
	assert.Equal(t, "x>1", filter.Options["expression"])
	assert.True(t, filter.Has("expression"))
	assert.False(t, filter.Has("port"))

	assert.Equal(t, "", expr.Current().Name)
	assert.Equal(t, StageNamePartial{Prefix: "lo"}, expr.Trailing)
}

func TestParse_OptionBeingTypedIsNotSet(t *testing.T) {
	expr := Parse("foo --bar=x --baz=y")

	stage := expr.Current()
	assert.Equal(t, "foo", stage.Name)
	assert.Equal(t, map[string]string{"bar": "x"}, stage.Options)
	assert.Equal(t, OptionValuePartial{Option: "baz", Prefix: "y"}, expr.Trailing)
}

func TestParse_DuplicateOptionLastWins(t *testing.T) {
	expr := Parse("foo --bar=1 --bar=2 ")
	assert.Equal(t, map[string]string{"bar": "2"}, expr.Current().Options)
}

func TestParse_EmptyIntermediateStage(t *testing.T) {
	expr := Parse("foo || bar")

	require.Len(t, expr.Stages, 3)
	assert.Equal(t, "foo", expr.Stages[0].Name)
	assert.Equal(t, "", expr.Stages[1].Name)
	assert.Equal(t, StageNamePartial{Prefix: "bar"}, expr.Trailing)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "stray word", raw: "foo bar "},
		{name: "dangling marker closed by space", raw: "foo -- "},
		{name: "stray equals", raw: "foo =x "},
		{name: "options before name", raw: "--bar=1 "},
		{name: "text glued to closing quote", raw: "foo --x='a'b "},
		{name: "single dash", raw: "foo -"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := Parse(tt.raw)
			assert.True(t, expr.Current().Malformed)
			assert.Equal(t, Closed{}, expr.Trailing)
		})
	}
}

func TestParse_FlagStyleOption(t *testing.T) {
	expr := Parse("foo --verbose --bar= | ")

	stage := expr.Stages[0]
	assert.Equal(t, map[string]string{"verbose": "", "bar": ""}, stage.Options)
	assert.False(t, stage.Malformed)
	assert.Equal(t, PipePending{}, expr.Trailing)
}

func TestParse_TrailingSpace(t *testing.T) {
	assert.False(t, Parse("").TrailingSpace)
	assert.False(t, Parse("foo |").TrailingSpace)
	assert.True(t, Parse("foo | ").TrailingSpace)
	assert.True(t, Parse("foo ").TrailingSpace)
}

func TestParse_UnicodeWhitespaceSeparates(t *testing.T) {
	expr := Parse("foo\u00a0--")
	assert.Equal(t, "foo", expr.Current().Name)
	assert.Equal(t, OptionNamePartial{}, expr.Trailing)
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"|", "||||", "=", "==", "--", "---", "-- --", "'", `"`, "foo --x='", "foo --x=\"",
		"foo --=", "foo --=x", "| --a=b |", "a=b=c", "\x00\xff", "foo --x='a'|b", "\n\t",
		strings.Repeat("a | ", 500), strings.Repeat("--x=", 200),
	}

	for _, raw := range inputs {
		assert.NotPanics(t, func() {
			expr := Parse(raw)
			require.NotNil(t, expr.Trailing)
			require.NotEmpty(t, expr.Stages)
		}, "input %q", raw)
	}
}

func TestPosition_Kind(t *testing.T) {
	kinds := map[string]Position{
		"closed":               Closed{},
		"pipe-pending":         PipePending{},
		"stage-name":           StageNamePartial{},
		"option-name":          OptionNamePartial{},
		"option-value-pending": OptionValuePending{},
		"option-value":         OptionValuePartial{},
	}
	for want, pos := range kinds {
		assert.Equal(t, want, pos.Kind())
	}
}
