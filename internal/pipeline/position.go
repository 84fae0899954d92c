// Package pipeline parses partial pipeline expressions such as
// `http --port=8080 | filter --expression=x | log`.
//
// Parsing never fails. The result describes which stages were recognized and
// which grammatical element is pending at the end of the input.
package pipeline

// Position is the grammatical element pending at the end of the input.
//
//sumtype:decl
type Position interface {
	isPosition()
	// Kind is a stable, log-friendly name for the position
	Kind() string
}

// Closed means the last stage is syntactically complete
type Closed struct{}

// PipePending means the input ends right after a pipe
type PipePending struct{}

// StageNamePartial means a stage name is being typed
type StageNamePartial struct {
	Prefix string
}

// OptionNamePartial means an option name is being typed after `--`
type OptionNamePartial struct {
	Prefix string
}

// OptionValuePending means the input ends right after `--name=`
type OptionValuePending struct {
	Option string
}

// OptionValuePartial means an option value is being typed.
// Quote holds the opening quote of an unterminated quoted value.
type OptionValuePartial struct {
	Option string
	Prefix string
	Quote  string
}

func (Closed) isPosition()             {}
func (PipePending) isPosition()        {}
func (StageNamePartial) isPosition()   {}
func (OptionNamePartial) isPosition()  {}
func (OptionValuePending) isPosition() {}
func (OptionValuePartial) isPosition() {}

func (Closed) Kind() string             { return "closed" }
func (PipePending) Kind() string        { return "pipe-pending" }
func (StageNamePartial) Kind() string   { return "stage-name" }
func (OptionNamePartial) Kind() string  { return "option-name" }
func (OptionValuePending) Kind() string { return "option-value-pending" }
func (OptionValuePartial) Kind() string { return "option-value" }
