package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token markers of the pipeline language
const (
	PipeSymbol   = "|"
	OptionMarker = "--"
	ValueSep     = "="
)

// Stage is one stage invocation of the expression
type Stage struct {
	// Name is empty while the name is still being typed, and for the
	// empty stage between two consecutive pipes
	Name string
	// Options holds fully closed options; the option being typed is not in it
	Options map[string]string
	// Malformed is set when stray words, a stray `=` or a dangling `--` were seen
	Malformed bool
}

// Has reports whether option name is already set on the stage
func (s *Stage) Has(name string) bool {
	_, ok := s.Options[name]
	return ok
}

// Expression is the best-effort parse of a partial pipeline
type Expression struct {
	Stages   []*Stage
	Trailing Position
	// TrailingSpace is true when the input ends with whitespace
	TrailingSpace bool
}

// Current returns the last stage, which is the one being edited
func (e *Expression) Current() *Stage {
	return e.Stages[len(e.Stages)-1]
}

type state int

const (
	expectName state = iota // nothing seen in this stage yet
	inName                  // a stage name is being read
	idle                    // between tokens of a stage
	stray                   // an unexpected token was read
	inMarker                // `--` with no name yet
	inOptName               // `--name`
	inEquals                // `--name=`
	inValue                 // `--name=value`
)

type parser struct {
	src string
	pos int

	expr  *Expression
	stage *Stage
	state state

	word       string // stage name or option name being read
	value      string
	quote      byte
	quoteOpen  bool
	afterQuote bool
}

// Parse reads raw left to right and never fails.
// Leading and trailing whitespace do not change the position classification.
func Parse(raw string) *Expression {
	p := &parser{src: raw, expr: &Expression{}}
	p.newStage()

	for p.pos < len(p.src) {
		p.step()
	}
	p.finish()
	return p.expr
}

func (p *parser) newStage() {
	p.stage = &Stage{Options: map[string]string{}}
	p.expr.Stages = append(p.expr.Stages, p.stage)
	p.state = expectName
}

func (p *parser) step() {
	if n := p.spaceAt(p.pos); n > 0 {
		p.closeToken()
		for n > 0 {
			p.pos += n
			n = p.spaceAt(p.pos)
		}
		return
	}

	c := p.src[p.pos]

	if p.state == inEquals {
		p.readValue()
		return
	}

	if c == '|' {
		p.closeToken()
		p.pos++
		p.newStage()
		return
	}

	if p.state == inValue && p.afterQuote {
		// text glued to a closing quote
		p.stage.Malformed = true
		p.closeToken()
		p.readStray()
		return
	}

	if c == '=' {
		if p.state == inOptName {
			p.state = inEquals
			p.pos++
			return
		}
		p.closeToken()
		p.stage.Malformed = true
		p.state = stray
		p.pos++
		return
	}

	if strings.HasPrefix(p.src[p.pos:], OptionMarker) {
		if p.state == expectName {
			// options before any stage name
			p.stage.Malformed = true
		}
		p.closeToken()
		p.pos += len(OptionMarker)
		p.word = p.readWord()
		if p.word == "" {
			p.state = inMarker
		} else {
			p.state = inOptName
		}
		return
	}

	if p.state == expectName {
		p.word = p.readWord()
		p.state = inName
		return
	}

	p.stage.Malformed = true
	p.closeToken()
	p.readStray()
}

// readWord consumes characters up to whitespace, `|` or `=`
func (p *parser) readWord() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '|' || c == '=' || p.spaceAt(p.pos) > 0 {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) readStray() {
	if p.readWord() == "" {
		// a lone character readWord stops on; skip it so parsing advances
		p.pos++
	}
	p.state = stray
}

// readValue consumes an option value, quoted or bare
func (p *parser) readValue() {
	p.state = inValue
	p.afterQuote = false
	p.quoteOpen = false
	p.quote = 0

	c := p.src[p.pos]
	if c == '\'' || c == '"' {
		p.quote = c
		end := strings.IndexByte(p.src[p.pos+1:], c)
		if end < 0 {
			p.value = p.src[p.pos+1:]
			p.quoteOpen = true
			p.pos = len(p.src)
			return
		}
		p.value = p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		p.afterQuote = true
		return
	}

	start := p.pos
	for p.pos < len(p.src) {
		if p.src[p.pos] == '|' || p.spaceAt(p.pos) > 0 {
			break
		}
		p.pos++
	}
	p.value = p.src[start:p.pos]
}

// closeToken completes whatever token is in progress
func (p *parser) closeToken() {
	switch p.state {
	case inName:
		p.stage.Name = p.word
	case inMarker:
		p.stage.Malformed = true
	case inOptName, inEquals:
		p.stage.Options[p.word] = ""
	case inValue:
		p.stage.Options[p.word] = p.value
	case expectName, idle, stray:
		return
	}
	p.state = idle
}

func (p *parser) finish() {
	p.expr.TrailingSpace = p.endsWithSpace()

	switch p.state {
	case expectName:
		if len(p.expr.Stages) > 1 {
			p.expr.Trailing = PipePending{}
		} else {
			p.expr.Trailing = StageNamePartial{}
		}
	case inName:
		p.expr.Trailing = StageNamePartial{Prefix: p.word}
	case inMarker:
		p.expr.Trailing = OptionNamePartial{}
	case inOptName:
		p.expr.Trailing = OptionNamePartial{Prefix: p.word}
	case inEquals:
		p.expr.Trailing = OptionValuePending{Option: p.word}
	case inValue:
		if p.afterQuote {
			p.closeToken()
			p.expr.Trailing = Closed{}
			return
		}
		partial := OptionValuePartial{Option: p.word, Prefix: p.value}
		if p.quoteOpen {
			partial.Quote = string(p.quote)
		}
		p.expr.Trailing = partial
	default:
		p.expr.Trailing = Closed{}
	}
}

// spaceAt returns the byte width of the whitespace rune at i, or 0
func (p *parser) spaceAt(i int) int {
	if i >= len(p.src) {
		return 0
	}
	c := p.src[i]
	if c < utf8.RuneSelf {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' {
			return 1
		}
		return 0
	}
	r, size := utf8.DecodeRuneInString(p.src[i:])
	if unicode.IsSpace(r) {
		return size
	}
	return 0
}

func (p *parser) endsWithSpace() bool {
	if p.src == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(p.src)
	return unicode.IsSpace(r)
}
