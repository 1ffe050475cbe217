package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// Context is the whitelist of names a formula may reference. Evaluation never
// resolves a name outside it.
type Context map[string]float64

// Eval evaluates a restricted arithmetic expression against ctx.
//
// Grammar:
//
//	expr    = term  { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "%") unary }
//	unary   = "-" unary | primary
//	primary = number | ident | ident "(" expr { "," expr } ")" | "(" expr ")"
//
// The only callable names are abs, min, max and pow. There are no loops, no
// assignment and no side effects. Unknown identifiers, malformed syntax and
// division by zero return a *shared.FormulaError; Eval never panics.
func Eval(expression string, ctx Context) (float64, error) {
	// Formula-valued definition fields are conventionally written "=...".
	src := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(expression), "="))
	if src == "" {
		return 0, shared.NewFormulaError(expression, "empty expression")
	}

	p := &parser{src: src, expression: expression, ctx: ctx}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return 0, p.errorf("unexpected %q", p.src[p.pos:])
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, p.errorf("result is not finite")
	}
	return v, nil
}

// builtins is the fixed callable set. Each entry validates its own arity.
var builtins = map[string]func([]float64) (float64, bool){
	"abs": func(args []float64) (float64, bool) {
		if len(args) != 1 {
			return 0, false
		}
		return math.Abs(args[0]), true
	},
	"min": func(args []float64) (float64, bool) {
		if len(args) < 2 {
			return 0, false
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Min(v, a)
		}
		return v, true
	},
	"max": func(args []float64) (float64, bool) {
		if len(args) < 2 {
			return 0, false
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Max(v, a)
		}
		return v, true
	},
	"pow": func(args []float64) (float64, bool) {
		if len(args) != 2 {
			return 0, false
		}
		return math.Pow(args[0], args[1]), true
	},
}

type parser struct {
	src        string
	expression string
	pos        int
	ctx        Context
}

func (p *parser) errorf(format string, args ...interface{}) *shared.FormulaError {
	return shared.NewFormulaError(p.expression, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, p.errorf("division by zero")
			}
			v /= rhs
		case '%':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, p.errorf("division by zero")
			}
			v = math.Mod(v, rhs)
		default:
			return v, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case isIdentStart(rune(c)):
		return p.parseIdent()
	case c == 0:
		return 0, p.errorf("unexpected end of expression")
	default:
		return 0, p.errorf("unexpected character %q", string(c))
	}
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("malformed number %q", p.src[start:p.pos])
	}
	return v, nil
}

func (p *parser) parseIdent() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]

	if p.peek() == '(' {
		fn, ok := builtins[name]
		if !ok {
			return 0, p.errorf("unknown function %q", name)
		}
		p.pos++
		var args []float64
		if p.peek() != ')' {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return 0, err
				}
				args = append(args, arg)
				if p.peek() != ',' {
					break
				}
				p.pos++
			}
		}
		if p.peek() != ')' {
			return 0, p.errorf("missing closing parenthesis in call to %q", name)
		}
		p.pos++
		v, ok := fn(args)
		if !ok {
			return 0, p.errorf("wrong number of arguments to %q", name)
		}
		return v, nil
	}

	v, ok := p.ctx[name]
	if !ok {
		return 0, p.errorf("unknown identifier %q", name)
	}
	return v, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
