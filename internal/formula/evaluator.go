// Package formula evaluates the arithmetic expressions users may type into
// an amount field, e.g. "10+20" or "50*0.8".
//
// The grammar is a closed calculator: numeric literals, + - * /, and
// parentheses. There is no identifier production and no ambient
// environment, so the evaluator structurally cannot reach anything beyond
// arithmetic. Unary minus is rejected on purpose: amounts are never
// negative.
package formula

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyExpression  = errors.New("empty expression")
	ErrInvalidCharacter = errors.New("invalid character in expression")
	ErrDanglingOperator = errors.New("expression starts or ends with an operator")
	ErrMalformed        = errors.New("malformed expression")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNegativeResult   = errors.New("negative result")
)

// Evaluate resolves raw into a non-negative amount rounded half-away-from-
// zero to two decimal places. A bare literal like "42" passes through the
// same pipeline. Any rejection is reported as an error wrapping one of the
// sentinel errors above; Evaluate never panics.
func Evaluate(raw string) (decimal.Decimal, error) {
	clean := stripSpace(raw)
	if clean == "" {
		return decimal.Zero, ErrEmptyExpression
	}
	for _, r := range clean {
		if !isAllowed(r) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCharacter, r)
		}
	}
	if isOperator(rune(clean[0])) || isOperator(rune(clean[len(clean)-1])) {
		return decimal.Zero, ErrDanglingOperator
	}

	p := &parser{input: clean}
	result, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	if p.pos != len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q", ErrMalformed, p.input[p.pos])
	}
	if result.IsNegative() {
		return decimal.Zero, ErrNegativeResult
	}
	return result.Round(2), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isAllowed(r rune) bool {
	return r >= '0' && r <= '9' || r == '.' || r == '(' || r == ')' || isOperator(r)
}

func isOperator(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

// parser is a recursive-descent parser over the usual precedence ladder:
//
//	expression = term { ("+" | "-") term }
//	term       = factor { ("*" | "/") factor }
//	factor     = number | "(" expression ")"
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseFactor() (decimal.Decimal, error) {
	switch {
	case p.peek() == '(':
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrMalformed)
		}
		p.pos++
		return inner, nil
	case isDigitOrDot(p.peek()):
		return p.parseNumber()
	default:
		return decimal.Zero, fmt.Errorf("%w: expected number or parenthesis at position %d", ErrMalformed, p.pos)
	}
}

func (p *parser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && isDigitOrDot(rune(p.input[p.pos])) {
		p.pos++
	}
	lit := p.input[start:p.pos]
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad number %q", ErrMalformed, lit)
	}
	return d, nil
}

// peek returns the next byte as a rune, or 0 at end of input. The cleaned
// input is ASCII by construction, so byte indexing is safe.
func (p *parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return rune(p.input[p.pos])
}

func isDigitOrDot(r rune) bool {
	return r >= '0' && r <= '9' || r == '.'
}
