// Package formula evaluates the arithmetic expressions used by
// formula-driven statement rows. The grammar is deliberately tiny: decimal
// literals, + - * /, unary minus, and parentheses. Config-derived strings
// are never handed to a general-purpose evaluator.
package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Substitute replaces each label in expr with its numeric value. Labels are
// replaced longest-first so a label that is a prefix of another cannot
// clobber it.
func Substitute(expr string, values map[string]decimal.Decimal) string {
	labels := make([]string, 0, len(values))
	for label := range values {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(labels[i]) != len(labels[j]) {
			return len(labels[i]) > len(labels[j])
		}
		return labels[i] < labels[j]
	})

	for _, label := range labels {
		expr = strings.ReplaceAll(expr, label, values[label].String())
	}
	return expr
}

// Sanitize strips every character outside the expression grammar.
func Sanitize(expr string) string {
	var b strings.Builder
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Eval parses and evaluates a sanitized expression. Malformed input and
// division by zero return an error; callers decide how to degrade.
func Eval(expr string) (decimal.Decimal, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return decimal.Zero, err
	}
	p := &parser{toks: toks}
	v, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, err
	}
	if !p.done() {
		return decimal.Zero, fmt.Errorf("unexpected %q at end of expression", p.peek().text)
	}
	return v, nil
}

// EvalWith substitutes label values into expr, sanitizes the result, and
// evaluates it.
func EvalWith(expr string, values map[string]decimal.Decimal) (decimal.Decimal, error) {
	return Eval(Sanitize(Substitute(expr, values)))
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  decimal.Decimal
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			num, err := decimal.NewFromString(expr[i:j])
			if err != nil {
				return nil, fmt.Errorf("bad number %q: %w", expr[i:j], err)
			}
			toks = append(toks, token{kind: tokNumber, text: expr[i:j], num: num})
			i = j
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{kind: tokOp, text: string(c)})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) done() bool { return p.peek().kind == tokEOF }

// parseExpr handles + and -.
func (p *parser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == "+" {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
	return left, nil
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return decimal.Zero, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text
		right, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		if op == "*" {
			left = left.Mul(right)
		} else {
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("division by zero")
			}
			left = left.DivRound(right, 8)
		}
	}
	return left, nil
}

// parseUnary handles leading minus signs.
func (p *parser) parseUnary() (decimal.Decimal, error) {
	if p.peek().kind == tokOp && p.peek().text == "-" {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (decimal.Decimal, error) {
	switch t := p.next(); t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		if p.next().kind != tokRParen {
			return decimal.Zero, fmt.Errorf("missing closing parenthesis")
		}
		return v, nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected %q in expression", t.text)
	}
}
