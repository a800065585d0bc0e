package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

//
// Error values returned by the expression routines.  Callers wrap
// or compare these with errors.Is
//

var ErrDivisionByZero = errors.New("Division by zero")
var ErrMalformed = errors.New("Malformed expression")
var ErrInvalidToken = errors.New("Invalid token")
var ErrUnbalanced = errors.New("Unbalanced parentheses")
var ErrVariableNotFound = errors.New("Variable not found")

const notAnOperator = -1

const numericSigil = '#'

//
// Operator precedence.  The parentheses get the highest level, but
// they only steer what leaves the operator stack, they are never
// emitted themselves
//

func precedence(ch rune) int {

	switch ch {
	case '+', '-':
		return 0

	case '*', '/':
		return 1

	case '(', ')':
		return 2
	}

	return notAnOperator
}

//
// Simple rune stack for the converter
//

type opStack struct {
	entries []rune
}

func (s *opStack) push(ch rune) {

	s.entries = append(s.entries, ch)
}

func (s *opStack) pop() rune {

	ch := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]

	return ch
}

func (s *opStack) top() rune {

	return s.entries[len(s.entries)-1]
}

func (s *opStack) empty() bool {

	return len(s.entries) == 0
}

//
// InfixToPostfix converts an infix arithmetic expression into postfix
// form in a single left to right scan.  Anything that is not an operator
// or a parenthesis is gathered into one operand token, dropping any
// whitespace inside it.  Tokens in the result are separated by a single
// space.
//
// Equal precedence always pops the stack top before pushing the incoming
// operator, so every operator is left associative
//

func InfixToPostfix(infix string) (string, error) {

	var stack opStack
	var out []string
	var operand strings.Builder

	flushOperand := func() {
		if operand.Len() > 0 {
			out = append(out, operand.String())
			operand.Reset()
		}
	}

	for _, ch := range infix {
		if precedence(ch) == notAnOperator {
			if !unicode.IsSpace(ch) {
				operand.WriteRune(ch)
			}
			continue
		}

		flushOperand()

		switch {
		case ch == '(':
			stack.push(ch)

		case ch == ')':
			for {
				if stack.empty() {
					return "", ErrUnbalanced
				}

				op := stack.pop()
				if op == '(' {
					break
				}

				out = append(out, string(op))
			}

		case stack.empty() || stack.top() == '(':
			stack.push(ch)

		default:
			//
			// Pop everything with higher precedence, then on a tie pop
			// the stack top once more before pushing
			//

			for !stack.empty() && stack.top() != '(' &&
				precedence(ch) < precedence(stack.top()) {
				out = append(out, string(stack.pop()))
			}

			if !stack.empty() && stack.top() != '(' &&
				precedence(ch) == precedence(stack.top()) {
				out = append(out, string(stack.pop()))
			}

			stack.push(ch)
		}
	}

	flushOperand()

	for !stack.empty() {
		op := stack.pop()
		if op == '(' {
			return "", ErrUnbalanced
		}

		out = append(out, string(op))
	}

	return strings.Join(out, " "), nil
}

func isOperator(tok string) bool {

	switch tok {
	case "+", "-", "*", "/":
		return true
	}

	return false
}

//
// Evaluate runs a postfix expression on a stack of float32 values.
// For a binary operator, b is the most recently pushed operand and
// a the one below it, and the result is 'a op b'
//

func Evaluate(postfix string) (float32, error) {

	var stack []float32

	for _, tok := range strings.Fields(postfix) {
		if !isOperator(tok) {
			f, err := strconv.ParseFloat(tok, 32)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, fmt.Errorf("%w : %s", ErrInvalidToken, tok)
			}

			stack = append(stack, float32(f))
			continue
		}

		if len(stack) < 2 {
			return 0, ErrMalformed
		}

		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var res float32

		switch tok {
		case "+":
			res = a + b

		case "-":
			res = a - b

		case "*":
			res = a * b

		case "/":
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			res = a / b
		}

		stack = append(stack, res)
	}

	if len(stack) != 1 {
		return 0, ErrMalformed
	}

	return stack[0], nil
}

//
// Substitute replaces every numeric variable reference in a postfix
// stream with its current value, as supplied by the lookup function
//

func Substitute(postfix string, lookup func(name string) (float32, bool)) (string, error) {

	toks := strings.Fields(postfix)

	for i, tok := range toks {
		if len(tok) < 2 || tok[0] != numericSigil {
			continue
		}

		val, ok := lookup(tok)
		if !ok {
			return "", fmt.Errorf("%w : %s", ErrVariableNotFound, tok)
		}

		toks[i] = FormatNumber(val)
	}

	return strings.Join(toks, " "), nil
}

//
// FormatNumber renders a value the way the interpreter prints it: the
// shortest decimal form that reads back to the same float32, with no
// exponent
//

func FormatNumber(f float32) string {

	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
