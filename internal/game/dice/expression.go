package dice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxCount bounds the number of dice in one expression.
const MaxCount = 100

// MaxSides bounds the faces of a single die.
const MaxSides = 1000

// ErrInvalidExpression is returned by Parse for malformed input.
var ErrInvalidExpression = errors.New("invalid dice expression")

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?([+-]\d+)?$`)

// Expression is a parsed dice expression ready to be rolled.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int // 0 keeps every die
}

// Parse parses forms like "d20", "2d6", "2d6+3", "4d8-2" and "4d6kh3".
//
// Postcondition: On success Count in [1, MaxCount], Sides in [2, MaxSides],
// and KeepHighest is 0 or in [1, Count).
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("%w: %q", ErrInvalidExpression, expr)
	}

	e := Expression{Raw: expr, Count: 1}
	if m[1] != "" {
		e.Count, _ = strconv.Atoi(m[1])
	}
	e.Sides, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		e.KeepHighest, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		e.Modifier, _ = strconv.Atoi(m[4])
	}

	switch {
	case e.Count < 1 || e.Count > MaxCount:
		return Expression{}, fmt.Errorf("%w: die count %d out of range in %q", ErrInvalidExpression, e.Count, expr)
	case e.Sides < 2 || e.Sides > MaxSides:
		return Expression{}, fmt.Errorf("%w: die sides %d out of range in %q", ErrInvalidExpression, e.Sides, expr)
	case m[3] != "" && (e.KeepHighest < 1 || e.KeepHighest >= e.Count):
		return Expression{}, fmt.Errorf("%w: kh %d must be > 0 and < count %d in %q", ErrInvalidExpression, e.KeepHighest, e.Count, expr)
	}
	return e, nil
}

// MustParse parses expr and panics on error. Useful for package-level values.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: " + err.Error())
	}
	return e
}
