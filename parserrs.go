package arith

import "strconv"

// SyntaxError indicates that no grammar alternative consumed the entire
// input line. It implements InputError. A SyntaxError rejects the whole
// line; there is no partial tree.
type SyntaxError struct {
	// Col is the column of the first unconsumed rune, counting from 1.
	Col int
	// Remainder is the unconsumed input suffix.
	Remainder string
}

func (err *SyntaxError) Error() string {
	if err.Remainder == "" {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "unparseable input "+strconv.Quote(err.Remainder))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// DepthError indicates an expression whose nesting or operator chains
// exceed the parser's depth limit. It implements InputError.
type DepthError struct {
	// Col is the column at which the limit was exceeded.
	Col int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested too deeply")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the input that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DepthError)(nil)
)
