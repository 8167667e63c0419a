package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a HopeLang error code.
//
// The leading letter identifies the error kind, the digits the specific
// condition.
type ErrorCode string

// Error codes.
const (
	// L01xx: Lexer errors
	ErrUnrecognizedChar ErrorCode = "L0101"

	// S02xx: Parser errors
	ErrUnexpectedToken ErrorCode = "S0201"
	ErrExpectedToken   ErrorCode = "S0202"
	ErrInvalidMember   ErrorCode = "S0203"
	ErrNestingTooDeep  ErrorCode = "S0204"

	// N10xx: Name errors
	ErrUndefinedName  ErrorCode = "N1001"
	ErrAlreadyDefined ErrorCode = "N1002"

	// C20xx: Constant errors
	ErrConstAssign ErrorCode = "C2001"

	// T30xx: Type errors
	ErrInvalidAssignTarget ErrorCode = "T3001"
	ErrNotCallable         ErrorCode = "T3002"
	ErrBadArgument         ErrorCode = "T3003"

	// I40xx: Import errors
	ErrModuleNotFound ErrorCode = "I4001"
	ErrModuleLoad     ErrorCode = "I4002"

	// R50xx: Fatal runtime conditions
	ErrReturnOutsideFunction ErrorCode = "R5001"
	ErrStackOverflow         ErrorCode = "R5002"
	ErrUnsupportedNode       ErrorCode = "R5003"
	ErrCancelled             ErrorCode = "R5004"
)

// ErrorKind is the taxonomy name of an error code.
type ErrorKind string

// Error kinds.
const (
	KindLexError    ErrorKind = "LexError"
	KindParseError  ErrorKind = "ParseError"
	KindNameError   ErrorKind = "NameError"
	KindConstError  ErrorKind = "ConstError"
	KindTypeError   ErrorKind = "TypeError"
	KindImportError ErrorKind = "ImportError"
	KindRuntime     ErrorKind = "RuntimeError"
)

// Kind returns the taxonomy the code belongs to.
func (c ErrorCode) Kind() ErrorKind {
	if c == "" {
		return KindRuntime
	}
	switch c[0] {
	case 'L':
		return KindLexError
	case 'S':
		return KindParseError
	case 'N':
		return KindNameError
	case 'C':
		return KindConstError
	case 'T':
		return KindTypeError
	case 'I':
		return KindImportError
	default:
		return KindRuntime
	}
}

// Error represents a structured HopeLang error.
type Error struct {
	Code    ErrorCode
	Message string
	Line    int // 1-based source line, 0 when unknown
	Token   string
	Err     error
}

// NewError creates a new error.
func NewError(code ErrorCode, message string, line int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Line:    line,
	}
}

// Errorf creates a new error with a formatted message and no line information.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s at line %d: %s", e.Code.Kind(), e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Code.Kind(), e.Code, e.Message)
}

// Kind returns the taxonomy name of the error.
func (e *Error) Kind() ErrorKind {
	return e.Code.Kind()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind() == kind
	}
	return false
}

// AtLine fills in the line of an *Error that was raised without one.
// Other errors are returned unchanged.
func AtLine(err error, line int) error {
	var e *Error
	if line > 0 && errors.As(err, &e) && e.Line == 0 {
		e.Line = line
	}
	return err
}

// IsIncomplete reports whether err is a parse error caused by running out of
// input, i.e. more source text could still make the program valid.
func IsIncomplete(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e.Kind() != KindParseError {
		return false
	}
	return e.Token == EOFText
}

// EOFText is the literal text of the synthetic end-of-input token.
const EOFText = "EndOfFile"
