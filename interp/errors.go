package interp

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the interpreter error messages.  Messages
// that name an offending item are completed with " : <item>"
//

const (
	EINVALIDLABEL       = "Invalid label format"
	ELABELMISMATCH      = "Label does not match line"
	EMISSINGSEPARATOR   = "Missing instruction separator"
	EMISSINGTYPE        = "Missing instruction type"
	EINVALIDFORMAT      = "Invalid instruction format"
	EUNKNOWNINSTRUCTION = "Unknown instruction found"
	EDUPLICATELABEL     = "Duplicate label entry for"
	EINVALIDCONDITION   = "Invalid condition"

	EPCRANGE          = "Program counter out of range"
	EMISSINGLABEL     = "Missing label"
	ELABELNOTFOUND    = "Label not found"
	EVARNOTFOUND      = "Variable not found"
	EINVALIDVARFORMAT = "Invalid variable format"
	EINVALIDVARIABLE  = "Invalid variable"
	EINVALIDPARAM     = "Invalid parameter"
	EMISSINGPARAM     = "Missing parameter"
	ESTACKOVERFLOW    = "Routine stack overflow"
	ESTACKUNDERFLOW   = "Routine stack underflow"
	EMISSINGCOMPUTE   = "Missing compute statement"
	EINVALIDCOMPUTE   = "Invalid compute statement"
	EEXPRESSION       = "Expression error"
	EDIVISIONBYZERO   = "Division by zero"
	EMISSINGMATCH     = "Missing match parameter"
	EMISSINGOPTIONS   = "Missing label list"
	EFILENAME         = "File name not found"
	EFILEMISMATCH     = "File does not match line"
	EFILENOTFOUND     = "File not found"
	EFILEREAD         = "Unable to read file"
	EPARAMCOUNT       = "Invalid number of parameters"
	EXRANGE           = "Parameter X out of range"
	EYRANGE           = "Parameter Y out of range"
	ECURSOR           = "Cursor positioning not available"
	ETERMINAL         = "Terminal error"
	EINPUT            = "Input error"
)

//
// Sentinel errors shared with Terminal implementations
//

var ErrEscape = errors.New("escape pressed")
var ErrUnsupported = errors.New("not supported on this terminal")

//
// Run returns ErrInterrupted when Interrupt stopped it
//

var ErrInterrupted = errors.New("interrupted")

//
// errHalt is returned by a handler to stop the run loop normally
// (END, or an escape with no handler)
//

var errHalt = errors.New("halt")

type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	RuntimeError
)

func (k ErrorKind) String() string {

	if k == SyntaxError {
		return "SYNTAX ERROR"
	}

	return "RUNTIME ERROR"
}

//
// Error is what Parse and Run hand back to the caller: the kind, the
// 1-based line that was being parsed or executed, and the message
//

type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *Error) Error() string {

	return fmt.Sprintf("%s : %03d|%s", e.Kind, e.Line, e.Msg)
}

//
// Helper to build a message naming the offending item
//

func itemError(msg string, item string) error {

	return fmt.Errorf("%s : %s", msg, item)
}
